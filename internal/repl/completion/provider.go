package completion

import (
	"go.uber.org/zap"
)

// ScopesFunc supplies the current scope chain, innermost first. It is called
// fresh on every request so completions always see the live bindings.
type ScopesFunc func() []Scope

// Provider routes completion requests: hooks first, namespace fallback last.
// It implements the input package's CompletionProvider interface.
type Provider struct {
	hooks  *Hooks
	scopes ScopesFunc
	logger *zap.Logger
}

// NewProvider creates a completion Provider over the given hook registry.
func NewProvider(hooks *Hooks, scopes ScopesFunc, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		hooks:  hooks,
		scopes: scopes,
		logger: logger,
	}
}

// Complete returns completion candidates for the line at the cursor
// position, along with the index where the replacement span begins.
func (p *Provider) Complete(line string, pos int) ([]string, int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(line) {
		pos = len(line)
	}

	req := Request{
		Line:   line[:pos],
		Scopes: p.scopes(),
	}

	if result := p.hooks.Run(req); result.Applied {
		return result.Candidates, result.ReplaceStart
	}

	result := NamespaceFallback(req)
	return result.Candidates, result.ReplaceStart
}
