// Package completion implements the REPL's completion-hook subsystem.
//
// Hooks are registered with a name, a key pattern, and a hook function. On
// every completion request each hook is offered the current line; a hook
// either produces candidates or defers, in which case control falls through
// to the next hook and finally to the namespace fallback. Hooks are purely
// additive: they never alter the line buffer and never surface errors to the
// user.
package completion

import (
	"fmt"
	"regexp"

	"github.com/strata-sh/strata/internal/script/interpreter"
	"go.uber.org/zap"
)

// Scope is one named layer of the shell's variable bindings. Lookup only
// consults this layer, so callers control the lookup order explicitly.
type Scope struct {
	Name string
	Env  *interpreter.Environment
}

// Lookup resolves a name in this scope layer only.
func (s Scope) Lookup(name string) (interpreter.Value, bool) {
	if s.Env == nil {
		return nil, false
	}
	return s.Env.GetLocal(name)
}

// Request is a single completion request: the input line up to the cursor
// and the ordered scope chain (innermost first). Scopes are read, never
// mutated.
type Request struct {
	Line   string
	Scopes []Scope
}

// Result is the outcome of running a hook. Applied distinguishes "this hook
// produced an answer" from "this hook does not apply"; an applied result
// with zero candidates is a valid, observably different outcome from
// deferral.
type Result struct {
	Applied    bool
	Candidates []string

	// ReplaceStart is the index in the line where the completion span
	// begins; the editor replaces line[ReplaceStart:cursor] with the chosen
	// candidate.
	ReplaceStart int
}

// Deferred returns the explicit "this hook does not apply" result.
func Deferred() Result {
	return Result{}
}

// HookFunc inspects a request and returns either candidates or a deferral.
type HookFunc func(req Request) Result

type hook struct {
	name    string
	pattern *regexp.Regexp
	fn      HookFunc
}

// Hooks is the ordered registry of completion hooks.
type Hooks struct {
	hooks  []hook
	logger *zap.Logger
}

// NewHooks creates an empty hook registry.
func NewHooks(logger *zap.Logger) *Hooks {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hooks{logger: logger}
}

// Register adds a hook under the given name. The key is a regular expression
// the line must contain for the hook to be consulted; an empty key matches
// every line. Registering an existing name replaces the previous hook.
func (h *Hooks) Register(name, key string, fn HookFunc) error {
	if name == "" {
		return fmt.Errorf("hook name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("hook %q has no function", name)
	}

	var pattern *regexp.Regexp
	if key != "" {
		compiled, err := regexp.Compile(key)
		if err != nil {
			return fmt.Errorf("hook %q has invalid key pattern: %w", name, err)
		}
		pattern = compiled
	}

	entry := hook{name: name, pattern: pattern, fn: fn}
	for i := range h.hooks {
		if h.hooks[i].name == name {
			h.hooks[i] = entry
			return nil
		}
	}
	h.hooks = append(h.hooks, entry)
	return nil
}

// Unregister removes a hook by name.
func (h *Hooks) Unregister(name string) {
	for i := range h.hooks {
		if h.hooks[i].name == name {
			h.hooks = append(h.hooks[:i], h.hooks[i+1:]...)
			return
		}
	}
}

// Run offers the request to each hook in registration order and returns the
// first applied result. A hook that panics is treated as deferring; a broken
// hook must degrade to default completion, never crash the session.
func (h *Hooks) Run(req Request) Result {
	for _, entry := range h.hooks {
		if entry.pattern != nil && !entry.pattern.MatchString(req.Line) {
			continue
		}

		result := h.runOne(entry, req)
		if result.Applied {
			h.logger.Debug("completion hook applied",
				zap.String("hook", entry.name),
				zap.Int("candidates", len(result.Candidates)))
			return result
		}
	}
	return Deferred()
}

func (h *Hooks) runOne(entry hook, req Request) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Warn("completion hook panicked",
				zap.String("hook", entry.name),
				zap.Any("panic", r))
			result = Deferred()
		}
	}()
	return entry.fn(req)
}
