package completion

import (
	"regexp"
	"strings"

	"github.com/strata-sh/strata/internal/fields"
	"github.com/strata-sh/strata/internal/script/interpreter"
)

// fieldKeyPattern recognizes a line whose last token is a dotted-name chain
// being indexed with a partially typed quoted key, e.g. `sp["dens` or
// `ds.all['`. The base must be a plain dotted name: call syntax or other
// punctuation before the bracket does not match.
var fieldKeyPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)\[["']([A-Za-z0-9_]*)$`)

// Match is the result of a successful line match: the expression being
// indexed and the partial key typed after the quote.
type Match struct {
	ObjectExpr string
	PartialKey string
}

// MatchFieldKey inspects the line and reports whether its end looks like a
// string-key index in progress. Only the last occurrence at end of line is
// considered; earlier brackets on the line are ignored.
func MatchFieldKey(line string) (Match, bool) {
	groups := fieldKeyPattern.FindStringSubmatch(line)
	if groups == nil {
		return Match{}, false
	}
	return Match{ObjectExpr: groups[1], PartialKey: groups[2]}, true
}

// ResolveFields resolves a dotted-name expression against the scope chain
// and, when the resulting value is a field container, returns the sorted
// union of its native and derived field identifiers.
//
// The expression is resolved scope by scope: the first scope in which the
// whole chain resolves supplies the value. This is a constrained lookup, not
// an evaluator: attribute access never executes user code, and anything
// beyond identifier chains fails the resolution.
func ResolveFields(expr string, scopes []Scope) ([]string, bool) {
	parts, ok := splitDottedName(expr)
	if !ok {
		return nil, false
	}

	value, ok := resolveChain(parts, scopes)
	if !ok {
		return nil, false
	}

	container, ok := value.(fields.Container)
	if !ok {
		return nil, false
	}

	return fields.Union(container.NativeFieldIDs(), container.DerivedFieldIDs()), true
}

func resolveChain(parts []string, scopes []Scope) (interpreter.Value, bool) {
	for _, scope := range scopes {
		value, ok := scope.Lookup(parts[0])
		if !ok {
			continue
		}

		resolved := true
		for _, attr := range parts[1:] {
			getter, ok := value.(interpreter.AttributeGetter)
			if !ok {
				resolved = false
				break
			}
			value, ok = getter.Attribute(attr)
			if !ok {
				resolved = false
				break
			}
		}

		if resolved {
			return value, true
		}
	}
	return nil, false
}

// splitDottedName splits an identifier chain like "ds.all" into its parts,
// rejecting anything that is not a plain dotted name.
func splitDottedName(expr string) ([]string, bool) {
	parts := strings.Split(expr, ".")
	for _, part := range parts {
		if !isIdentifier(part) {
			return nil, false
		}
	}
	return parts, true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		switch {
		case ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z'):
		case i > 0 && ch >= '0' && ch <= '9':
		default:
			return false
		}
	}
	return true
}

// FieldKeyHook is the completion hook for string-key indexing of field
// containers. It returns the container's full field set regardless of the
// partial key typed; prefix filtering is deliberately left to downstream
// consumers.
func FieldKeyHook(req Request) Result {
	match, ok := MatchFieldKey(req.Line)
	if !ok {
		return Deferred()
	}

	candidates, ok := ResolveFields(match.ObjectExpr, req.Scopes)
	if !ok {
		return Deferred()
	}

	return Result{
		Applied:      true,
		Candidates:   candidates,
		ReplaceStart: len(req.Line) - len(match.PartialKey),
	}
}

// RegisterDefaults registers the standard hooks. The field-key hook runs on
// every line (match-all key); its own matcher decides applicability.
func RegisterDefaults(hooks *Hooks) error {
	return hooks.Register("field-key", "", FieldKeyHook)
}
