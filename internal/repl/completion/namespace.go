package completion

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/strata-sh/strata/internal/script/interpreter"
)

// NamespaceFallback is the default completer consulted when every hook has
// deferred. It completes bare names from the scope chain and attribute names
// after a dot, fuzzy-ranked against the partial word.
func NamespaceFallback(req Request) Result {
	start := wordStart(req.Line)
	word := req.Line[start:]

	if dot := strings.LastIndex(word, "."); dot >= 0 {
		return attributeCandidates(req, word[:dot], word[dot+1:], start+dot+1)
	}
	return nameCandidates(req, word, start)
}

// wordStart scans back from the end of the line over identifier and dot
// characters to find where the current word begins.
func wordStart(line string) int {
	start := len(line)
	for start > 0 {
		ch := line[start-1]
		if ch == '.' || ch == '_' ||
			(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			start--
			continue
		}
		break
	}
	return start
}

func nameCandidates(req Request, partial string, replaceStart int) Result {
	var names []string
	for _, scope := range req.Scopes {
		if scope.Env != nil {
			names = append(names, scope.Env.Keys()...)
		}
	}
	names = lo.Uniq(names)
	sort.Strings(names)

	return Result{
		Applied:      true,
		Candidates:   rank(partial, names),
		ReplaceStart: replaceStart,
	}
}

func attributeCandidates(req Request, baseExpr, partial string, replaceStart int) Result {
	parts, ok := splitDottedName(baseExpr)
	if !ok {
		return Result{Applied: true, ReplaceStart: replaceStart}
	}

	value, ok := resolveChain(parts, req.Scopes)
	if !ok {
		return Result{Applied: true, ReplaceStart: replaceStart}
	}

	lister, ok := value.(interpreter.AttributeLister)
	if !ok {
		return Result{Applied: true, ReplaceStart: replaceStart}
	}

	return Result{
		Applied:      true,
		Candidates:   rank(partial, lister.AttributeNames()),
		ReplaceStart: replaceStart,
	}
}

// rank orders candidates by fuzzy relevance against the partial word.
// An empty partial keeps the input order (already sorted).
func rank(partial string, candidates []string) []string {
	if partial == "" {
		return candidates
	}

	matches := fuzzy.Find(partial, candidates)
	ranked := make([]string, 0, len(matches))
	for _, match := range matches {
		ranked = append(ranked, match.Str)
	}
	return ranked
}
