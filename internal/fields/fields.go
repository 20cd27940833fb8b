// Package fields defines the field container capability and the derived-field
// registry used by datasets and data selectors. A field is a named data
// channel a container can expose, either stored natively or computed on
// demand from other fields.
package fields

import (
	"sort"

	"github.com/samber/lo"
)

// Container is the capability contract for any value that exposes
// discoverable field identifiers. Completion and introspection only ever
// depend on this interface, never on concrete container types.
type Container interface {
	// NativeFieldIDs returns the identifiers of fields stored directly
	// in the container.
	NativeFieldIDs() []string

	// DerivedFieldIDs returns the identifiers of fields the container can
	// compute on demand from its native fields.
	DerivedFieldIDs() []string
}

// Union returns the sorted, deduplicated union of native and derived field
// identifiers. The underlying container's field set may change between
// calls, so the union is always recomputed and never cached.
func Union(native, derived []string) []string {
	union := make([]string, 0, len(native)+len(derived))
	union = append(union, native...)
	union = append(union, derived...)
	union = lo.Uniq(union)
	sort.Strings(union)
	return union
}
