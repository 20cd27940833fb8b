package dataset

import (
	"fmt"

	"github.com/strata-sh/strata/internal/fields"
)

// Selector is a view over a subset of a dataset's cells. A nil mask covers
// the whole domain.
type Selector struct {
	ds   *Dataset
	kind string
	mask []int
}

var _ fields.Container = (*Selector)(nil)

// Dataset returns the dataset this selector was carved from.
func (s *Selector) Dataset() *Dataset {
	return s.ds
}

// Kind returns a human readable description of the selection.
func (s *Selector) Kind() string {
	return s.kind
}

// CellCount returns the number of cells covered by the selection.
func (s *Selector) CellCount() int {
	if s.mask == nil {
		return s.ds.CellCount()
	}
	return len(s.mask)
}

// NativeFieldIDs implements fields.Container by delegating to the dataset.
func (s *Selector) NativeFieldIDs() []string {
	return s.ds.NativeFieldIDs()
}

// DerivedFieldIDs implements fields.Container by delegating to the dataset.
func (s *Selector) DerivedFieldIDs() []string {
	return s.ds.DerivedFieldIDs()
}

// Values returns the values of the named field within the selection.
// Native fields are read from storage; derived fields are computed from the
// native fields they require, then masked.
func (s *Selector) Values(field string) ([]float64, error) {
	if _, ok := s.ds.units[field]; ok {
		values, err := s.ds.nativeValues(field)
		if err != nil {
			return nil, err
		}
		return s.applyMask(values), nil
	}

	derived, ok := s.ds.registry.Get(field)
	if !ok {
		return nil, fmt.Errorf("unknown field %q", field)
	}

	native := make(map[string][]float64, len(derived.Requires))
	for _, req := range derived.Requires {
		values, err := s.ds.nativeValues(req)
		if err != nil {
			return nil, fmt.Errorf("derived field %q: %w", field, err)
		}
		native[req] = values
	}

	return s.applyMask(derived.Compute(native)), nil
}

func (s *Selector) applyMask(values []float64) []float64 {
	if s.mask == nil {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, 0, len(s.mask))
	for _, idx := range s.mask {
		if idx < len(values) {
			out = append(out, values[idx])
		}
	}
	return out
}

// String returns a short description of the selector.
func (s *Selector) String() string {
	return fmt.Sprintf("<selector %s of %s: %d cells>", s.kind, s.ds.Name, s.CellCount())
}
