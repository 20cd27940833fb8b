// Package dataset implements the analysis library's container types: datasets
// loaded from descriptor files and the data selectors carved out of them.
// Both expose the field container capability from the fields package.
package dataset

import (
	"fmt"
	"math"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/strata-sh/strata/internal/fields"
)

// Dataset is a loaded simulation dataset. Field data is addressed by name;
// derived fields come from the registry the dataset was loaded with.
type Dataset struct {
	Name          string
	FormatVersion string

	dimensions []int
	parameters map[string]string
	units      map[string]string
	data       map[string][]float64
	registry   *fields.Registry
}

// Ensure Dataset satisfies the field container capability.
var _ fields.Container = (*Dataset)(nil)

// NativeFieldIDs returns the sorted identifiers of fields stored in the
// dataset.
func (d *Dataset) NativeFieldIDs() []string {
	ids := make([]string, 0, len(d.units))
	for name := range d.units {
		ids = append(ids, name)
	}
	sort.Strings(ids)
	return ids
}

// DerivedFieldIDs returns the identifiers of derived fields whose
// requirements this dataset can satisfy.
func (d *Dataset) DerivedFieldIDs() []string {
	return d.registry.AvailableFor(d.NativeFieldIDs())
}

// Dimensions returns the grid dimensions of the dataset's domain.
func (d *Dataset) Dimensions() []int {
	dims := make([]int, len(d.dimensions))
	copy(dims, d.dimensions)
	return dims
}

// CellCount returns the total number of cells in the domain.
func (d *Dataset) CellCount() int {
	count := 1
	for _, dim := range d.dimensions {
		count *= dim
	}
	return count
}

// Parameters returns the dataset's parameter map.
func (d *Dataset) Parameters() map[string]string {
	params := make(map[string]string, len(d.parameters))
	for k, v := range d.parameters {
		params[k] = v
	}
	return params
}

// Parameter returns a single parameter value.
func (d *Dataset) Parameter(name string) (string, bool) {
	value, ok := d.parameters[name]
	return value, ok
}

// Units returns the unit string for a native field.
func (d *Dataset) Units(field string) (string, bool) {
	units, ok := d.units[field]
	return units, ok
}

// Summary returns a one-line human readable description of the dataset.
func (d *Dataset) Summary() string {
	return fmt.Sprintf("<dataset %s: %dx%dx%d, %s cells, %d fields>",
		d.Name,
		d.dimensions[0], d.dimensions[1], d.dimensions[2],
		humanize.Comma(int64(d.CellCount())),
		len(d.units)+len(d.DerivedFieldIDs()))
}

// AllData returns a selector covering the entire domain.
func (d *Dataset) AllData() *Selector {
	return &Selector{
		ds:   d,
		kind: "all_data",
		mask: nil,
	}
}

// Sphere returns a selector covering cells within radius of center, in
// domain coordinates. The domain spans the unit cube.
func (d *Dataset) Sphere(center [3]float64, radius float64) *Selector {
	mask := d.maskCells(func(pos [3]float64) bool {
		dx := pos[0] - center[0]
		dy := pos[1] - center[1]
		dz := pos[2] - center[2]
		return math.Sqrt(dx*dx+dy*dy+dz*dz) <= radius
	})
	return &Selector{
		ds:   d,
		kind: fmt.Sprintf("sphere(c=%v, r=%g)", center, radius),
		mask: mask,
	}
}

// Region returns a selector covering the axis-aligned box between left and
// right, in domain coordinates.
func (d *Dataset) Region(left, right [3]float64) *Selector {
	mask := d.maskCells(func(pos [3]float64) bool {
		for axis := 0; axis < 3; axis++ {
			if pos[axis] < left[axis] || pos[axis] >= right[axis] {
				return false
			}
		}
		return true
	})
	return &Selector{
		ds:   d,
		kind: fmt.Sprintf("region(%v, %v)", left, right),
		mask: mask,
	}
}

// maskCells returns the linear indices of cells whose centers satisfy the
// predicate. Cell centers are laid out on a uniform grid over the unit cube.
func (d *Dataset) maskCells(include func(pos [3]float64) bool) []int {
	nx, ny, nz := d.dimensions[0], d.dimensions[1], d.dimensions[2]
	var mask []int
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				pos := [3]float64{
					(float64(i) + 0.5) / float64(nx),
					(float64(j) + 0.5) / float64(ny),
					(float64(k) + 0.5) / float64(nz),
				}
				if include(pos) {
					mask = append(mask, i*ny*nz+j*nz+k)
				}
			}
		}
	}
	return mask
}

// nativeValues returns the stored values for a native field.
func (d *Dataset) nativeValues(field string) ([]float64, error) {
	if _, ok := d.units[field]; !ok {
		return nil, fmt.Errorf("dataset %s has no native field %q", d.Name, field)
	}
	values, ok := d.data[field]
	if !ok {
		return nil, fmt.Errorf("field %q is declared but carries no data", field)
	}
	return values, nil
}
