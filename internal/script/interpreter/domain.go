package interpreter

import (
	"fmt"

	"github.com/strata-sh/strata/internal/dataset"
	"github.com/strata-sh/strata/internal/fields"
)

// DatasetValue wraps a loaded dataset. It exposes the dataset's selectors
// and metadata as attributes and satisfies the field container capability,
// so indexing it with a string key offers field completions.
type DatasetValue struct {
	Ds *dataset.Dataset
}

var (
	_ Value            = (*DatasetValue)(nil)
	_ AttributeGetter  = (*DatasetValue)(nil)
	_ AttributeLister  = (*DatasetValue)(nil)
	_ fields.Container = (*DatasetValue)(nil)
)

func (d *DatasetValue) Type() ValueType { return ValueTypeDataset }
func (d *DatasetValue) String() string  { return d.Ds.Summary() }
func (d *DatasetValue) IsTruthy() bool  { return true }
func (d *DatasetValue) Equals(other Value) bool {
	if otherDs, ok := other.(*DatasetValue); ok {
		return d.Ds == otherDs.Ds
	}
	return false
}

// NativeFieldIDs implements fields.Container
func (d *DatasetValue) NativeFieldIDs() []string { return d.Ds.NativeFieldIDs() }

// DerivedFieldIDs implements fields.Container
func (d *DatasetValue) DerivedFieldIDs() []string { return d.Ds.DerivedFieldIDs() }

// Attribute implements AttributeGetter. Lookups construct values but never
// run user code.
func (d *DatasetValue) Attribute(name string) (Value, bool) {
	switch name {
	case "name":
		return &StringValue{Value: d.Ds.Name}, true
	case "all":
		return &SelectorValue{Sel: d.Ds.AllData()}, true
	case "parameters":
		props := make(map[string]Value)
		for key, value := range d.Ds.Parameters() {
			props[key] = &StringValue{Value: value}
		}
		return &ObjectValue{Properties: props}, true
	case "field_list":
		return stringArray(d.Ds.NativeFieldIDs()), true
	case "derived_field_list":
		return stringArray(d.Ds.DerivedFieldIDs()), true
	case "sphere":
		return &BuiltinValue{Name: "sphere", Fn: d.sphere}, true
	case "region":
		return &BuiltinValue{Name: "region", Fn: d.region}, true
	}
	return nil, false
}

// AttributeNames implements AttributeLister
func (d *DatasetValue) AttributeNames() []string {
	return []string{
		"all", "derived_field_list", "field_list", "name",
		"parameters", "region", "sphere",
	}
}

// sphere builds a spherical selector: sphere(radius) centered on the domain
// center, or sphere(radius, cx, cy, cz).
func (d *DatasetValue) sphere(args []Value) (Value, error) {
	if len(args) != 1 && len(args) != 4 {
		return nil, fmt.Errorf("sphere expects (radius) or (radius, cx, cy, cz), got %d arguments", len(args))
	}
	numbers, err := numberArgs("sphere", args)
	if err != nil {
		return nil, err
	}

	center := [3]float64{0.5, 0.5, 0.5}
	if len(numbers) == 4 {
		center = [3]float64{numbers[1], numbers[2], numbers[3]}
	}

	return &SelectorValue{Sel: d.Ds.Sphere(center, numbers[0])}, nil
}

// region builds a box selector: region(x0, y0, z0, x1, y1, z1).
func (d *DatasetValue) region(args []Value) (Value, error) {
	if len(args) != 6 {
		return nil, fmt.Errorf("region expects (x0, y0, z0, x1, y1, z1), got %d arguments", len(args))
	}
	numbers, err := numberArgs("region", args)
	if err != nil {
		return nil, err
	}

	left := [3]float64{numbers[0], numbers[1], numbers[2]}
	right := [3]float64{numbers[3], numbers[4], numbers[5]}
	return &SelectorValue{Sel: d.Ds.Region(left, right)}, nil
}

// SelectorValue wraps a data selection. Like DatasetValue it satisfies the
// field container capability.
type SelectorValue struct {
	Sel *dataset.Selector
}

var (
	_ Value            = (*SelectorValue)(nil)
	_ AttributeGetter  = (*SelectorValue)(nil)
	_ AttributeLister  = (*SelectorValue)(nil)
	_ fields.Container = (*SelectorValue)(nil)
)

func (s *SelectorValue) Type() ValueType { return ValueTypeSelector }
func (s *SelectorValue) String() string  { return s.Sel.String() }
func (s *SelectorValue) IsTruthy() bool  { return s.Sel.CellCount() > 0 }
func (s *SelectorValue) Equals(other Value) bool {
	if otherSel, ok := other.(*SelectorValue); ok {
		return s.Sel == otherSel.Sel
	}
	return false
}

// NativeFieldIDs implements fields.Container
func (s *SelectorValue) NativeFieldIDs() []string { return s.Sel.NativeFieldIDs() }

// DerivedFieldIDs implements fields.Container
func (s *SelectorValue) DerivedFieldIDs() []string { return s.Sel.DerivedFieldIDs() }

// Attribute implements AttributeGetter
func (s *SelectorValue) Attribute(name string) (Value, bool) {
	switch name {
	case "kind":
		return &StringValue{Value: s.Sel.Kind()}, true
	case "cell_count":
		return &NumberValue{Value: float64(s.Sel.CellCount())}, true
	case "dataset":
		return &DatasetValue{Ds: s.Sel.Dataset()}, true
	case "field_list":
		return stringArray(s.Sel.NativeFieldIDs()), true
	case "derived_field_list":
		return stringArray(s.Sel.DerivedFieldIDs()), true
	}
	return nil, false
}

// AttributeNames implements AttributeLister
func (s *SelectorValue) AttributeNames() []string {
	return []string{"cell_count", "dataset", "derived_field_list", "field_list", "kind"}
}

// Index returns the field values for a string key, mirroring the analysis
// library's container[field] access.
func (s *SelectorValue) Index(field string) (Value, error) {
	values, err := s.Sel.Values(field)
	if err != nil {
		return nil, err
	}
	elements := make([]Value, len(values))
	for i, v := range values {
		elements[i] = &NumberValue{Value: v}
	}
	return &ArrayValue{Elements: elements}, nil
}

func stringArray(items []string) *ArrayValue {
	elements := make([]Value, len(items))
	for i, item := range items {
		elements[i] = &StringValue{Value: item}
	}
	return &ArrayValue{Elements: elements}
}

func numberArgs(name string, args []Value) ([]float64, error) {
	numbers := make([]float64, len(args))
	for i, arg := range args {
		num, ok := arg.(*NumberValue)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d must be a number, got %s", name, i+1, arg.Type())
		}
		numbers[i] = num.Value
	}
	return numbers, nil
}
