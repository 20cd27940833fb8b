package interpreter

import (
	"fmt"
	"math"
	"strings"

	"github.com/strata-sh/strata/internal/dataset"
	"github.com/strata-sh/strata/internal/fields"
)

// builtinNames contains all the names of built-in functions and objects
var builtinNames = map[string]bool{
	"print":  true,
	"len":    true,
	"type":   true,
	"keys":   true,
	"fields": true,
	"load":   true,
	"help":   true,
	"plot":   true,
}

// IsBuiltin checks if a name belongs to the prelude namespace
func IsBuiltin(name string) bool {
	return builtinNames[name]
}

const helpText = `strata - interactive dataset analysis shell

  ds = load("galaxy.yaml")   load a dataset descriptor
  ds.all                     selector over the full domain
  ds.sphere(0.25)            spherical selector around the domain center
  ds.region(0,0,0, 1,1,0.5)  box selector
  fields(ds)                 all field names the container exposes
  sp["density"]              field values within a selection
  plot(sp, "density")        terminal histogram (needs a display)

Type a container followed by [" and press Tab to complete field names.
Exit with "exit", "quit", or Ctrl+D.`

// registerPrelude populates the global environment with the builtins and the
// analysis library's namespace.
func (i *Interpreter) registerPrelude() {
	i.globals.Set("print", &BuiltinValue{Name: "print", Fn: i.builtinPrint})
	i.globals.Set("len", &BuiltinValue{Name: "len", Fn: builtinLen})
	i.globals.Set("type", &BuiltinValue{Name: "type", Fn: builtinType})
	i.globals.Set("keys", &BuiltinValue{Name: "keys", Fn: builtinKeys})
	i.globals.Set("fields", &BuiltinValue{Name: "fields", Fn: builtinFields})
	i.globals.Set("load", &BuiltinValue{Name: "load", Fn: i.builtinLoad})
	i.globals.Set("help", &BuiltinValue{Name: "help", Fn: builtinHelp})

	// plot is only part of the namespace when a graphics display is
	// available; its absence is how users discover headless mode.
	if i.graphics {
		i.globals.Set("plot", &BuiltinValue{Name: "plot", Fn: i.builtinPlot})
	}
}

func (i *Interpreter) builtinPrint(args []Value) (Value, error) {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, arg.String())
	}
	fmt.Fprintln(i.stdout, strings.Join(parts, " "))
	return &NullValue{}, nil
}

func builtinLen(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *StringValue:
		return &NumberValue{Value: float64(len(v.Value))}, nil
	case *ArrayValue:
		return &NumberValue{Value: float64(len(v.Elements))}, nil
	case *ObjectValue:
		return &NumberValue{Value: float64(len(v.Properties))}, nil
	case *SelectorValue:
		return &NumberValue{Value: float64(v.Sel.CellCount())}, nil
	case *DatasetValue:
		return &NumberValue{Value: float64(v.Ds.CellCount())}, nil
	default:
		return nil, fmt.Errorf("len does not support %s", args[0].Type())
	}
}

func builtinType(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type expects 1 argument, got %d", len(args))
	}
	return &StringValue{Value: args[0].Type().String()}, nil
}

func builtinKeys(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("keys expects 1 argument, got %d", len(args))
	}
	lister, ok := args[0].(AttributeLister)
	if !ok {
		return nil, fmt.Errorf("keys does not support %s", args[0].Type())
	}
	return stringArray(lister.AttributeNames()), nil
}

// builtinFields returns the full field namespace of a container: the sorted
// union of native and derived field identifiers.
func builtinFields(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("fields expects 1 argument, got %d", len(args))
	}
	container, ok := args[0].(fields.Container)
	if !ok {
		return nil, fmt.Errorf("%s is not a field container", args[0].Type())
	}
	return stringArray(fields.Union(container.NativeFieldIDs(), container.DerivedFieldIDs())), nil
}

func (i *Interpreter) builtinLoad(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("load expects a descriptor path, got %d arguments", len(args))
	}
	path, ok := args[0].(*StringValue)
	if !ok {
		return nil, fmt.Errorf("load expects a string path, got %s", args[0].Type())
	}

	ds, err := dataset.Load(path.Value, i.registry)
	if err != nil {
		return nil, err
	}
	return &DatasetValue{Ds: ds}, nil
}

func builtinHelp(args []Value) (Value, error) {
	return &StringValue{Value: helpText}, nil
}

// builtinPlot renders a terminal histogram of a field within a selection.
func (i *Interpreter) builtinPlot(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("plot expects (selector, field), got %d arguments", len(args))
	}
	sel, ok := args[0].(*SelectorValue)
	if !ok {
		return nil, fmt.Errorf("plot expects a selector, got %s", args[0].Type())
	}
	field, ok := args[1].(*StringValue)
	if !ok {
		return nil, fmt.Errorf("plot expects a field name, got %s", args[1].Type())
	}

	values, err := sel.Sel.Values(field.Value)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("selection is empty")
	}

	fmt.Fprint(i.stdout, renderHistogram(field.Value, values))
	return &NullValue{}, nil
}

const (
	histogramBins  = 10
	histogramWidth = 40
)

func renderHistogram(field string, values []float64) string {
	min, max := values[0], values[0]
	for _, v := range values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	counts := make([]int, histogramBins)
	span := max - min
	for _, v := range values {
		bin := 0
		if span > 0 {
			bin = int((v - min) / span * float64(histogramBins))
			if bin >= histogramBins {
				bin = histogramBins - 1
			}
		}
		counts[bin]++
	}

	peak := 0
	for _, c := range counts {
		if c > peak {
			peak = c
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s (%d cells, min=%g, max=%g)\n", field, len(values), min, max)
	for bin, count := range counts {
		low := min + span*float64(bin)/histogramBins
		bar := strings.Repeat("#", count*histogramWidth/peak)
		fmt.Fprintf(&out, "%12.4g | %-*s %d\n", low, histogramWidth, bar, count)
	}
	return out.String()
}
