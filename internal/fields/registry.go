package fields

import (
	"math"
	"sort"
)

// ComputeFunc computes a derived field's values from the native field values
// it requires. Keys of the input map are the required native field names.
type ComputeFunc func(native map[string][]float64) []float64

// DerivedField declares a field computed on demand. A container offers a
// derived field only when every required native field is present.
type DerivedField struct {
	Name     string
	Units    string
	Requires []string
	Compute  ComputeFunc
}

// Registry stores and looks up derived field definitions.
// It manages definitions like "velocity_magnitude requires velocity_x/y/z".
type Registry struct {
	derived map[string]DerivedField
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		derived: make(map[string]DerivedField),
	}
}

// Add adds or updates a derived field definition.
func (r *Registry) Add(field DerivedField) {
	r.derived[field.Name] = field
}

// Remove removes a derived field definition.
func (r *Registry) Remove(name string) {
	delete(r.derived, name)
}

// Get retrieves a derived field definition.
func (r *Registry) Get(name string) (DerivedField, bool) {
	field, ok := r.derived[name]
	return field, ok
}

// Names returns the names of all registered derived fields, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.derived))
	for name := range r.derived {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFor returns the sorted names of derived fields whose required
// native fields are all present in the given list.
func (r *Registry) AvailableFor(native []string) []string {
	present := make(map[string]bool, len(native))
	for _, name := range native {
		present[name] = true
	}

	available := make([]string, 0, len(r.derived))
	for name, field := range r.derived {
		satisfied := true
		for _, req := range field.Requires {
			if !present[req] {
				satisfied = false
				break
			}
		}
		if satisfied {
			available = append(available, name)
		}
	}

	sort.Strings(available)
	return available
}

// DefaultRegistry returns a Registry pre-populated with the standard derived
// fields of the analysis library.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Add(DerivedField{
		Name:     "velocity_magnitude",
		Units:    "cm/s",
		Requires: []string{"velocity_x", "velocity_y", "velocity_z"},
		Compute: func(native map[string][]float64) []float64 {
			vx := native["velocity_x"]
			vy := native["velocity_y"]
			vz := native["velocity_z"]
			out := make([]float64, len(vx))
			for i := range vx {
				out[i] = math.Sqrt(vx[i]*vx[i] + vy[i]*vy[i] + vz[i]*vz[i])
			}
			return out
		},
	})

	r.Add(DerivedField{
		Name:     "cell_mass",
		Units:    "g",
		Requires: []string{"density", "cell_volume"},
		Compute: func(native map[string][]float64) []float64 {
			density := native["density"]
			volume := native["cell_volume"]
			out := make([]float64, len(density))
			for i := range density {
				out[i] = density[i] * volume[i]
			}
			return out
		},
	})

	r.Add(DerivedField{
		Name:     "pressure",
		Units:    "dyne/cm**2",
		Requires: []string{"density", "temperature"},
		Compute: func(native map[string][]float64) []float64 {
			// Ideal gas with mean molecular weight 1.
			const kBoltzmannOverMH = 8.254e7
			density := native["density"]
			temperature := native["temperature"]
			out := make([]float64, len(density))
			for i := range density {
				out[i] = density[i] * temperature[i] * kBoltzmannOverMH
			}
			return out
		},
	})

	r.Add(DerivedField{
		Name:     "sound_speed",
		Units:    "cm/s",
		Requires: []string{"temperature"},
		Compute: func(native map[string][]float64) []float64 {
			const gammaKOverMH = 1.376e8
			temperature := native["temperature"]
			out := make([]float64, len(temperature))
			for i := range temperature {
				out[i] = math.Sqrt(gammaKOverMH * temperature[i])
			}
			return out
		},
	})

	return r
}
