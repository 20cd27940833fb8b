package dataset

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/strata-sh/strata/internal/fields"
	"gopkg.in/yaml.v3"
)

// SupportedFormats is the range of descriptor format versions this build can
// load. Major version 2 introduced per-field unit declarations; major
// version 3 is reserved for chunked external data and is not handled yet.
const SupportedFormats = ">= 1.0.0, < 3.0.0"

// Descriptor is the on-disk representation of a dataset.
type Descriptor struct {
	Name          string            `yaml:"name"`
	FormatVersion string            `yaml:"format_version"`
	Dimensions    []int             `yaml:"dimensions"`
	Parameters    map[string]string `yaml:"parameters,omitempty"`
	Fields        []FieldSpec       `yaml:"fields"`
}

// FieldSpec declares a native field in a descriptor. Values are optional;
// a descriptor may declare fields whose data lives elsewhere.
type FieldSpec struct {
	Name   string    `yaml:"name"`
	Units  string    `yaml:"units,omitempty"`
	Values []float64 `yaml:"values,omitempty"`
}

// Load reads a dataset descriptor from disk and binds it to the given
// derived-field registry.
func Load(path string, registry *fields.Registry) (*Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset descriptor: %w", err)
	}
	return Parse(content, registry)
}

// Parse builds a Dataset from descriptor bytes.
func Parse(content []byte, registry *fields.Registry) (*Dataset, error) {
	var desc Descriptor
	if err := yaml.Unmarshal(content, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset descriptor: %w", err)
	}

	if err := validate(&desc); err != nil {
		return nil, err
	}

	ds := &Dataset{
		Name:          desc.Name,
		FormatVersion: desc.FormatVersion,
		dimensions:    desc.Dimensions,
		parameters:    desc.Parameters,
		units:         make(map[string]string, len(desc.Fields)),
		data:          make(map[string][]float64, len(desc.Fields)),
		registry:      registry,
	}
	if ds.parameters == nil {
		ds.parameters = make(map[string]string)
	}

	cellCount := ds.CellCount()
	for _, spec := range desc.Fields {
		ds.units[spec.Name] = spec.Units
		if spec.Values != nil {
			if len(spec.Values) != cellCount {
				return nil, fmt.Errorf("field %q has %d values, domain has %d cells",
					spec.Name, len(spec.Values), cellCount)
			}
			ds.data[spec.Name] = spec.Values
		}
	}

	return ds, nil
}

func validate(desc *Descriptor) error {
	if desc.Name == "" {
		return fmt.Errorf("dataset descriptor is missing a name")
	}

	version, err := semver.NewVersion(desc.FormatVersion)
	if err != nil {
		return fmt.Errorf("invalid format_version %q: %w", desc.FormatVersion, err)
	}
	supported, err := semver.NewConstraint(SupportedFormats)
	if err != nil {
		return fmt.Errorf("invalid format constraint: %w", err)
	}
	if !supported.Check(version) {
		return fmt.Errorf("dataset %s uses format %s, supported range is %q",
			desc.Name, desc.FormatVersion, SupportedFormats)
	}

	if len(desc.Dimensions) != 3 {
		return fmt.Errorf("dataset %s must declare 3 dimensions, got %d",
			desc.Name, len(desc.Dimensions))
	}
	for _, dim := range desc.Dimensions {
		if dim <= 0 {
			return fmt.Errorf("dataset %s has non-positive dimension %d", desc.Name, dim)
		}
	}

	seen := make(map[string]bool, len(desc.Fields))
	for _, spec := range desc.Fields {
		if spec.Name == "" {
			return fmt.Errorf("dataset %s declares a field with no name", desc.Name)
		}
		if seen[spec.Name] {
			return fmt.Errorf("dataset %s declares field %q twice", desc.Name, spec.Name)
		}
		seen[spec.Name] = true
	}

	return nil
}
