package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnion(t *testing.T) {
	tests := []struct {
		name    string
		native  []string
		derived []string
		want    []string
	}{
		{
			name:    "disjoint sets are merged sorted",
			native:  []string{"temperature", "density"},
			derived: []string{"pressure"},
			want:    []string{"density", "pressure", "temperature"},
		},
		{
			name:    "overlap is deduplicated",
			native:  []string{"density"},
			derived: []string{"density", "pressure"},
			want:    []string{"density", "pressure"},
		},
		{
			name:    "empty native",
			derived: []string{"b", "a"},
			want:    []string{"a", "b"},
		},
		{
			name: "both empty",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Union(tt.native, tt.derived))
		})
	}
}

func TestUnionDoesNotMutateInputs(t *testing.T) {
	native := []string{"z", "a"}
	derived := []string{"m"}

	Union(native, derived)

	assert.Equal(t, []string{"z", "a"}, native)
	assert.Equal(t, []string{"m"}, derived)
}
