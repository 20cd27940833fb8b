package dataset

import (
	"testing"

	"github.com/strata-sh/strata/internal/fields"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDataset builds a 2x2x2 dataset with cell centers at 0.25 and 0.75 on
// each axis. Density values equal the linear cell index.
func testDataset(t *testing.T) *Dataset {
	t.Helper()

	ds, err := Parse([]byte(validDescriptor), fields.DefaultRegistry())
	require.NoError(t, err)
	return ds
}

func TestAllDataCoversDomain(t *testing.T) {
	ds := testDataset(t)
	sel := ds.AllData()

	assert.Equal(t, "all_data", sel.Kind())
	assert.Equal(t, 8, sel.CellCount())
	assert.Same(t, ds, sel.Dataset())

	values, err := sel.Values("density")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, values)
}

func TestSphereSelection(t *testing.T) {
	ds := testDataset(t)

	// Every cell center is at distance sqrt(3)/4 from the domain center.
	all := ds.Sphere([3]float64{0.5, 0.5, 0.5}, 0.5)
	assert.Equal(t, 8, all.CellCount())

	none := ds.Sphere([3]float64{0.5, 0.5, 0.5}, 0.4)
	assert.Equal(t, 0, none.CellCount())

	corner := ds.Sphere([3]float64{0.25, 0.25, 0.25}, 0.1)
	assert.Equal(t, 1, corner.CellCount())

	values, err := corner.Values("density")
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, values)
}

func TestRegionSelection(t *testing.T) {
	ds := testDataset(t)

	octant := ds.Region([3]float64{0, 0, 0}, [3]float64{0.5, 0.5, 0.5})
	assert.Equal(t, 1, octant.CellCount())

	half := ds.Region([3]float64{0, 0, 0}, [3]float64{1, 1, 0.5})
	assert.Equal(t, 4, half.CellCount())

	empty := ds.Region([3]float64{0.9, 0.9, 0.9}, [3]float64{1, 1, 1})
	assert.Equal(t, 0, empty.CellCount())
}

func TestSelectorDerivedValues(t *testing.T) {
	ds := testDataset(t)
	sel := ds.AllData()

	pressure, err := sel.Values("pressure")
	require.NoError(t, err)
	require.Len(t, pressure, 8)
	// density * temperature * k/mH for the first cell: 1 * 10 * 8.254e7.
	assert.InDelta(t, 8.254e8, pressure[0], 1e2)
}

func TestSelectorDerivedValuesAreMasked(t *testing.T) {
	ds := testDataset(t)
	corner := ds.Sphere([3]float64{0.25, 0.25, 0.25}, 0.1)

	speed, err := corner.Values("sound_speed")
	require.NoError(t, err)
	assert.Len(t, speed, 1)
}

func TestSelectorUnknownField(t *testing.T) {
	ds := testDataset(t)

	_, err := ds.AllData().Values("entropy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestSelectorFieldContainer(t *testing.T) {
	ds := testDataset(t)
	sel := ds.Sphere([3]float64{0.5, 0.5, 0.5}, 0.5)

	// Selectors expose the same field namespace as their dataset.
	assert.Equal(t, ds.NativeFieldIDs(), sel.NativeFieldIDs())
	assert.Equal(t, ds.DerivedFieldIDs(), sel.DerivedFieldIDs())
}

func TestSummary(t *testing.T) {
	ds := testDataset(t)
	summary := ds.Summary()

	assert.Contains(t, summary, "galaxy")
	assert.Contains(t, summary, "2x2x2")
	assert.Contains(t, summary, "8 cells")
}
