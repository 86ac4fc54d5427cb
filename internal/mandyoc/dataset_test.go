package mandyoc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
	"github.com/tectonic-data/mandyoc.report/internal/testutil"
)

func TestReadDataset2D(t *testing.T) {
	dir := testutil.WriteRunDir(t, testutil.RunSpec{
		Shape:     []int{4, 3},
		Extent:    []float64{1000000, 300000},
		PrintStep: 10,
		StepMax:   100,
		Steps:     []int{0, 10, 20},
		Scalars:   []string{"temperature", "density"},
		Velocity:  true,
		Viscosity: true,
	})

	ds, err := mandyoc.ReadDataset(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 10, 20}, ds.Steps)
	require.Len(t, ds.Times, 3)
	// Fixture records step*1e5 years; times come back in Ma.
	assert.InDelta(t, 0.0, ds.Times[0], 1e-12)
	assert.InDelta(t, 1.0, ds.Times[1], 1e-12)
	assert.InDelta(t, 2.0, ds.Times[2], 1e-12)

	temper, err := ds.Field("temperature")
	require.NoError(t, err)
	assert.Equal(t, "K", temper.Units)
	assert.Equal(t, []int{4, 3}, temper.Shape)

	// Fortran order: node (i, k) sits at flat index i + nx*k.
	assert.Equal(t, testutil.ScalarValue(0, 10), temper.At(1, 0, 0))
	assert.Equal(t, testutil.ScalarValue(1, 10), temper.At(1, 1, 0))
	assert.Equal(t, testutil.ScalarValue(4, 10), temper.At(1, 0, 1))
	assert.Equal(t, testutil.ScalarValue(11, 20), temper.At(2, 3, 2))

	if _, ok := ds.Fields["pressure"]; ok {
		t.Error("pressure loaded although the run wrote no Pressure files")
	}
}

func TestReadDatasetVelocityComponents(t *testing.T) {
	dir := testutil.WriteRunDir(t, testutil.RunSpec{
		Shape:     []int{3, 4},
		Extent:    []float64{600000, 300000},
		PrintStep: 5,
		StepMax:   10,
		Steps:     []int{0, 5},
		Velocity:  true,
	})

	ds, err := mandyoc.ReadDataset(dir, &mandyoc.ReadOptions{Quantities: []string{"velocity"}})
	require.NoError(t, err)

	vx, err := ds.Field("velocity_x")
	require.NoError(t, err)
	vz, err := ds.Field("velocity_z")
	require.NoError(t, err)
	if _, err := ds.Field("velocity_y"); err == nil {
		t.Error("velocity_y present on a 2D run")
	}

	// The file interleaves vx and vz per node; the reader de-interleaves.
	assert.Equal(t, testutil.VelocityValue(0, 0, 5), vx.At(1, 0, 0))
	assert.Equal(t, testutil.VelocityValue(0, 1, 5), vz.At(1, 0, 0))
	assert.Equal(t, testutil.VelocityValue(7, 0, 0), vx.At(0, 1, 2))
	assert.Equal(t, testutil.VelocityValue(7, 1, 0), vz.At(0, 1, 2))

	mag, err := ds.VelocityMagnitude(1)
	require.NoError(t, err)
	wantMag := math.Hypot(testutil.VelocityValue(3, 0, 5), testutil.VelocityValue(3, 1, 5))
	assert.InDelta(t, wantMag, mag[3], 1e-12)
}

func TestReadDatasetViscosityOnCenters(t *testing.T) {
	dir := testutil.WriteRunDir(t, testutil.RunSpec{
		Shape:     []int{4, 3},
		Extent:    []float64{900000, 200000},
		PrintStep: 10,
		StepMax:   20,
		Steps:     []int{0, 10},
		Viscosity: true,
	})

	ds, err := mandyoc.ReadDataset(dir, &mandyoc.ReadOptions{Quantities: []string{"viscosity"}})
	require.NoError(t, err)

	visc, err := ds.Field("viscosity")
	require.NoError(t, err)
	assert.True(t, visc.OnCenters)
	assert.Equal(t, []int{3, 2}, visc.Shape)

	// Element (i, k) sits at flat index i + (nx-1)*k regardless of which
	// rank file carried it.
	assert.Equal(t, testutil.ScalarValue(0, 0), visc.At(0, 0, 0))
	assert.Equal(t, testutil.ScalarValue(4, 10), visc.At(1, 1, 1))
	assert.Equal(t, testutil.ScalarValue(5, 10), visc.At(1, 2, 1))
}

func TestReadDataset3DProfile(t *testing.T) {
	dir := testutil.WriteRunDir(t, testutil.RunSpec{
		Shape:     []int{3, 2, 4},
		Extent:    []float64{300000, 100000, 400000},
		PrintStep: 1,
		StepMax:   1,
		Steps:     []int{0},
		Scalars:   []string{"temperature"},
	})

	ds, err := mandyoc.ReadDataset(dir, &mandyoc.ReadOptions{Quantities: []string{"temperature"}})
	require.NoError(t, err)

	temper, err := ds.Field("temperature")
	require.NoError(t, err)

	profile, err := temper.Profile(0, 1)
	require.NoError(t, err)
	require.Len(t, profile, 3*4)

	// Slicing at j=1 must pick flat index i + nx*(1 + ny*k).
	nx, ny := 3, 2
	for k := 0; k < 4; k++ {
		for i := 0; i < nx; i++ {
			want := testutil.ScalarValue(i+nx*(1+ny*k), 0)
			assert.Equal(t, want, profile[i+nx*k], "profile(%d,%d)", i, k)
		}
	}

	if _, err := temper.Profile(0, 5); err == nil {
		t.Error("expected error for out-of-range y index")
	}
	if _, err := temper.Profile(3, 0); err == nil {
		t.Error("expected error for out-of-range step index")
	}
}

func TestReadDatasetExplicitMissingQuantity(t *testing.T) {
	dir := testutil.WriteRunDir(t, testutil.RunSpec{
		Shape:     []int{3, 3},
		Extent:    []float64{100000, 100000},
		PrintStep: 1,
		StepMax:   1,
		Steps:     []int{0},
		Scalars:   []string{"temperature"},
	})

	// Explicitly requesting a quantity the run never wrote must fail.
	_, err := mandyoc.ReadDataset(dir, &mandyoc.ReadOptions{Quantities: []string{"density"}})
	testutil.AssertError(t, err)

	_, err = mandyoc.ReadDataset(dir, &mandyoc.ReadOptions{Quantities: []string{"vorticity"}})
	testutil.AssertError(t, err)
}

func TestStepIndex(t *testing.T) {
	ds := &mandyoc.Dataset{Steps: []int{0, 10, 20}}
	idx, err := ds.StepIndex(10)
	testutil.AssertNoError(t, err)
	if idx != 1 {
		t.Errorf("StepIndex(10) = %d, want 1", idx)
	}
	if _, err := ds.StepIndex(15); err == nil {
		t.Error("expected error for unsaved step")
	}
}

func TestFieldMinMax(t *testing.T) {
	f := &mandyoc.Field{
		Shape: []int{2, 2},
		Data:  [][]float64{{1, -3, 2, 0}, {4, 1, 1, 1}},
	}
	min, max := f.MinMax()
	if min != -3 || max != 4 {
		t.Errorf("MinMax = %g, %g, want -3, 4", min, max)
	}
}
