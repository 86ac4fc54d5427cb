package mandyoc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
	"github.com/tectonic-data/mandyoc.report/internal/testutil"
)

func TestReadSwarms(t *testing.T) {
	dir := testutil.WriteRunDir(t, testutil.RunSpec{
		Shape:          []int{3, 3},
		Extent:         []float64{100000, 100000},
		PrintStep:      10,
		StepMax:        20,
		Steps:          []int{0, 10},
		SwarmRanks:     3,
		SwarmParticles: 4,
	})

	params, err := mandyoc.ReadParameters(filepath.Join(dir, mandyoc.DefaultParametersFile))
	testutil.AssertNoError(t, err)

	swarms, err := mandyoc.ReadSwarms(dir, params)
	testutil.AssertNoError(t, err)

	if len(swarms) != 2 {
		t.Fatalf("got %d swarms, want 2", len(swarms))
	}
	if swarms[1].Step != 10 {
		t.Errorf("swarms[1].Step = %d, want 10", swarms[1].Step)
	}
	// The fixture records step*1e5 years, so step 10 is 1.0 Ma.
	if swarms[1].Time != 1.0 {
		t.Errorf("swarms[1].Time = %g Ma, want 1.0", swarms[1].Time)
	}

	// 3 ranks x 4 particles concatenate in rank order.
	sw := swarms[0]
	if sw.Len() != 12 {
		t.Fatalf("Len = %d, want 12", sw.Len())
	}
	// Particle 5 is rank 1, index 1 in the fixture: id 5.
	if sw.X[5] != 50 || sw.Y[5] != -5 || sw.Z[5] != -500 {
		t.Errorf("particle 5 at (%g, %g, %g), want (50, -5, -500)", sw.X[5], sw.Y[5], sw.Z[5])
	}
	if sw.Flag[5] != 1 {
		t.Errorf("particle 5 flag = %g, want 1", sw.Flag[5])
	}
}

func TestReadSwarmsMissingFiles(t *testing.T) {
	dir := testutil.WriteRunDir(t, testutil.RunSpec{
		Shape:     []int{3, 3},
		Extent:    []float64{100000, 100000},
		PrintStep: 10,
		StepMax:   10,
		Steps:     []int{0},
	})
	params, err := mandyoc.ReadParameters(filepath.Join(dir, mandyoc.DefaultParametersFile))
	testutil.AssertNoError(t, err)

	if _, err := mandyoc.ReadSwarms(dir, params); err == nil {
		t.Error("expected error when no swarm files exist")
	}
}

func TestReadSwarmsMalformedRow(t *testing.T) {
	dir := testutil.WriteRunDir(t, testutil.RunSpec{
		Shape:          []int{3, 3},
		Extent:         []float64{100000, 100000},
		PrintStep:      10,
		StepMax:        10,
		Steps:          []int{0},
		SwarmRanks:     1,
		SwarmParticles: 2,
	})
	params, err := mandyoc.ReadParameters(filepath.Join(dir, mandyoc.DefaultParametersFile))
	testutil.AssertNoError(t, err)

	bad := filepath.Join(dir, "step_0-rank0.txt")
	if err := os.WriteFile(bad, []byte("1.0 2.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := mandyoc.ReadSwarms(dir, params); err == nil {
		t.Error("expected error for a row with too few columns")
	}
}
