package mandyoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeParams(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "param_1.5.3.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write params: %v", err)
	}
	return path
}

func TestReadParameters2D(t *testing.T) {
	path := writeParams(t, "5 9\n1000000.0 300000.0\n\nprint_step 10\nstepMAX 100\ntimeMAX 1.0e6\nsolver direct\n")

	params, err := ReadParameters(path)
	if err != nil {
		t.Fatalf("ReadParameters: %v", err)
	}
	if params.Dimension != 2 {
		t.Errorf("Dimension = %d, want 2", params.Dimension)
	}
	if params.Shape[0] != 5 || params.Shape[1] != 9 {
		t.Errorf("Shape = %v, want [5 9]", params.Shape)
	}
	if params.PrintStep != 10 || params.StepMax != 100 {
		t.Errorf("PrintStep, StepMax = %d, %d, want 10, 100", params.PrintStep, params.StepMax)
	}
	if params.TimeMax != 1.0e6 {
		t.Errorf("TimeMax = %g, want 1e6", params.TimeMax)
	}
	if params.Extra["solver"] != "direct" {
		t.Errorf("Extra[solver] = %q, want %q", params.Extra["solver"], "direct")
	}

	region := params.Region()
	want := []float64{0, 1000000, -300000, 0}
	for i := range want {
		if region[i] != want[i] {
			t.Fatalf("Region = %v, want %v", region, want)
		}
	}
}

func TestReadParameters3D(t *testing.T) {
	path := writeParams(t, "4 3 5\n800000 400000 200000\nprint_step 5\nstepMAX 50\n")

	params, err := ReadParameters(path)
	if err != nil {
		t.Fatalf("ReadParameters: %v", err)
	}
	want := &Parameters{
		Dimension: 3,
		Shape:     []int{4, 3, 5},
		Extent:    []float64{800000, 400000, 200000},
		PrintStep: 5,
		StepMax:   50,
		Extra:     map[string]string{},
	}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Errorf("ReadParameters mismatch (-want +got):\n%s", diff)
	}
	if params.Size() != 60 {
		t.Errorf("Size = %d, want 60", params.Size())
	}
	region := params.Region()
	wantRegion := []float64{0, 800000, -400000, 0, -200000, 0}
	for i := range wantRegion {
		if region[i] != wantRegion[i] {
			t.Fatalf("Region = %v, want %v", region, wantRegion)
		}
	}
}

func TestReadParametersErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"bad node count", "a b\n10 10\nprint_step 1\nstepMAX 1\n"},
		{"too many axes", "2 2 2 2\n1 1 1 1\nprint_step 1\nstepMAX 1\n"},
		{"extent count mismatch", "4 4\n100 200 300\nprint_step 1\nstepMAX 1\n"},
		{"single node axis", "1 4\n100 200\nprint_step 1\nstepMAX 1\n"},
		{"missing print_step", "4 4\n100 200\nstepMAX 1\n"},
		{"dangling key", "4 4\n100 200\nprint_step\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeParams(t, tt.content)
			if _, err := ReadParameters(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReadParametersMissingFile(t *testing.T) {
	if _, err := ReadParameters(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
