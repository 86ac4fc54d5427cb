package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadPlotConfig(t *testing.T) {
	path := writeConfig(t, "plot.json", `{"figure_width": 12, "stride": 2, "output_dir": "figs"}`)

	cfg, err := LoadPlotConfig(path)
	if err != nil {
		t.Fatalf("LoadPlotConfig: %v", err)
	}
	if cfg.GetFigureWidth() != 12 {
		t.Errorf("GetFigureWidth = %g, want 12", cfg.GetFigureWidth())
	}
	if cfg.GetStride() != 2 {
		t.Errorf("GetStride = %d, want 2", cfg.GetStride())
	}
	if cfg.GetOutputDir() != "figs" {
		t.Errorf("GetOutputDir = %q, want figs", cfg.GetOutputDir())
	}
	// Omitted fields fall back to defaults.
	if cfg.GetFigureHeight() != 4.0 {
		t.Errorf("GetFigureHeight = %g, want 4", cfg.GetFigureHeight())
	}
	if cfg.GetPaletteColors() != 255 {
		t.Errorf("GetPaletteColors = %d, want 255", cfg.GetPaletteColors())
	}
	if cfg.GetYIndex() != 0 {
		t.Errorf("GetYIndex = %d, want 0", cfg.GetYIndex())
	}
}

func TestLoadPlotConfigDefaultsWhenEmpty(t *testing.T) {
	path := writeConfig(t, "plot.json", `{}`)
	cfg, err := LoadPlotConfig(path)
	if err != nil {
		t.Fatalf("LoadPlotConfig: %v", err)
	}
	if cfg.GetStride() != 4 || cfg.GetOutputDir() != "plots" {
		t.Errorf("defaults: stride=%d outputDir=%q", cfg.GetStride(), cfg.GetOutputDir())
	}
}

func TestLoadPlotConfigRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"wrong extension", "plot.yaml", "{}"},
		{"invalid json", "plot.json", "{"},
		{"negative width", "plot.json", `{"figure_width": -1}`},
		{"zero stride", "plot.json", `{"stride": 0}`},
		{"negative y index", "plot.json", `{"y_index": -3}`},
		{"tiny palette", "plot.json", `{"palette_colors": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			if _, err := LoadPlotConfig(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadPlotConfigMissingFile(t *testing.T) {
	if _, err := LoadPlotConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
