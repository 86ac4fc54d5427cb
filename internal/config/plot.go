package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PlotConfig represents the optional plotting defaults file. Fields left
// out of the JSON keep their defaults, so partial configs are safe; the
// Get* methods provide the fallback values.
type PlotConfig struct {
	// Figure size in inches.
	FigureWidth  *float64 `json:"figure_width,omitempty"`
	FigureHeight *float64 `json:"figure_height,omitempty"`

	// Stride thins the velocity arrow grid: one arrow every N nodes.
	Stride *int `json:"stride,omitempty"`

	// YIndex selects the profile slice for 3D runs.
	YIndex *int `json:"y_index,omitempty"`

	// PaletteColors is the number of colours in the heatmap palette.
	PaletteColors *int `json:"palette_colors,omitempty"`

	// OutputDir is the base directory for generated plots.
	OutputDir *string `json:"output_dir,omitempty"`
}

// LoadPlotConfig loads a PlotConfig from a JSON file. The file must have
// a .json extension and stay under the max file size.
func LoadPlotConfig(path string) (*PlotConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &PlotConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *PlotConfig) Validate() error {
	if c.FigureWidth != nil && *c.FigureWidth <= 0 {
		return fmt.Errorf("figure_width must be positive, got %f", *c.FigureWidth)
	}
	if c.FigureHeight != nil && *c.FigureHeight <= 0 {
		return fmt.Errorf("figure_height must be positive, got %f", *c.FigureHeight)
	}
	if c.Stride != nil && *c.Stride < 1 {
		return fmt.Errorf("stride must be at least 1, got %d", *c.Stride)
	}
	if c.YIndex != nil && *c.YIndex < 0 {
		return fmt.Errorf("y_index must be non-negative, got %d", *c.YIndex)
	}
	if c.PaletteColors != nil && *c.PaletteColors < 2 {
		return fmt.Errorf("palette_colors must be at least 2, got %d", *c.PaletteColors)
	}
	return nil
}

// GetFigureWidth returns the figure width in inches or the default.
func (c *PlotConfig) GetFigureWidth() float64 {
	if c.FigureWidth == nil {
		return 10.0
	}
	return *c.FigureWidth
}

// GetFigureHeight returns the figure height in inches or the default.
func (c *PlotConfig) GetFigureHeight() float64 {
	if c.FigureHeight == nil {
		return 4.0
	}
	return *c.FigureHeight
}

// GetStride returns the arrow stride or the default.
func (c *PlotConfig) GetStride() int {
	if c.Stride == nil {
		return 4
	}
	return *c.Stride
}

// GetYIndex returns the profile y index or the default.
func (c *PlotConfig) GetYIndex() int {
	if c.YIndex == nil {
		return 0
	}
	return *c.YIndex
}

// GetPaletteColors returns the heatmap palette size or the default.
func (c *PlotConfig) GetPaletteColors() int {
	if c.PaletteColors == nil {
		return 255
	}
	return *c.PaletteColors
}

// GetOutputDir returns the plot output directory or the default.
func (c *PlotConfig) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "plots"
	}
	return *c.OutputDir
}
