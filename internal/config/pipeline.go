package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/invariant/internal/chroma"
)

// DefaultConfigPath is the path to the canonical pipeline defaults file.
const DefaultConfigPath = "config/pipeline.defaults.json"

// PipelineConfig holds every parameter of one pipeline run. Nil fields fall
// back to the defaults returned by the Get* methods, so partial JSON files
// are safe.
//
// Offsets, when present, are used verbatim. Otherwise NumSurfaces offsets
// are spread evenly over [OffsetMin, OffsetMax].
type PipelineConfig struct {
	// Line family
	NumSurfaces      *int     `json:"num_surfaces,omitempty"`
	PointsPerSurface *int     `json:"points_per_surface,omitempty"`
	XMin             *float64 `json:"x_min,omitempty"`
	XMax             *float64 `json:"x_max,omitempty"`
	Slope            *float64 `json:"slope,omitempty"`

	// Offsets
	Offsets   []float64 `json:"offsets,omitempty"`
	OffsetMin *float64  `json:"offset_min,omitempty"`
	OffsetMax *float64  `json:"offset_max,omitempty"`

	// Histogram
	BinCount *int `json:"bin_count,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyPipelineConfig returns a PipelineConfig with all fields unset.
func EmptyPipelineConfig() *PipelineConfig {
	return &PipelineConfig{}
}

// DefaultPipelineConfig returns the reference scenario: five surfaces of
// fifty samples over x in [0, 5], slope 0.5, offsets 0..4, thirty bins.
func DefaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		NumSurfaces:      ptrInt(5),
		PointsPerSurface: ptrInt(50),
		XMin:             ptrFloat64(0),
		XMax:             ptrFloat64(5),
		Slope:            ptrFloat64(0.5),
		OffsetMin:        ptrFloat64(0),
		OffsetMax:        ptrFloat64(4),
		BinCount:         ptrInt(chroma.DefaultBinCount),
	}
}

// LoadPipelineConfig loads a PipelineConfig from a JSON file.
// The file must have a .json extension and be at most 1MB.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
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

	cfg := EmptyPipelineConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// It searches the current directory and common parent directories and
// panics if the file cannot be loaded. Intended for test setup.
func MustLoadDefaultConfig() *PipelineConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadPipelineConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the effective configuration describes a valid run.
// Errors wrap chroma.ErrInvalidParameter.
func (c *PipelineConfig) Validate() error {
	if c.OffsetMin != nil && !isFinite(*c.OffsetMin) {
		return fmt.Errorf("%w: offset_min must be finite", chroma.ErrInvalidParameter)
	}
	if c.OffsetMax != nil && !isFinite(*c.OffsetMax) {
		return fmt.Errorf("%w: offset_max must be finite", chroma.ErrInvalidParameter)
	}
	if len(c.Offsets) == 0 && c.GetNumSurfaces() > 1 && c.GetOffsetMin() == c.GetOffsetMax() {
		return fmt.Errorf("%w: offset_min and offset_max must differ for %d surfaces", chroma.ErrInvalidParameter, c.GetNumSurfaces())
	}
	if err := c.LineFamily().Validate(); err != nil {
		return err
	}
	if c.GetBinCount() < 1 {
		return fmt.Errorf("%w: bin_count must be at least 1, got %d", chroma.ErrInvalidParameter, c.GetBinCount())
	}
	return nil
}

// LineFamily returns the generator parameters described by the config.
func (c *PipelineConfig) LineFamily() chroma.LineFamily {
	return chroma.LineFamily{
		NumSurfaces:      c.GetNumSurfaces(),
		PointsPerSurface: c.GetPointsPerSurface(),
		XMin:             c.GetXMin(),
		XMax:             c.GetXMax(),
		Slope:            c.GetSlope(),
		Offsets:          c.GetOffsets(),
	}
}

// GetNumSurfaces returns the num_surfaces value or the default.
func (c *PipelineConfig) GetNumSurfaces() int {
	if c.NumSurfaces == nil {
		if len(c.Offsets) > 0 {
			return len(c.Offsets)
		}
		return 5
	}
	return *c.NumSurfaces
}

// GetPointsPerSurface returns the points_per_surface value or the default.
func (c *PipelineConfig) GetPointsPerSurface() int {
	if c.PointsPerSurface == nil {
		return 50
	}
	return *c.PointsPerSurface
}

// GetXMin returns the x_min value or the default.
func (c *PipelineConfig) GetXMin() float64 {
	if c.XMin == nil {
		return 0
	}
	return *c.XMin
}

// GetXMax returns the x_max value or the default.
func (c *PipelineConfig) GetXMax() float64 {
	if c.XMax == nil {
		return 5
	}
	return *c.XMax
}

// GetSlope returns the slope value or the default.
func (c *PipelineConfig) GetSlope() float64 {
	if c.Slope == nil {
		return 0.5
	}
	return *c.Slope
}

// GetOffsetMin returns the offset_min value or the default.
func (c *PipelineConfig) GetOffsetMin() float64 {
	if c.OffsetMin == nil {
		return 0
	}
	return *c.OffsetMin
}

// GetOffsetMax returns the offset_max value or the default.
func (c *PipelineConfig) GetOffsetMax() float64 {
	if c.OffsetMax == nil {
		return 4
	}
	return *c.OffsetMax
}

// GetOffsets returns a copy of the explicit offsets, or NumSurfaces offsets
// spread evenly over [OffsetMin, OffsetMax].
func (c *PipelineConfig) GetOffsets() []float64 {
	if len(c.Offsets) > 0 {
		out := make([]float64, len(c.Offsets))
		copy(out, c.Offsets)
		return out
	}
	return chroma.EvenOffsets(c.GetNumSurfaces(), c.GetOffsetMin(), c.GetOffsetMax())
}

// GetBinCount returns the bin_count value or the default.
func (c *PipelineConfig) GetBinCount() int {
	if c.BinCount == nil {
		return chroma.DefaultBinCount
	}
	return *c.BinCount
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
