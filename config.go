package vgcore

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunables of a drawing session. Lengths ending in MM are
// display millimetres; they are converted to model units through the view
// transform at the time they are used.
type Config struct {
	// SnapTolMM is the radius within which points snap to edges. Handles
	// and intersections are found one millimetre further out.
	SnapTolMM float64 `envconfig:"SNAP_TOL_MM" default:"3" toml:"snap_tol_mm"`
	// NearTolMM is the pick radius for hit testing shapes.
	NearTolMM float64 `envconfig:"NEAR_TOL_MM" default:"5" toml:"near_tol_mm"`
	// MinShapeMM is the smallest extent a command commits.
	MinShapeMM float64 `envconfig:"MIN_SHAPE_MM" default:"2" toml:"min_shape_mm"`
	// ClickPx is the pointer travel below which a press counts as a click.
	ClickPx float64 `envconfig:"CLICK_PX" default:"5" toml:"click_px"`
	// Grid rounds points that snap to nothing onto a tenth of a display
	// millimetre.
	Grid bool `envconfig:"GRID" default:"false" toml:"grid"`

	DPI            float64 `envconfig:"DPI" default:"96" toml:"dpi"`
	PenWidthFactor float64 `envconfig:"PEN_WIDTH_FACTOR" default:"1" toml:"pen_width_factor"`

	// LineColor and FillColor are color names or #rrggbb / #aarrggbb
	// literals; an empty FillColor means no fill.
	LineColor string  `envconfig:"LINE_COLOR" default:"black" toml:"line_color"`
	FillColor string  `envconfig:"FILL_COLOR" default:"" toml:"fill_color"`
	LineWidth float64 `envconfig:"LINE_WIDTH" default:"-1" toml:"line_width"`

	// Language selects the message catalog, as a BCP 47 tag.
	Language string `envconfig:"MESSAGE_LANG" default:"en" toml:"language"`
}

// Load reads the configuration from VGCORE_* environment variables, falling
// back to the defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("VGCORE", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile is like Load but overlays the TOML file at path on top of the
// environment. Keys missing from the file keep their environment values.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot work with.
func (cfg *Config) Validate() error {
	switch {
	case cfg.DPI <= 0:
		return fmt.Errorf("dpi must be positive, got %g", cfg.DPI)
	case cfg.SnapTolMM < 0 || cfg.NearTolMM < 0 || cfg.MinShapeMM < 0:
		return fmt.Errorf("tolerances must not be negative")
	case cfg.PenWidthFactor <= 0:
		return fmt.Errorf("pen width factor must be positive, got %g", cfg.PenWidthFactor)
	}
	return nil
}
