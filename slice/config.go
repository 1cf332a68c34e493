package slice

import (
	"fmt"
	"runtime"

	"gopkg.in/gcfg.v1"
)

// Config controls a Slicer.
type Config struct {
	// MaxTriangles bounds the triangle sink capacity per frame.
	MaxTriangles int
	// Workers is the number of concurrent slicing goroutines. Zero
	// selects runtime.NumCPU.
	Workers int
	// WTol is the minimum |w| span of an edge before the interpolation
	// parameter falls back to the midpoint. Zero selects a default.
	WTol float32
}

const (
	defaultMaxTriangles = 1 << 17
	defaultWTol         = 1e-9
)

func (c *Config) withDefaults() Config {
	cfg := *c
	if cfg.MaxTriangles == 0 {
		cfg.MaxTriangles = defaultMaxTriangles
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.WTol == 0 {
		cfg.WTol = defaultWTol
	}
	return cfg
}

func (c *Config) validate() error {
	if c.MaxTriangles < 0 {
		return fmt.Errorf("negative MaxTriangles %d", c.MaxTriangles)
	}
	if c.Workers < 0 {
		return fmt.Errorf("negative Workers %d", c.Workers)
	}
	if c.WTol < 0 {
		return fmt.Errorf("negative WTol %g", c.WTol)
	}
	return nil
}

// LoadConfig reads a Config from a gcfg/INI style file of the form
//
//	[slicer]
//	MaxTriangles = 200000
//	Workers = 8
//	WTol = 1e-9
//
// Unset values keep their zero value and resolve to defaults inside
// NewSlicer.
func LoadConfig(path string) (Config, error) {
	var file struct {
		Slicer struct {
			MaxTriangles int
			Workers      int
			WTol         float64
		}
	}
	if err := gcfg.ReadFileInto(&file, path); err != nil {
		return Config{}, fmt.Errorf("reading slicer config: %w", err)
	}
	cfg := Config{
		MaxTriangles: file.Slicer.MaxTriangles,
		Workers:      file.Slicer.Workers,
		WTol:         float32(file.Slicer.WTol),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}
