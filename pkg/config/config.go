// Package config loads CLI defaults from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/drawio/config.toml, falling back to
// ~/.config/drawio/config.toml. Every key is optional:
//
//	[render]
//	formats = ["svg", "png", "drawio"]
//	engine = "builtin"        # or "graphviz"
//	scale = 2.0
//	background = "#ffffff"
//	transparent = false
//	native = true             # paint in process when no rasterizer works
//	rasterizers = ["rsvg", "chrome"]
//	strict = false
//
//	[cache]
//	enabled = true
//	dir = "/tmp/drawio-cache"
//	ttl = "72h"
//
// Command-line flags override file values.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/timeless-residents/handson-drawio-api/pkg/cache"
	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
	"github.com/timeless-residents/handson-drawio-api/pkg/pipeline"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/raster"
)

// Config is the decoded file.
type Config struct {
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
}

// Render holds defaults for drawio render and drawio demo.
type Render struct {
	Formats     []string `toml:"formats"`
	Engine      string   `toml:"engine"`
	Scale       float64  `toml:"scale"`
	Background  string   `toml:"background"`
	Transparent bool     `toml:"transparent"`
	Native      bool     `toml:"native"`
	Rasterizers []string `toml:"rasterizers"`
	Strict      bool     `toml:"strict"`
}

// Cache configures the rasterized artifact cache.
type Cache struct {
	Enabled bool     `toml:"enabled"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl"`
}

// Duration decodes TOML strings such as "36h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the values used when no file exists.
func Default() Config {
	return Config{
		Render: Render{
			Formats: append([]string(nil), pipeline.DefaultFormats...),
			Engine:  pipeline.DefaultEngine,
			Scale:   pipeline.DefaultScale,
		},
		Cache: Cache{
			Enabled: true,
			TTL:     Duration{cache.DefaultTTL},
		},
	}
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "drawio", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "drawio", "config.toml"), nil
}

// Load reads the file at path over [Default]. A missing file is not an
// error unless required is set, which the CLI does for an explicit --config.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if required {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks values that the file format cannot constrain.
func (c Config) Validate() error {
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if c.Render.Engine != "" {
		if err := pipeline.ValidateEngine(c.Render.Engine); err != nil {
			return err
		}
	}
	if c.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %v", c.Render.Scale)
	}
	if err := errors.ValidateColor(c.Render.Background); err != nil {
		return err
	}
	if _, err := raster.ByName(c.Render.Rasterizers...); err != nil {
		return err
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
