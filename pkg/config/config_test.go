package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.toml")

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("optional missing file: %v", err)
	}
	if cfg.Render.Engine != "builtin" || !cfg.Cache.Enabled {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	if _, err := Load(path, true); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("required missing file: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := write(t, `
[render]
formats = ["png", "drawio"]
engine = "graphviz"
scale = 2.5
background = "#fafafa"
native = true
rasterizers = ["chrome"]

[cache]
enabled = false
ttl = "36h"
`)
	cfg, err := Load(path, true)
	if err != nil {
		t.Fatal(err)
	}
	r := cfg.Render
	if strings.Join(r.Formats, ",") != "png,drawio" || r.Engine != "graphviz" || r.Scale != 2.5 {
		t.Errorf("render = %+v", r)
	}
	if r.Background != "#fafafa" || !r.Native || len(r.Rasterizers) != 1 {
		t.Errorf("render = %+v", r)
	}
	if cfg.Cache.Enabled || cfg.Cache.TTL.Duration != 36*time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(write(t, "[render]\nscale = 3.0\n"), true)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Scale != 3 || cfg.Render.Engine != "builtin" || len(cfg.Render.Formats) == 0 {
		t.Errorf("render = %+v", cfg.Render)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":      "[render\n",
		"unknown key": "[render]\ncolour = \"red\"\n",
		"format":      "[render]\nformats = [\"gif\"]\n",
		"engine":      "[render]\nengine = \"neato\"\n",
		"rasterizer":  "[render]\nrasterizers = [\"inkscape\"]\n",
		"ttl":         "[cache]\nttl = \"soon\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(write(t, content), true); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `ttl = "168h0m0s"`) {
		t.Errorf("encoded config:\n%s", buf.String())
	}

	cfg, err := Load(write(t, buf.String()), true)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.TTL.Duration != Default().Cache.TTL.Duration {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join("/tmp/xdg", "drawio", "config.toml") {
		t.Errorf("DefaultPath() = %s", path)
	}
}
