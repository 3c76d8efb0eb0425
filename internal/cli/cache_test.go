package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/timeless-residents/handson-drawio-api/pkg/cache"
)

func TestCacheClearCommand(t *testing.T) {
	isolate(t)
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}

	// Clearing a cache that was never created is not an error.
	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("clear empty: %v", err)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	_ = fc.Set(ctx, "a", []byte("1"), 0)
	_ = fc.Set(ctx, "b", []byte("2"), 0)

	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := fc.Get(ctx, "a"); ok {
		t.Error("entry survived cache clear")
	}
}

func TestCachePathFromConfig(t *testing.T) {
	isolate(t)
	custom := filepath.Join(t.TempDir(), "raster")
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[cache]\nenabled = true\ndir = \""+filepath.ToSlash(custom)+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	c.configPath = cfgPath
	got, err := c.cachePath()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.ToSlash(custom) {
		t.Errorf("cachePath() = %q, want %q", got, custom)
	}

	if err := execute(t, "--config", cfgPath, "cache", "path"); err != nil {
		t.Error(err)
	}
}
