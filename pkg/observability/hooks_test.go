package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopExportHooks{}
	e.OnExportStart(ctx, "svg")
	e.OnExportComplete(ctx, "svg", "out.svg", time.Second, nil)
	e.OnRasterize(ctx, "rsvg-convert", "png", time.Second, nil)
	e.OnFallback(ctx, "png", "placeholder", nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Export() should return NoopExportHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customExport := &testExportHooks{}
	SetExportHooks(customExport)
	if Export() != customExport {
		t.Error("SetExportHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Reset() should restore NoopExportHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testExportHooks{}
	SetExportHooks(custom)
	SetExportHooks(nil)

	if Export() != custom {
		t.Error("SetExportHooks(nil) should be ignored")
	}

	Reset()
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnExportStart(ctx, "png")
	h.OnRasterize(ctx, "chrome", "png", time.Millisecond, errors.New("boom"))
	h.OnFallback(ctx, "png", "placeholder", errors.New("missing"))
	h.OnExportComplete(ctx, "png", "out.png", time.Millisecond, nil)
	h.OnCacheMiss(ctx, "artifact")

	out := buf.String()
	for _, want := range []string{"export started", "rasterizer failed", "using fallback output", "export complete", "cache miss"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testExportHooks struct{ NoopExportHooks }
type testCacheHooks struct{ NoopCacheHooks }
