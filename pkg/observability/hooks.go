// Package observability provides hooks for export and cache events.
//
// Libraries call the registered hooks; nothing is recorded unless the
// application registers an implementation at startup. The defaults are
// no-ops, so library code never checks for nil.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExportHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnExportStart(ctx, "png")
//	// ... render ...
//	observability.Export().OnExportComplete(ctx, "png", path, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ExportHooks receives events from diagram export.
type ExportHooks interface {
	OnExportStart(ctx context.Context, format string)
	OnExportComplete(ctx context.Context, format, path string, duration time.Duration, err error)

	// OnRasterize records one attempt by an external rasterizer.
	OnRasterize(ctx context.Context, rasterizer, format string, duration time.Duration, err error)

	// OnFallback records a degraded output: native painting or the
	// instructional stand-in.
	OnFallback(ctx context.Context, format, kind string, cause error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string) {}
func (NoopExportHooks) OnExportComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopExportHooks) OnRasterize(context.Context, string, string, time.Duration, error) {}
func (NoopExportHooks) OnFallback(context.Context, string, string, error)                 {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	exportHooks ExportHooks = NoopExportHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any export.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	cacheHooks = NoopCacheHooks{}
}
