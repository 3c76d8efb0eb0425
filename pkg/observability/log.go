package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. Failures and
// fallbacks are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnExportStart(_ context.Context, format string) {
	h.logger.Debug("export started", "format", format)
}

func (h *LogHooks) OnExportComplete(_ context.Context, format, path string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("export failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("export complete", "format", format, "path", path, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnRasterize(_ context.Context, rasterizer, format string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("rasterizer failed", "rasterizer", rasterizer, "format", format, "err", err)
		return
	}
	h.logger.Debug("rasterized", "rasterizer", rasterizer, "format", format, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnFallback(_ context.Context, format, kind string, cause error) {
	h.logger.Warn("using fallback output", "format", format, "fallback", kind, "cause", cause)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ ExportHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
)
