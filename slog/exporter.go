package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/clanko"
)

// Ensure LoggingExporter implements clanko.Exporter.
var _ clanko.Exporter = (*LoggingExporter)(nil)

// LoggingExporter wraps an Exporter with logging.
type LoggingExporter struct {
	next   clanko.Exporter
	logger *slog.Logger
}

// NewLoggingExporter creates a new LoggingExporter.
func NewLoggingExporter(next clanko.Exporter, logger *slog.Logger) *LoggingExporter {
	return &LoggingExporter{next: next, logger: logger}
}

// Export delegates to the wrapped exporter and logs the output path.
func (e *LoggingExporter) Export(ctx context.Context, content, name string) (path string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("export",
			"name", name,
			"bytes", len(content),
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Export(ctx, content, name)
}
