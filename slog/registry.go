package slog

import (
	"log/slog"

	"github.com/fwojciec/clanko"
)

// Ensure LoggingRegistry implements clanko.SourceRegistry.
var _ clanko.SourceRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a SourceRegistry with logging of URL resolution.
type LoggingRegistry struct {
	next   clanko.SourceRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next clanko.SourceRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Resolve delegates to the wrapped registry and logs the chosen source.
func (r *LoggingRegistry) Resolve(rawURL string) (src *clanko.Source, err error) {
	defer func() {
		name := "(none)"
		if src != nil {
			name = src.Name
		}
		r.logger.Debug("resolve source",
			"url", rawURL,
			"source", name,
			"err", err,
		)
	}()
	return r.next.Resolve(rawURL)
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(src *clanko.Source) error {
	return r.next.Register(src)
}

// Sources delegates to the wrapped registry.
func (r *LoggingRegistry) Sources() []*clanko.Source {
	return r.next.Sources()
}
