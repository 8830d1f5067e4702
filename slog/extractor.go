package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/clanko"
)

// Ensure LoggingExtractor implements clanko.FieldExtractor.
var _ clanko.FieldExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a FieldExtractor with logging.
type LoggingExtractor struct {
	next   clanko.FieldExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next clanko.FieldExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs which fields were found.
func (e *LoggingExtractor) Extract(src *clanko.Source, html string) (fields clanko.Fields, err error) {
	defer func(begin time.Time) {
		var found, missing []string
		for _, f := range fields {
			if f.Found {
				found = append(found, f.Name)
			} else {
				missing = append(missing, f.Name)
			}
		}
		e.logger.Info("extract",
			"source", src.Name,
			"found", found,
			"missing", missing,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(src, html)
}
