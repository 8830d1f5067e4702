// Package slog provides logging decorators for clanko services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/clanko"
)

// Ensure LoggingFetcher implements clanko.ArticleFetcher.
var _ clanko.ArticleFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps an ArticleFetcher with logging.
type LoggingFetcher struct {
	next   clanko.ArticleFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next clanko.ArticleFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, src *clanko.Source, url string) (raw *clanko.RawArticle, err error) {
	defer func(begin time.Time) {
		var bytes int
		var final string
		if raw != nil {
			bytes = len(raw.HTML)
			final = raw.URL
		}
		f.logger.Info("fetch",
			"source", src.Name,
			"url", url,
			"final_url", final,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, src, url)
}
