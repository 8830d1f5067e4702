package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/clanko"
)

// Ensure LoggingArticleService implements clanko.ArticleService.
var _ clanko.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService with logging.
type LoggingArticleService struct {
	next   clanko.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next clanko.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

// CreateArticle delegates to the wrapped service and logs the archived ID.
func (s *LoggingArticleService) CreateArticle(ctx context.Context, doc *clanko.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("archive article",
			"id", doc.ID,
			"slug", doc.Slug,
			"hash", doc.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateArticle(ctx, doc)
}

// FindArticleByID delegates to the wrapped service.
func (s *LoggingArticleService) FindArticleByID(ctx context.Context, id string) (*clanko.Document, error) {
	return s.next.FindArticleByID(ctx, id)
}

// FindArticles delegates to the wrapped service.
func (s *LoggingArticleService) FindArticles(ctx context.Context, filter clanko.ArticleFilter) ([]*clanko.Document, error) {
	return s.next.FindArticles(ctx, filter)
}
