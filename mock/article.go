package mock

import (
	"context"

	"github.com/fwojciec/clanko"
)

var _ clanko.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of clanko.ArticleService.
type ArticleService struct {
	CreateArticleFn   func(ctx context.Context, doc *clanko.Document) error
	FindArticleByIDFn func(ctx context.Context, id string) (*clanko.Document, error)
	FindArticlesFn    func(ctx context.Context, filter clanko.ArticleFilter) ([]*clanko.Document, error)
}

func (s *ArticleService) CreateArticle(ctx context.Context, doc *clanko.Document) error {
	return s.CreateArticleFn(ctx, doc)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*clanko.Document, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter clanko.ArticleFilter) ([]*clanko.Document, error) {
	return s.FindArticlesFn(ctx, filter)
}
