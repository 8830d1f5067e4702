package mock

import (
	"context"

	"github.com/fwojciec/clanko"
)

var _ clanko.ArticleFetcher = (*ArticleFetcher)(nil)

// ArticleFetcher is a mock implementation of clanko.ArticleFetcher.
type ArticleFetcher struct {
	FetchFn func(ctx context.Context, src *clanko.Source, url string) (*clanko.RawArticle, error)
}

func (f *ArticleFetcher) Fetch(ctx context.Context, src *clanko.Source, url string) (*clanko.RawArticle, error) {
	return f.FetchFn(ctx, src, url)
}
