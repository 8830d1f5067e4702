// Package scrape ties source resolution, fetching and extraction into a
// single article pipeline.
package scrape

import (
	"context"

	"github.com/fwojciec/clanko"
)

// Scraper turns an article URL into a rendered Document.
type Scraper struct {
	Sources   clanko.SourceRegistry
	Fetcher   clanko.ArticleFetcher
	Extractor clanko.FieldExtractor

	// Archive is optional. When set, every rendered document is stored.
	Archive clanko.ArticleService
}

// Scrape resolves the source for rawURL, fetches the page, extracts its fields
// and assembles the document. Any failure aborts the run; there is no partial
// result.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*clanko.Document, error) {
	src, err := s.Sources.Resolve(rawURL)
	if err != nil {
		return nil, err
	}
	if src.Login != nil && src.Credentials.Username == "" {
		return nil, clanko.Errorf(clanko.EINVALID, "no credentials configured for source %q", src.Name)
	}

	raw, err := s.Fetcher.Fetch(ctx, src, rawURL)
	if err != nil {
		return nil, err
	}

	fields, err := s.Extractor.Extract(src, raw.HTML)
	if err != nil {
		return nil, err
	}

	doc := clanko.Assemble(fields, fields.Text(clanko.FieldBody))
	doc.SourceURL = raw.URL
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	if s.Archive != nil {
		if err := s.Archive.CreateArticle(ctx, doc); err != nil {
			return nil, err
		}
	}

	return doc, nil
}
