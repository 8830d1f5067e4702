package clanko

import "context"

// RawArticle is the unparsed article page.
type RawArticle struct {
	// URL is the final URL after redirects.
	URL  string
	HTML string
}

// ArticleFetcher retrieves article pages through an authenticated session.
type ArticleFetcher interface {
	// Fetch checks that the URL belongs to the source, logs in if the
	// source requires it and has not done so yet, and returns the page.
	// Returns EUNSUPPORTED without any network I/O when the URL's host is
	// not one of the source's allowed domains, and ENETWORK on transport
	// failure or a non-2xx status.
	Fetch(ctx context.Context, src *Source, url string) (*RawArticle, error)
}
