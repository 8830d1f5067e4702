// Package http implements clanko.Session and clanko.ArticleFetcher on top of
// net/http with a persistent cookie jar.
package http

import (
	"context"
	"net/http"

	"github.com/fwojciec/clanko"
)

// Ensure Fetcher implements clanko.ArticleFetcher at compile time.
var _ clanko.ArticleFetcher = (*Fetcher)(nil)

// SessionFunc creates the session used for a source.
type SessionFunc func(src *clanko.Source) clanko.Session

// Fetcher retrieves article pages, keeping one session per source so a
// login happens at most once per run.
type Fetcher struct {
	newSession SessionFunc
	sessions   map[string]clanko.Session
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithSessionFunc overrides how sessions are created.
func WithSessionFunc(fn SessionFunc) FetcherOption {
	return func(f *Fetcher) {
		f.newSession = fn
	}
}

// WithSessionOptions applies opts to every session the Fetcher creates.
func WithSessionOptions(opts ...Option) FetcherOption {
	return func(f *Fetcher) {
		f.newSession = func(src *clanko.Source) clanko.Session {
			return NewSession(src.Login, opts...)
		}
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		newSession: func(src *clanko.Source) clanko.Session {
			return NewSession(src.Login)
		},
		sessions: make(map[string]clanko.Session),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the article at url on behalf of src.
// The domain is checked before any network I/O.
func (f *Fetcher) Fetch(ctx context.Context, src *clanko.Source, url string) (*clanko.RawArticle, error) {
	host, err := clanko.Hostname(url)
	if err != nil {
		return nil, err
	}
	if !src.Allows(host) {
		return nil, clanko.Errorf(clanko.EUNSUPPORTED, "domain %q is not supported by source %q", host, src.Name)
	}

	session := f.session(src)
	if src.Login != nil && !session.Authenticated() {
		if err := session.Authenticate(ctx, src.Credentials); err != nil {
			return nil, err
		}
	}

	resp, err := session.Request(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	if !success(resp.StatusCode) {
		return nil, clanko.Errorf(clanko.ENETWORK, "HTTP %d for %s", resp.StatusCode, url)
	}

	return &clanko.RawArticle{URL: resp.URL, HTML: resp.Body}, nil
}

func (f *Fetcher) session(src *clanko.Source) clanko.Session {
	if s, ok := f.sessions[src.Name]; ok {
		return s
	}
	s := f.newSession(src)
	f.sessions[src.Name] = s
	return s
}
