package mock

import (
	"context"

	"github.com/fwojciec/clanko"
)

var _ clanko.Session = (*Session)(nil)

// Session is a mock implementation of clanko.Session.
type Session struct {
	AuthenticateFn  func(ctx context.Context, creds clanko.Credentials) error
	AuthenticatedFn func() bool
	RequestFn       func(ctx context.Context, method, url string) (*clanko.Response, error)
}

func (s *Session) Authenticate(ctx context.Context, creds clanko.Credentials) error {
	return s.AuthenticateFn(ctx, creds)
}

func (s *Session) Authenticated() bool {
	return s.AuthenticatedFn()
}

func (s *Session) Request(ctx context.Context, method, url string) (*clanko.Response, error) {
	return s.RequestFn(ctx, method, url)
}
