package clanko

import "context"

// Response is a raw HTTP response read in full.
type Response struct {
	// URL is the final URL after redirects.
	URL        string
	StatusCode int
	Body       string
}

// Session is an HTTP session with a persistent cookie jar.
// A Session is not safe for concurrent use.
type Session interface {
	// Authenticate performs the CSRF login handshake. Returns ETOKEN when the
	// login page carries no token field and ENETWORK on transport failure.
	Authenticate(ctx context.Context, creds Credentials) error

	// Authenticated reports whether Authenticate has succeeded.
	Authenticated() bool

	// Request sends a request through the session's cookie jar.
	Request(ctx context.Context, method, url string) (*Response, error)
}
