package http

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clanko"
	"golang.org/x/net/publicsuffix"
)

// Ensure Session implements clanko.Session at compile time.
var _ clanko.Session = (*Session)(nil)

// Session is a cookie-carrying HTTP client that can log in through a
// CSRF-protected form. It is not safe for concurrent use.
type Session struct {
	client        *http.Client
	login         *clanko.Login
	userAgent     string
	authenticated bool
}

// Option configures a Session or a Fetcher.
type Option func(*options)

type options struct {
	timeout   time.Duration
	userAgent string
}

// WithTimeout sets the timeout of every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// NewSession creates a Session with an empty cookie jar.
// login may be nil for sources that need no authentication.
func NewSession(login *clanko.Login, opts ...Option) *Session {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// cookiejar.New never returns an error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	return &Session{
		client: &http.Client{
			Jar:     jar,
			Timeout: o.timeout,
		},
		login:     login,
		userAgent: o.userAgent,
	}
}

// Authenticated reports whether a login has completed on this session.
func (s *Session) Authenticated() bool {
	return s.authenticated
}

// Reset forgets the authenticated state. Cookies are kept.
func (s *Session) Reset() {
	s.authenticated = false
}

// Authenticate fetches the login page, reads the CSRF token and submits the
// credentials. It is a no-op when the session is already authenticated.
func (s *Session) Authenticate(ctx context.Context, creds clanko.Credentials) error {
	if s.authenticated {
		return nil
	}
	if s.login == nil {
		return clanko.Errorf(clanko.EINVALID, "session has no login configuration")
	}

	page, err := s.Request(ctx, http.MethodGet, s.login.PageURL)
	if err != nil {
		return err
	}
	if !success(page.StatusCode) {
		return clanko.Errorf(clanko.ENETWORK, "login page %s returned HTTP %d", s.login.PageURL, page.StatusCode)
	}

	field := s.login.TokenField
	if field == "" {
		field = clanko.DefaultTokenField
	}
	token, err := parseToken(page.Body, field)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set(field, token)
	form.Set(orDefault(s.login.UsernameField, clanko.DefaultUsernameField), creds.Username)
	form.Set(orDefault(s.login.PasswordField, clanko.DefaultPasswordField), creds.Password)

	resp, err := s.do(ctx, http.MethodPost, s.login.Action(), strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return err
	}
	if !success(resp.StatusCode) {
		return clanko.Errorf(clanko.ENETWORK, "login returned HTTP %d", resp.StatusCode)
	}

	s.authenticated = true
	return nil
}

// Request sends a body-less request through the session's cookie jar.
// Non-2xx responses are returned as-is; only transport failures are errors.
func (s *Session) Request(ctx context.Context, method, rawURL string) (*clanko.Response, error) {
	return s.do(ctx, method, rawURL, nil, "")
}

func (s *Session) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string) (*clanko.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, clanko.Errorf(clanko.EINVALID, "invalid request %s %s: %v", method, rawURL, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, clanko.Errorf(clanko.ENETWORK, "%s %s: %v", method, rawURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, clanko.Errorf(clanko.ENETWORK, "failed to read response from %s: %v", rawURL, err)
	}

	return &clanko.Response{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       string(data),
	}, nil
}

// parseToken returns the value of the named hidden input.
func parseToken(page, field string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", clanko.Errorf(clanko.ETOKEN, "failed to parse login page: %v", err)
	}

	input := doc.Find("input").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		name, _ := sel.Attr("name")
		return name == field
	}).First()

	value, ok := input.Attr("value")
	if !ok {
		return "", clanko.Errorf(clanko.ETOKEN, "login page has no %q field", field)
	}
	return value, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
