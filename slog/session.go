package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/clanko"
)

// Ensure LoggingSession implements clanko.Session.
var _ clanko.Session = (*LoggingSession)(nil)

// LoggingSession wraps a Session with logging. Credentials are logged
// through their LogValue, so the password never appears.
type LoggingSession struct {
	next   clanko.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next clanko.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// Authenticate delegates to the wrapped session and logs the login attempt.
func (s *LoggingSession) Authenticate(ctx context.Context, creds clanko.Credentials) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("login",
			"credentials", creds,
			"code", clanko.ErrorCode(err),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Authenticate(ctx, creds)
}

// Authenticated delegates to the wrapped session.
func (s *LoggingSession) Authenticated() bool {
	return s.next.Authenticated()
}

// Request delegates to the wrapped session and logs the round trip.
func (s *LoggingSession) Request(ctx context.Context, method, url string) (resp *clanko.Response, err error) {
	defer func(begin time.Time) {
		var status int
		if resp != nil {
			status = resp.StatusCode
		}
		s.logger.Debug("request",
			"method", method,
			"url", url,
			"status", status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Request(ctx, method, url)
}
