package slog_test

import (
	"context"
	"testing"

	"github.com/fwojciec/clanko"
	"github.com/fwojciec/clanko/mock"
	clankoslog "github.com/fwojciec/clanko/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSession_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("logs username without password", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger(t)
		inner := &mock.Session{
			AuthenticateFn: func(context.Context, clanko.Credentials) error { return nil },
		}

		err := clankoslog.NewLoggingSession(inner, logger).Authenticate(context.Background(), clanko.Credentials{Username: "reader", Password: "hunter2"})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=login")
		assert.Contains(t, output, "reader")
		assert.NotContains(t, output, "hunter2")
	})

	t.Run("logs error code on failure", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger(t)
		inner := &mock.Session{
			AuthenticateFn: func(context.Context, clanko.Credentials) error {
				return clanko.Errorf(clanko.ETOKEN, "no token")
			},
		}

		err := clankoslog.NewLoggingSession(inner, logger).Authenticate(context.Background(), clanko.Credentials{})

		assert.Equal(t, clanko.ETOKEN, clanko.ErrorCode(err))
		assert.Contains(t, buf.String(), "code=token_not_found")
	})
}

func TestLoggingSession_Request(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger(t)
	inner := &mock.Session{
		RequestFn: func(_ context.Context, _, url string) (*clanko.Response, error) {
			return &clanko.Response{URL: url, StatusCode: 200, Body: "ok"}, nil
		},
		AuthenticatedFn: func() bool { return true },
	}
	session := clankoslog.NewLoggingSession(inner, logger)

	resp, err := session.Request(context.Background(), "GET", "https://trend.sk/a")

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Body)
	assert.True(t, session.Authenticated())
	assert.Contains(t, buf.String(), "msg=request")
	assert.Contains(t, buf.String(), "status=200")
}
