package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-api/pkg/logger"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth_BaseCaidaNoExponeElError(t *testing.T) {
	var logs bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "error", Out: &logs})
	app := fiber.New()
	app.Get("/health", Health(pingFunc(func(context.Context) error {
		return errors.New("dial tcp 10.0.0.5:5432: password authentication failed for user textil")
	}), "textil-api", log))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `{"status":"degraded","db":"unavailable"}`, string(body))
	assert.Contains(t, logs.String(), "password authentication failed")
}

func TestHealth_Ok(t *testing.T) {
	app := fiber.New()
	app.Get("/health", Health(pingFunc(func(context.Context) error { return nil }), "textil-api", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"textil-api"}`, string(body))
}
