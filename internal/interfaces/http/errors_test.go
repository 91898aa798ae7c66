package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain"
)

func TestFail_MapeaErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("producto x: %w", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrEmailAlreadyExists, http.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrInvalidState, http.StatusConflict, "INVALID_STATE"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{errors.New("pgx: conexión rechazada"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return fail(c, err) })

		resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, reqErr)
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())

		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, tc.code, body.Code)
	}
}

func TestFail_NoExponeErroresInternos(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return fail(c, errors.New("password=secreto")) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotContains(t, body.Message, "secreto")
}

func TestDateRange_FechaSinHoraIncluyeDiaCompleto(t *testing.T) {
	app := fiber.New()
	var got struct {
		from, to time.Time
		err      error
	}
	app.Get("/", func(c *fiber.Ctx) error {
		r, err := dateRange(c)
		got.err = err
		if r.From != nil {
			got.from = *r.From
		}
		if r.To != nil {
			got.to = *r.To
		}
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?from=2024-03-01&to=2024-03-31", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	require.NoError(t, got.err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), got.from)
	assert.Equal(t, 31, got.to.Day())
	assert.Equal(t, 23, got.to.Hour())
	assert.Equal(t, 59, got.to.Minute())
}

func TestDateRange_Invalido(t *testing.T) {
	app := fiber.New()
	var gotErr error
	app.Get("/", func(c *fiber.Ctx) error {
		_, gotErr = dateRange(c)
		return nil
	})

	for _, q := range []string{"/?from=ayer", "/?from=2024-03-10&to=2024-03-01"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, q, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.ErrorIs(t, gotErr, domain.ErrInvalidInput, q)
	}
}

func TestPage_AplicaLimites(t *testing.T) {
	app := fiber.New()
	var got dto.PageRequest
	app.Get("/", func(c *fiber.Ctx) error {
		got = page(c)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?limit=500&offset=-3", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 100, got.Limit)
	assert.Equal(t, 0, got.Offset)
}
