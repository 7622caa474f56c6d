package serverutils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"scent-advisor-be/internal/constant"
	"scent-advisor-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

type sampleRequest struct {
	Name string `json:"name" validate:"required,max=5"`
	Mode string `json:"mode" validate:"omitempty,oneof=FULL CONTEXTUAL"`
}

func decode[T any](t *testing.T, body string) BaseResponse[T] {
	t.Helper()
	var out BaseResponse[T]
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func newTestApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Post("/x", handlers...)
	return app
}

func doPost(t *testing.T, app *fiber.App, headers map[string]string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/x", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	return resp.StatusCode, buf.String()
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Name: "abc"}))

	err := ValidateRequest(sampleRequest{Name: "", Mode: "OTHER"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"name": "required", "mode": "oneof=FULL CONTEXTUAL"}, verr.Fields)

	err = ValidateRequest(sampleRequest{Name: "toolong"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "max=5", verr.Fields["name"])
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "validation", err: &ValidationError{Fields: map[string]string{"name": "required"}}, wantCode: 400, wantMsg: constant.InvalidRequestMessage},
		{name: "fiber error keeps code", err: fiber.NewError(fiber.StatusNotFound, "Session introuvable."), wantCode: 404, wantMsg: "Session introuvable."},
		{name: "wrapped fiber error", err: errors.Join(errors.New("ctx"), fiber.ErrBadRequest), wantCode: 400, wantMsg: "Bad Request"},
		{name: "unknown error hidden", err: errors.New("pq: connection refused"), wantCode: 500, wantMsg: constant.AdvisorFailureMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(func(c *fiber.Ctx) error { return tt.err })
			code, body := doPost(t, app, nil)

			assert.Equal(t, tt.wantCode, code)
			res := decode[any](t, body)
			assert.False(t, res.Success)
			assert.Equal(t, tt.wantCode, res.Code)
			assert.Equal(t, tt.wantMsg, res.Message)
		})
	}
}

func TestErrorHandlerMiddleware_UnknownRoute(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error { return nil })
	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestRateLimitMiddleware(t *testing.T) {
	ok := func(c *fiber.Ctx) error { return c.JSON(SuccessResponse("ok", "done")) }

	t.Run("allowed", func(t *testing.T) {
		limiter := &stubLimiter{allowed: true}
		app := newTestApp(RateLimitMiddleware(limiter, logger.NewNopLogger()), ok)

		code, body := doPost(t, app, map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"})
		assert.Equal(t, 200, code)
		assert.Equal(t, "done", decode[string](t, body).Data)
		assert.Equal(t, []string{"203.0.113.7"}, limiter.keys)
	})

	t.Run("rejected", func(t *testing.T) {
		app := newTestApp(RateLimitMiddleware(&stubLimiter{allowed: false}, logger.NewNopLogger()), ok)

		code, body := doPost(t, app, nil)
		assert.Equal(t, 429, code)
		assert.Equal(t, constant.AdvisorRateLimitMessage, decode[any](t, body).Message)
	})

	t.Run("limiter failure fails open", func(t *testing.T) {
		app := newTestApp(RateLimitMiddleware(&stubLimiter{err: errors.New("redis down")}, logger.NewNopLogger()), ok)

		code, _ := doPost(t, app, nil)
		assert.Equal(t, 200, code)
	})
}

func TestSuccessResponse(t *testing.T) {
	res := SuccessResponse("Success", []int{1, 2})
	assert.True(t, res.Success)
	assert.Equal(t, 200, res.Code)
	assert.Equal(t, []int{1, 2}, res.Data)
}
