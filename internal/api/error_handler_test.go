package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_FieldErrorsReportedTogether(t *testing.T) {
	rec := runErrorHandler(t, domain.FieldErrors{
		domain.FieldEmail:    domain.MsgEmailRequired,
		domain.FieldPassword: domain.MsgPasswordLength,
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Error  string            `json:"error"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != "Bad Input" {
		t.Fatalf("unexpected envelope: %q", resp.Error)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("expected both failures in one response, got %v", resp.Errors)
	}
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrNotAuthenticated, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrPostNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrCategoryNotFound, http.StatusNotFound},
		{domain.ErrCategoryExists, http.StatusConflict},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := runErrorHandler(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestErrorHandler_UnexpectedErrorsStayGeneric(t *testing.T) {
	rec := runErrorHandler(t, errors.New("pq: connection refused at 10.0.0.7"))

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("internal detail leaked: %q", resp.Error)
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	rec := runErrorHandler(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
}
