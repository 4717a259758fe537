package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agrolink/livestock-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp["error"]
}

func TestErrorHandler_InvalidCredentials(t *testing.T) {
	code, msg := renderError(t, domain.ErrInvalidCredentials)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if msg != "incorrect credentials" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestErrorHandler_Conflicts(t *testing.T) {
	code, msg := renderError(t, domain.ErrEmailTaken)
	if code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}
	if msg != domain.ErrEmailTaken.Error() {
		t.Fatalf("conflict must name the duplicated field, got %q", msg)
	}

	code, msg = renderError(t, domain.ErrNationalIDTaken)
	if code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}
	if msg != domain.ErrNationalIDTaken.Error() {
		t.Fatalf("conflict must name the duplicated field, got %q", msg)
	}
}

func TestErrorHandler_PolicyViolations(t *testing.T) {
	err := &domain.PolicyError{Violations: []string{
		"password must be at least 8 characters long",
		"password must contain lowercase letters, uppercase letters, digits and symbols",
	}}

	code, msg := renderError(t, err)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if msg != err.Error() {
		t.Fatalf("expected joined violations, got %q", msg)
	}
}

func TestErrorHandler_NotFound(t *testing.T) {
	cases := map[error]string{
		domain.ErrAccountNotFound:  "account not found",
		domain.ErrListingNotFound:  "listing not found",
		domain.ErrBreedNotFound:    "breed not found",
		domain.ErrProposalNotFound: "proposal not found",
	}
	for err, want := range cases {
		code, msg := renderError(t, err)
		if code != http.StatusNotFound {
			t.Fatalf("%v: expected 404, got %d", err, code)
		}
		if msg != want {
			t.Fatalf("%v: unexpected message %q", err, msg)
		}
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "invalid token"))
	if code != http.StatusUnauthorized || msg != "invalid token" {
		t.Fatalf("unexpected mapping: %d %q", code, msg)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, msg := renderError(t, errors.New("connection reset by mongod"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details must not leak, got %q", msg)
	}
}
