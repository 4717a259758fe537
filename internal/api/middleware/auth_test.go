package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/agrolink/livestock-api/internal/core/domain"
	"github.com/agrolink/livestock-api/internal/core/token"
)

func invokeAuth(t *testing.T, issuer *token.Issuer, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admins", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Auth(issuer)(next)(c)
	return c, err
}

func TestAuth_ValidToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret")
	tok, err := issuer.Issue(domain.KindAdmin, "admin_1", "Alice", "+5511987654321")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	c, err := invokeAuth(t, issuer, "Bearer "+tok)
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if c.Get("subject_id") != "admin_1" {
		t.Fatalf("expected subject_id in context, got %v", c.Get("subject_id"))
	}
	if c.Get("subject_kind") != string(domain.KindAdmin) {
		t.Fatalf("expected subject_kind in context, got %v", c.Get("subject_kind"))
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := invokeAuth(t, token.NewIssuer("test-secret"), "")

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, err := invokeAuth(t, token.NewIssuer("test-secret"), "Token abc")

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	tok, err := token.NewIssuer("other-secret").Issue(domain.KindAdmin, "admin_1", "Alice", "")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	_, err = invokeAuth(t, token.NewIssuer("test-secret"), "Bearer "+tok)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_LowercaseBearerAccepted(t *testing.T) {
	issuer := token.NewIssuer("test-secret")
	tok, err := issuer.Issue(domain.KindCustomer, "customer_1", "Bob", "")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	if _, err := invokeAuth(t, issuer, "bearer "+tok); err != nil {
		t.Fatalf("expected lowercase scheme to pass, got %v", err)
	}
}
