package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/feedstream/feed-api/internal/core/domain"
)

// headerVerifier authenticates exactly one bearer header value.
type headerVerifier struct {
	accept string
	auth   domain.AuthContext
}

func (v *headerVerifier) Verify(authorization string) domain.AuthContext {
	if authorization == v.accept {
		return v.auth
	}
	return domain.Anonymous()
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	verifier := &headerVerifier{
		accept: "Bearer good-token",
		auth:   domain.AuthContext{UserID: "u1", Email: "ada@example.com", IsAuth: true},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(verifier)(func(c echo.Context) error {
		called = true

		auth := FromEcho(c)
		if !auth.IsAuth || auth.UserID != "u1" || auth.Email != "ada@example.com" {
			t.Fatalf("unexpected echo auth context: %+v", auth)
		}
		// The identity must also ride the request context for handlers
		// that never see the echo context.
		if got := FromContext(c.Request().Context()); got != auth {
			t.Fatalf("request context auth = %+v, want %+v", got, auth)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_NeverRejects(t *testing.T) {
	headers := map[string]string{
		"no header":     "",
		"wrong scheme":  "Token abc",
		"no token":      "Bearer",
		"unknown token": "Bearer bad-token",
		"garbage":       "Bearer not even close",
	}

	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			verifier := &headerVerifier{accept: "Bearer good-token"}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			called := false
			handler := Auth(verifier)(func(c echo.Context) error {
				called = true
				if auth := FromEcho(c); auth.IsAuth {
					t.Fatalf("expected anonymous context, got %+v", auth)
				}
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if !called {
				t.Fatalf("next not called: soft auth must never reject")
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		})
	}
}

func TestFromEcho_WithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if auth := FromEcho(c); auth.IsAuth {
		t.Fatalf("expected anonymous context, got %+v", auth)
	}
}
