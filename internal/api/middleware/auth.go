package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/feedstream/feed-api/internal/core/domain"
)

// ContextKey is the echo context key holding the caller's AuthContext.
const ContextKey = "auth"

type ctxKey struct{}

// Verifier is the slice of the auth service the middleware needs.
type Verifier interface {
	Verify(authorization string) domain.AuthContext
}

// Auth derives the caller identity from the Authorization header and
// stores it in both the echo context and the request context (for
// handlers that work off context.Context, like the GraphQL resolvers).
//
// It NEVER rejects a request: a missing, malformed, or expired token
// yields an anonymous context and the chain continues. Whether anonymity
// is acceptable is decided per operation by the domain services.
func Auth(verifier Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := verifier.Verify(c.Request().Header.Get("Authorization"))
			c.Set(ContextKey, auth)
			c.SetRequest(c.Request().WithContext(WithAuth(c.Request().Context(), auth)))
			return next(c)
		}
	}
}

// FromEcho extracts the AuthContext stored by Auth. Returns an anonymous
// context when the middleware did not run.
func FromEcho(c echo.Context) domain.AuthContext {
	auth, _ := c.Get(ContextKey).(domain.AuthContext)
	return auth
}

// WithAuth attaches the AuthContext to a context.Context.
func WithAuth(ctx context.Context, auth domain.AuthContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, auth)
}

// FromContext extracts the AuthContext from a context.Context. Returns an
// anonymous context when absent.
func FromContext(ctx context.Context) domain.AuthContext {
	auth, _ := ctx.Value(ctxKey{}).(domain.AuthContext)
	return auth
}
