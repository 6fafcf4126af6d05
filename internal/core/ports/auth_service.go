package ports

import (
	"context"

	"github.com/feedstream/feed-api/internal/core/domain"
)

// AuthService implements registration, login, and soft token verification.
type AuthService interface {
	// Register validates and persists a new account. Violations are
	// aggregated into a *domain.ValidationError.
	Register(ctx context.Context, email, name, password string) (*domain.User, error)
	// Login checks credentials and issues a signed bearer token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Verify derives the caller identity from a raw Authorization header.
	// It never fails: anything short of a valid, unexpired token yields an
	// unauthenticated context. Authorization stays with the domain services.
	Verify(authorization string) domain.AuthContext
	// GetUser returns the caller's full account.
	GetUser(ctx context.Context, auth domain.AuthContext) (*domain.User, error)
	// GetStatus returns the caller's status line.
	GetStatus(ctx context.Context, auth domain.AuthContext) (string, error)
	// UpdateStatus replaces the caller's status line.
	UpdateStatus(ctx context.Context, auth domain.AuthContext, status string) error
}
