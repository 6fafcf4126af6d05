package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/feedstream/feed-api/internal/core/domain"
	"github.com/feedstream/feed-api/internal/core/ports"
)

// passwordHashCost is the fixed bcrypt work factor for stored credentials.
const passwordHashCost = 12

// AuthService implements registration, login, and soft token verification.
type AuthService struct {
	users  ports.UserRepository
	codec  ports.TokenCodec
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec ports.TokenCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, logger: logger}
}

// Register validates and persists a new account. All field violations are
// collected before failing so the client sees the full list.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	var violations []domain.FieldViolation
	if validate.Var(email, "required,email") != nil {
		violations = append(violations, domain.FieldViolation{Field: "email", Message: "must be a valid email address"})
	}
	if validate.Var(name, "required") != nil {
		violations = append(violations, domain.FieldViolation{Field: "name", Message: "is required"})
	}
	if validate.Var(password, "required,min=5") != nil {
		violations = append(violations, domain.FieldViolation{Field: "password", Message: "must be at least 5 characters"})
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, domain.NewUser(email, name, string(hash), time.Now().UTC()))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login checks credentials and issues a signed bearer token carrying the
// user's id and email.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Sign(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// Verify derives the caller identity from the raw Authorization header.
// It never fails: a missing header, a malformed bearer prefix, a bad
// signature, or an expired token all degrade to an unauthenticated
// context. Whether that matters is decided per operation by the domain
// services, so anonymous reads and authenticated writes share one
// pipeline.
func (s *AuthService) Verify(authorization string) domain.AuthContext {
	if authorization == "" {
		return domain.Anonymous()
	}

	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return domain.Anonymous()
	}

	claims, err := s.codec.Verify(parts[1])
	if err != nil || claims.UserID == "" {
		return domain.Anonymous()
	}

	return domain.AuthContext{UserID: claims.UserID, Email: claims.Email, IsAuth: true}
}

// GetUser returns the caller's full account.
func (s *AuthService) GetUser(ctx context.Context, auth domain.AuthContext) (*domain.User, error) {
	if !auth.IsAuth {
		return nil, domain.ErrNotAuthenticated
	}
	return s.users.FindByID(ctx, auth.UserID)
}

// GetStatus returns the caller's status line.
func (s *AuthService) GetStatus(ctx context.Context, auth domain.AuthContext) (string, error) {
	user, err := s.GetUser(ctx, auth)
	if err != nil {
		return "", err
	}
	return user.Status, nil
}

// UpdateStatus replaces the caller's status line.
func (s *AuthService) UpdateStatus(ctx context.Context, auth domain.AuthContext, status string) error {
	if !auth.IsAuth {
		return domain.ErrNotAuthenticated
	}
	if validate.Var(status, "required") != nil {
		return &domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "status", Message: "is required"},
		}}
	}
	return s.users.UpdateStatus(ctx, auth.UserID, status)
}
