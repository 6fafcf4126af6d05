package ports

import (
	"context"

	"github.com/feedstream/feed-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user and returns it with its assigned id.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateStatus overwrites the user's free-text status line.
	UpdateStatus(ctx context.Context, id, status string) error
	// AppendPost adds a post id to the end of the user's Posts list.
	AppendPost(ctx context.Context, userID, postID string) error
	// RemovePost removes a post id from the user's Posts list.
	RemovePost(ctx context.Context, userID, postID string) error
}
