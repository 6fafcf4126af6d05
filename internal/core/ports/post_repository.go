package ports

import (
	"context"

	"github.com/feedstream/feed-api/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	// Create inserts a new post and returns it with its assigned id.
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// Update overwrites the mutable fields (title, content, image_url,
	// updated_at). Creator and created_at are never touched.
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	// List returns one page of posts sorted by created_at descending,
	// along with the total number of posts across all pages.
	List(ctx context.Context, page, pageSize int) ([]*domain.Post, int64, error)
}
