package ports

import (
	"context"

	"github.com/feedstream/feed-api/internal/core/domain"
)

// DefaultPageSize is the fixed feed page size.
const DefaultPageSize = 2

// CreatePostInput carries the fields needed to create a post. The image
// reference is produced by the asset store upstream of the service.
type CreatePostInput struct {
	Title    string
	Content  string
	ImageURL string
}

// UpdatePostInput carries the mutable fields of an existing post.
type UpdatePostInput struct {
	ID       string
	Title    string
	Content  string
	ImageURL string
}

// PostPage is one page of the feed plus the total count for client-side
// pagination math.
type PostPage struct {
	Posts []*domain.Post
	Total int64
}

// PostService defines the use-case operations of the feed.
type PostService interface {
	// ListPosts returns the page-th page (1-based; values below 1 are
	// treated as 1). A page beyond the end yields an empty slice, not an
	// error.
	ListPosts(ctx context.Context, page int) (*PostPage, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	// CreatePost requires an authenticated context, persists the post,
	// appends its id to the creator's Posts list, and publishes a create
	// event.
	CreatePost(ctx context.Context, auth domain.AuthContext, in CreatePostInput) (*domain.Post, error)
	// UpdatePost enforces ownership, deletes the previous asset when the
	// image reference changed, and publishes an update event.
	UpdatePost(ctx context.Context, auth domain.AuthContext, in UpdatePostInput) (*domain.Post, error)
	// DeletePost enforces ownership, deletes the asset and the record,
	// removes the id from the creator's Posts list, and publishes a delete
	// event carrying the id.
	DeletePost(ctx context.Context, auth domain.AuthContext, id string) error
}
