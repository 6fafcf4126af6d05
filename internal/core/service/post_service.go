package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedstream/feed-api/internal/core/domain"
	"github.com/feedstream/feed-api/internal/core/ports"
)

// PostService implements the feed use cases: pagination, ownership-scoped
// mutation, cascading updates to the creator's post list, and realtime
// event emission.
type PostService struct {
	posts     ports.PostRepository
	users     ports.UserRepository
	assets    ports.AssetStore
	publisher ports.Publisher
	logger    zerolog.Logger
}

func NewPostService(
	posts ports.PostRepository,
	users ports.UserRepository,
	assets ports.AssetStore,
	publisher ports.Publisher,
	logger zerolog.Logger,
) *PostService {
	return &PostService{
		posts:     posts,
		users:     users,
		assets:    assets,
		publisher: publisher,
		logger:    logger,
	}
}

// ListPosts returns the page-th page of the feed, newest first, plus the
// total count. Pages below 1 are treated as page 1; a page past the end
// yields an empty slice.
func (s *PostService) ListPosts(ctx context.Context, page int) (*ports.PostPage, error) {
	if page < 1 {
		page = 1
	}
	posts, total, err := s.posts.List(ctx, page, ports.DefaultPageSize)
	if err != nil {
		return nil, err
	}
	return &ports.PostPage{Posts: posts, Total: total}, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// CreatePost persists a new post and appends its id to the creator's
// Posts list. The two writes are sequential, not atomic: a failure after
// the first leaves a post without a backlink in the creator's list.
func (s *PostService) CreatePost(ctx context.Context, auth domain.AuthContext, in ports.CreatePostInput) (*domain.Post, error) {
	if !auth.IsAuth {
		return nil, domain.ErrNotAuthenticated
	}
	if err := validatePostInput(in.Title, in.Content); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Title:     in.Title,
		Content:   in.Content,
		ImageURL:  in.ImageURL,
		Creator:   auth.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create post")
		return nil, err
	}
	if err := s.users.AppendPost(ctx, auth.UserID, created.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", created.ID).Str("creator", auth.UserID).Msg("post created")
	s.publisher.Publish(ports.Event{Action: ports.ActionCreate, Post: created, PostID: created.ID})
	return created, nil
}

// UpdatePost mutates a post owned by the caller. When the image reference
// changes, the previous asset is deleted first; that deletion is
// best-effort and never fails the call.
func (s *PostService) UpdatePost(ctx context.Context, auth domain.AuthContext, in ports.UpdatePostInput) (*domain.Post, error) {
	if !auth.IsAuth {
		return nil, domain.ErrNotAuthenticated
	}

	post, err := s.posts.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if post.Creator != auth.UserID {
		return nil, domain.ErrForbidden
	}
	if err := validatePostInput(in.Title, in.Content); err != nil {
		return nil, err
	}

	if in.ImageURL != "" && in.ImageURL != post.ImageURL {
		s.deleteAsset(post.ImageURL)
		post.ImageURL = in.ImageURL
	}
	post.Title = in.Title
	post.Content = in.Content
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		s.logger.Error().Err(err).Str("post_id", post.ID).Msg("failed to update post")
		return nil, err
	}

	s.publisher.Publish(ports.Event{Action: ports.ActionUpdate, Post: post, PostID: post.ID})
	return post, nil
}

// DeletePost removes a post owned by the caller, its stored asset, and the
// id from the creator's Posts list, then publishes a delete event carrying
// the id.
func (s *PostService) DeletePost(ctx context.Context, auth domain.AuthContext, id string) error {
	if !auth.IsAuth {
		return domain.ErrNotAuthenticated
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.Creator != auth.UserID {
		return domain.ErrForbidden
	}

	s.deleteAsset(post.ImageURL)

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.users.RemovePost(ctx, auth.UserID, id); err != nil {
		return err
	}

	s.logger.Info().Str("post_id", id).Str("creator", auth.UserID).Msg("post deleted")
	s.publisher.Publish(ports.Event{Action: ports.ActionDelete, PostID: id})
	return nil
}

// deleteAsset removes a stored asset. Failures are logged, never
// propagated — a dangling file must not fail the domain call.
func (s *PostService) deleteAsset(ref string) {
	if ref == "" {
		return
	}
	if err := s.assets.Delete(ref); err != nil {
		s.logger.Warn().Err(err).Str("asset", ref).Msg("failed to delete asset")
	}
}

func validatePostInput(title, content string) error {
	var violations []domain.FieldViolation
	if validate.Var(title, "required,min=5") != nil {
		violations = append(violations, domain.FieldViolation{Field: "title", Message: "must be at least 5 characters"})
	}
	if validate.Var(content, "required,min=5") != nil {
		violations = append(violations, domain.FieldViolation{Field: "content", Message: "must be at least 5 characters"})
	}
	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}
