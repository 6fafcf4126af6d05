package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedstream/feed-api/internal/core/domain"
	"github.com/feedstream/feed-api/internal/core/ports"
)

type postFixture struct {
	users     *stubUserRepo
	posts     *stubPostRepo
	assets    *stubAssetStore
	publisher *stubPublisher
	svc       *PostService
}

func newPostFixture() *postFixture {
	f := &postFixture{
		users:     newStubUserRepo(),
		posts:     newStubPostRepo(),
		assets:    &stubAssetStore{},
		publisher: &stubPublisher{},
	}
	f.svc = NewPostService(f.posts, f.users, f.assets, f.publisher, zerolog.Nop())
	return f
}

func (f *postFixture) registerUser(t *testing.T, email string) domain.AuthContext {
	t.Helper()
	user, err := f.users.Create(context.Background(), domain.NewUser(email, "Test User", "hash", time.Now().UTC()))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return domain.AuthContext{UserID: user.ID, Email: user.Email, IsAuth: true}
}

func TestPostService_CreatePost_RequiresAuth(t *testing.T) {
	f := newPostFixture()

	_, err := f.svc.CreatePost(context.Background(), domain.Anonymous(), ports.CreatePostInput{
		Title:   "Hello World",
		Content: "Hello World Content",
	})
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if len(f.publisher.published()) != 0 {
		t.Fatalf("no event should be published")
	}
}

func TestPostService_CreatePost_Success(t *testing.T) {
	f := newPostFixture()
	auth := f.registerUser(t, "alice@example.com")

	post, err := f.svc.CreatePost(context.Background(), auth, ports.CreatePostInput{
		Title:    "Hello World",
		Content:  "Hello World Content",
		ImageURL: "assets/hello.png",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if post.ID == "" || post.Creator != auth.UserID {
		t.Fatalf("unexpected post: %+v", post)
	}

	user, err := f.users.FindByID(context.Background(), auth.UserID)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	count := 0
	for _, id := range user.Posts {
		if id == post.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected post id to appear exactly once in creator's posts, got %d (%v)", count, user.Posts)
	}

	events := f.publisher.published()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Action != ports.ActionCreate || events[0].PostID != post.ID {
		t.Fatalf("unexpected event: %+v", events[0])
	}
	if events[0].Post == nil || events[0].Post.ID != post.ID {
		t.Fatalf("create event should carry the full post")
	}
}

func TestPostService_CreatePost_AggregatesViolations(t *testing.T) {
	f := newPostFixture()
	auth := f.registerUser(t, "alice@example.com")

	_, err := f.svc.CreatePost(context.Background(), auth, ports.CreatePostInput{
		Title:   "Hey",
		Content: "Ho",
	})
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) != 2 {
		t.Fatalf("expected violations for title and content, got %v", ve.Violations)
	}
}

func TestPostService_UpdatePost_ForbiddenForNonCreator(t *testing.T) {
	f := newPostFixture()
	owner := f.registerUser(t, "owner@example.com")
	other := f.registerUser(t, "other@example.com")

	post, err := f.svc.CreatePost(context.Background(), owner, ports.CreatePostInput{
		Title:   "Owned post",
		Content: "Owned content",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	_, err = f.svc.UpdatePost(context.Background(), other, ports.UpdatePostInput{
		ID:      post.ID,
		Title:   "Hijacked title",
		Content: "Hijacked content",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.svc.DeletePost(context.Background(), other, post.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
}

func TestPostService_UpdatePost_ReplacesImageAndKeepsCreator(t *testing.T) {
	f := newPostFixture()
	auth := f.registerUser(t, "alice@example.com")

	post, err := f.svc.CreatePost(context.Background(), auth, ports.CreatePostInput{
		Title:    "First title",
		Content:  "First content",
		ImageURL: "assets/old.png",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	updated, err := f.svc.UpdatePost(context.Background(), auth, ports.UpdatePostInput{
		ID:       post.ID,
		Title:    "Second title",
		Content:  "Second content",
		ImageURL: "assets/new.png",
	})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Creator != post.Creator {
		t.Fatalf("creator must never change")
	}
	if !updated.CreatedAt.Equal(post.CreatedAt) {
		t.Fatalf("created_at must never change")
	}
	if updated.ImageURL != "assets/new.png" {
		t.Fatalf("unexpected image url: %s", updated.ImageURL)
	}

	deleted := f.assets.deletedRefs()
	if len(deleted) != 1 || deleted[0] != "assets/old.png" {
		t.Fatalf("expected exactly one asset delete for the old image, got %v", deleted)
	}

	events := f.publisher.published()
	if len(events) != 2 || events[1].Action != ports.ActionUpdate {
		t.Fatalf("expected an update event, got %+v", events)
	}
}

func TestPostService_UpdatePost_SameImageKeepsAsset(t *testing.T) {
	f := newPostFixture()
	auth := f.registerUser(t, "alice@example.com")

	post, err := f.svc.CreatePost(context.Background(), auth, ports.CreatePostInput{
		Title:    "First title",
		Content:  "First content",
		ImageURL: "assets/same.png",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if _, err := f.svc.UpdatePost(context.Background(), auth, ports.UpdatePostInput{
		ID:       post.ID,
		Title:    "New title here",
		Content:  "New content here",
		ImageURL: "assets/same.png",
	}); err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	if deleted := f.assets.deletedRefs(); len(deleted) != 0 {
		t.Fatalf("asset should not be deleted when the reference is unchanged, got %v", deleted)
	}
}

func TestPostService_DeletePost_CascadesAndPublishes(t *testing.T) {
	f := newPostFixture()
	auth := f.registerUser(t, "alice@example.com")

	post, err := f.svc.CreatePost(context.Background(), auth, ports.CreatePostInput{
		Title:    "Doomed post",
		Content:  "Doomed content",
		ImageURL: "assets/doomed.png",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if err := f.svc.DeletePost(context.Background(), auth, post.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	if _, err := f.svc.GetPost(context.Background(), post.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}

	user, err := f.users.FindByID(context.Background(), auth.UserID)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	for _, id := range user.Posts {
		if id == post.ID {
			t.Fatalf("post id still present in creator's posts: %v", user.Posts)
		}
	}

	deleted := f.assets.deletedRefs()
	if len(deleted) != 1 || deleted[0] != "assets/doomed.png" {
		t.Fatalf("expected exactly one asset delete with the stored reference, got %v", deleted)
	}

	events := f.publisher.published()
	last := events[len(events)-1]
	if last.Action != ports.ActionDelete || last.PostID != post.ID {
		t.Fatalf("unexpected delete event: %+v", last)
	}
	if last.Post != nil {
		t.Fatalf("delete event should carry only the id")
	}
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	f := newPostFixture()

	if _, err := f.svc.GetPost(context.Background(), "missing"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_ListPosts_Pagination(t *testing.T) {
	f := newPostFixture()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		f.posts.seed(&domain.Post{
			ID:        fmt.Sprintf("t%d", i),
			Title:     fmt.Sprintf("Post number %d", i),
			Content:   "Some post content",
			Creator:   "u1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	page, err := f.svc.ListPosts(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if page.Total != 5 {
		t.Fatalf("expected total 5, got %d", page.Total)
	}
	if len(page.Posts) != 2 || page.Posts[0].ID != "t3" || page.Posts[1].ID != "t2" {
		got := make([]string, 0, len(page.Posts))
		for _, p := range page.Posts {
			got = append(got, p.ID)
		}
		t.Fatalf("expected page 2 to be [t3 t2], got %v", got)
	}
}

func TestPostService_ListPosts_OutOfRangeAndDefaults(t *testing.T) {
	f := newPostFixture()

	f.posts.seed(&domain.Post{
		ID:        "only",
		Title:     "Only post here",
		Content:   "Only content here",
		Creator:   "u1",
		CreatedAt: time.Now().UTC(),
	})

	page, err := f.svc.ListPosts(context.Background(), 99)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(page.Posts) != 0 || page.Total != 1 {
		t.Fatalf("expected empty page with total 1, got %d posts total %d", len(page.Posts), page.Total)
	}

	// page 0 is treated as page 1
	page, err = f.svc.ListPosts(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(page.Posts) != 1 {
		t.Fatalf("expected first page, got %d posts", len(page.Posts))
	}
}

// End-to-end across both services: register, login, verify, create a post,
// expect exactly one create event with the new post id.
func TestRegisterLoginCreatePost_EndToEnd(t *testing.T) {
	f := newPostFixture()
	authSvc := NewAuthService(f.users, NewJWTCodec("secret", time.Hour), zerolog.Nop())

	if _, err := authSvc.Register(context.Background(), "u1@example.com", "User One", "pass123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, _, err := authSvc.Login(context.Background(), "u1@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	auth := authSvc.Verify("Bearer " + token)
	if !auth.IsAuth {
		t.Fatalf("expected authenticated context")
	}

	post, err := f.svc.CreatePost(context.Background(), auth, ports.CreatePostInput{
		Title:   "Hello World",
		Content: "Hello World Content",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	events := f.publisher.published()
	if len(events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(events))
	}
	if events[0].Action != ports.ActionCreate || events[0].PostID != post.ID {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}
