package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	commonerrors "github.com/dmedvedev/secure-content/internal/common/errors"
	"github.com/dmedvedev/secure-content/internal/common/logger"
	"github.com/dmedvedev/secure-content/internal/common/token"
	"github.com/dmedvedev/secure-content/internal/content/domain"
	postrepo "github.com/dmedvedev/secure-content/internal/content/repository"
	userdomain "github.com/dmedvedev/secure-content/internal/user/domain"
	userrepo "github.com/dmedvedev/secure-content/internal/user/repository"
)

type mockPostRepo struct {
	createFunc         func(ctx context.Context, post domain.Post) (domain.Post, error)
	findByIDFunc       func(ctx context.Context, id int64) (domain.Post, error)
	findAllFunc        func(ctx context.Context) ([]domain.Post, error)
	findByAuthorIDFunc func(ctx context.Context, authorID int64) ([]domain.Post, error)
}

func (m *mockPostRepo) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, post)
	}
	post.ID = 1
	post.CreatedAt = time.Now()
	return post, nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id int64) (domain.Post, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Post{}, postrepo.ErrPostNotFound
}

func (m *mockPostRepo) FindAll(ctx context.Context) ([]domain.Post, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockPostRepo) FindByAuthorID(ctx context.Context, authorID int64) ([]domain.Post, error) {
	if m.findByAuthorIDFunc != nil {
		return m.findByAuthorIDFunc(ctx, authorID)
	}
	return nil, nil
}

type mockUserRepo struct {
	findByIDFunc       func(ctx context.Context, id int64) (userdomain.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	return user, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]userdomain.User, error) {
	return nil, nil
}

type mockSanitizer struct {
	sanitizeFunc func(raw string) string
}

func (m *mockSanitizer) Sanitize(raw string) string {
	if m.sanitizeFunc != nil {
		return m.sanitizeFunc(raw)
	}
	return raw
}

func setupContentService(t *testing.T) (*ContentService, *mockPostRepo, *mockUserRepo, *mockSanitizer) {
	t.Helper()

	posts := &mockPostRepo{}
	users := &mockUserRepo{}
	sanitizer := &mockSanitizer{}
	log, _ := logger.New("", "test", "ERROR")

	return NewContentService(posts, users, sanitizer, log), posts, users, sanitizer
}

func alicePrincipal() token.Claims {
	return token.Claims{Username: "alice", Role: "USER"}
}

func aliceUser() userdomain.User {
	return userdomain.User{ID: 7, Username: "alice", Email: "alice@example.com", Role: "USER"}
}

func TestContentService_CreatePost_SanitizesBeforePersist(t *testing.T) {
	svc, posts, users, sanitizer := setupContentService(t)

	users.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return aliceUser(), nil
	}

	sanitizer.sanitizeFunc = func(raw string) string {
		return strings.ReplaceAll(raw, "<script>bad()</script>", "")
	}

	var stored domain.Post
	posts.createFunc = func(ctx context.Context, post domain.Post) (domain.Post, error) {
		stored = post
		post.ID = 1
		return post, nil
	}

	resp, err := svc.CreatePost(
		context.Background(),
		alicePrincipal(),
		"Hello",
		"text<script>bad()</script> more",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(stored.Content, "<script>") {
		t.Errorf("unsanitized content reached the store: %q", stored.Content)
	}
	if stored.AuthorID != 7 {
		t.Errorf("expected author id 7, got %d", stored.AuthorID)
	}
	if resp.AuthorUsername != "alice" {
		t.Errorf("expected author alice, got %s", resp.AuthorUsername)
	}
}

func TestContentService_CreatePost_AuthorGone(t *testing.T) {
	// A token can outlive its user row.
	svc, _, _, _ := setupContentService(t)

	_, err := svc.CreatePost(context.Background(), alicePrincipal(), "Hello", "text")
	if !errors.Is(err, commonerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestContentService_CreatePost_Validation(t *testing.T) {
	svc, _, users, _ := setupContentService(t)

	users.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return aliceUser(), nil
	}

	tests := []struct {
		name    string
		title   string
		content string
		wantErr error
	}{
		{"empty title", "", "text", ErrValidationTitle},
		{"blank title", "   ", "text", ErrValidationTitle},
		{"title too long", strings.Repeat("a", 201), "text", ErrValidationTitle},
		{"empty content", "Hello", "", ErrValidationContent},
		{"blank content", "Hello", "   ", ErrValidationContent},
		{"content too long", "Hello", strings.Repeat("a", 20001), ErrValidationContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(context.Background(), alicePrincipal(), tt.title, tt.content)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestContentService_ListPosts_EmptyStore(t *testing.T) {
	svc, _, _, _ := setupContentService(t)

	posts, err := svc.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if posts == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(posts) != 0 {
		t.Errorf("expected no posts, got %d", len(posts))
	}
}

func TestContentService_ListPosts_UnknownAuthorFallback(t *testing.T) {
	svc, posts, users, _ := setupContentService(t)

	posts.findAllFunc = func(ctx context.Context) ([]domain.Post, error) {
		return []domain.Post{
			{ID: 1, Title: "first", Content: "text", AuthorID: 7},
			{ID: 2, Title: "second", Content: "text", AuthorID: 99},
		}, nil
	}

	users.findByIDFunc = func(ctx context.Context, id int64) (userdomain.User, error) {
		if id == 7 {
			return aliceUser(), nil
		}
		return userdomain.User{}, userrepo.ErrUserNotFound
	}

	result, err := svc.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(result))
	}
	if result[0].AuthorUsername != "alice" {
		t.Errorf("expected author alice, got %s", result[0].AuthorUsername)
	}
	if result[1].AuthorUsername != "Unknown" {
		t.Errorf("expected Unknown author, got %s", result[1].AuthorUsername)
	}
}

func TestContentService_GetPost_NotFound(t *testing.T) {
	svc, _, _, _ := setupContentService(t)

	_, err := svc.GetPost(context.Background(), 404)
	if !errors.Is(err, commonerrors.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestContentService_ListPostsByUser(t *testing.T) {
	svc, posts, users, _ := setupContentService(t)

	users.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		if username != "alice" {
			return userdomain.User{}, userrepo.ErrUserNotFound
		}
		return aliceUser(), nil
	}

	posts.findByAuthorIDFunc = func(ctx context.Context, authorID int64) ([]domain.Post, error) {
		if authorID != 7 {
			t.Errorf("expected author id 7, got %d", authorID)
		}
		return []domain.Post{{ID: 1, Title: "first", Content: "text", AuthorID: 7}}, nil
	}

	result, err := svc.ListPostsByUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("expected 1 post, got %d", len(result))
	}
	if result[0].AuthorUsername != "alice" {
		t.Errorf("expected author alice, got %s", result[0].AuthorUsername)
	}
}

func TestContentService_ListPostsByUser_UnknownUser(t *testing.T) {
	svc, _, _, _ := setupContentService(t)

	_, err := svc.ListPostsByUser(context.Background(), "ghost")
	if !errors.Is(err, commonerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
