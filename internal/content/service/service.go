package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmedvedev/secure-content/internal/common/constants"
	commonerrors "github.com/dmedvedev/secure-content/internal/common/errors"
	"github.com/dmedvedev/secure-content/internal/common/logger"
	"github.com/dmedvedev/secure-content/internal/common/token"
	"github.com/dmedvedev/secure-content/internal/content/domain"
	postrepo "github.com/dmedvedev/secure-content/internal/content/repository"
	"github.com/dmedvedev/secure-content/internal/observability/metrics"
	userrepo "github.com/dmedvedev/secure-content/internal/user/repository"
)

// unknownAuthor is shown when a post's author row no longer resolves; a
// dangling author reference degrades the label, not the read.
const unknownAuthor = "Unknown"

// Sanitizer neutralizes markup on the write path.
type Sanitizer interface {
	Sanitize(raw string) string
}

type Response struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorID       int64     `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ContentService struct {
	posts     postrepo.Repository
	users     userrepo.Repository
	sanitizer Sanitizer
	log       *logger.Logger
}

func NewContentService(
	posts postrepo.Repository,
	users userrepo.Repository,
	sanitizer Sanitizer,
	log *logger.Logger,
) *ContentService {
	return &ContentService{
		posts:     posts,
		users:     users,
		sanitizer: sanitizer,
		log:       log,
	}
}

// CreatePost persists a post for the authenticated principal. The principal
// is re-resolved against the store: a token can outlive its user, and that
// gap surfaces as user-not-found instead of a dangling insert. Both text
// fields are sanitized before they reach the store.
func (s *ContentService) CreatePost(ctx context.Context, principal token.Claims, title, content string) (Response, error) {
	if err := validatePost(title, content); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": principal.Username,
			"action":   "create_post_validation_failed",
		}).Warnf("create post validation failed: %v", err)
		return Response{}, err
	}

	author, err := s.users.FindByUsername(ctx, principal.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": principal.Username,
				"action":   "create_post_author_missing",
			}).Warn("create post failed: authenticated user no longer exists")
			return Response{}, commonerrors.ErrUserNotFound
		}
		return Response{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	sanitizedTitle := s.sanitizer.Sanitize(title)
	sanitizedContent := s.sanitizer.Sanitize(content)
	if sanitizedTitle != title || sanitizedContent != content {
		metrics.SanitizerModifiedFields.Inc()
	}

	post := domain.Post{
		Title:    sanitizedTitle,
		Content:  sanitizedContent,
		AuthorID: author.ID,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": principal.Username,
			"action":   "create_post_failed",
		}).Errorf("create post failed: %v", err)
		return Response{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": principal.Username,
		"post_id":  created.ID,
		"action":   "create_post_success",
	}).Info("post created")

	metrics.PostsCreated.Inc()

	return toResponse(created, author.Username), nil
}

// ListPosts returns all posts, newest first. An empty store yields an empty
// slice.
func (s *ContentService) ListPosts(ctx context.Context) ([]Response, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_posts_failed",
		}).Errorf("failed to list posts: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	return s.withAuthors(ctx, posts), nil
}

func (s *ContentService) GetPost(ctx context.Context, id int64) (Response, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return Response{}, commonerrors.ErrPostNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"post_id": id,
			"action":  "get_post_failed",
		}).Errorf("failed to get post: %v", err)
		return Response{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	return toResponse(post, s.authorName(ctx, post.AuthorID)), nil
}

// ListPostsByUser fails when the username does not resolve; the author label
// on the returned posts is the requested username by construction.
func (s *ContentService) ListPostsByUser(ctx context.Context, username string) ([]Response, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return nil, commonerrors.ErrUserNotFound
		}
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	posts, err := s.posts.FindByAuthorID(ctx, user.ID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "list_posts_by_user_failed",
		}).Errorf("failed to list posts by user: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	responses := make([]Response, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, toResponse(p, user.Username))
	}

	return responses, nil
}

// withAuthors resolves author display names with a per-call cache; a missing
// author degrades to the "Unknown" label rather than failing the read.
func (s *ContentService) withAuthors(ctx context.Context, posts []domain.Post) []Response {
	names := make(map[int64]string)
	responses := make([]Response, 0, len(posts))

	for _, p := range posts {
		name, ok := names[p.AuthorID]
		if !ok {
			name = s.authorName(ctx, p.AuthorID)
			names[p.AuthorID] = name
		}
		responses = append(responses, toResponse(p, name))
	}

	return responses
}

func (s *ContentService) authorName(ctx context.Context, authorID int64) string {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return unknownAuthor
	}
	return author.Username
}

func validatePost(title, content string) error {
	if strings.TrimSpace(title) == "" || len(title) > constants.TitleMaxLength {
		return ErrValidationTitle
	}
	if strings.TrimSpace(content) == "" || len(content) > constants.ContentMaxLength {
		return ErrValidationContent
	}
	return nil
}

func toResponse(post domain.Post, authorUsername string) Response {
	return Response{
		ID:             post.ID,
		Title:          post.Title,
		Content:        post.Content,
		AuthorID:       post.AuthorID,
		AuthorUsername: authorUsername,
		CreatedAt:      post.CreatedAt,
	}
}
