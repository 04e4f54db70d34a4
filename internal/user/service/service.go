package service

import (
	"context"
	"errors"
	"time"

	commonerrors "github.com/dmedvedev/secure-content/internal/common/errors"
	"github.com/dmedvedev/secure-content/internal/common/logger"
	"github.com/dmedvedev/secure-content/internal/user/domain"
	userrepo "github.com/dmedvedev/secure-content/internal/user/repository"
)

// Response is the public projection of a user. It deliberately has no slot
// for the password hash.
type Response struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserService struct {
	repo userrepo.Repository
	log  *logger.Logger
}

func NewUserService(repo userrepo.Repository, log *logger.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]Response, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "get_all_users_failed",
		}).Errorf("failed to list users: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	responses := make([]Response, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}

	return responses, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (Response, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Response{}, s.mapLookupError(ctx, err, logger.Fields{"user_id": id})
	}

	return toResponse(user), nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (Response, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return Response{}, s.mapLookupError(ctx, err, logger.Fields{"username": username})
	}

	return toResponse(user), nil
}

func (s *UserService) mapLookupError(ctx context.Context, err error, fields logger.Fields) error {
	if errors.Is(err, userrepo.ErrUserNotFound) {
		return commonerrors.ErrUserNotFound
	}

	fields["action"] = "user_lookup_failed"
	s.log.WithFields(ctx, fields).Errorf("user lookup failed: %v", err)
	return commonerrors.ErrDatabaseError.WithCause(err)
}

func toResponse(u domain.User) Response {
	return Response{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
