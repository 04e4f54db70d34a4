package service

import (
	"context"
	"errors"
	"time"

	commoncrypto "github.com/dmedvedev/secure-content/internal/common/crypto"
	commonerrors "github.com/dmedvedev/secure-content/internal/common/errors"
	"github.com/dmedvedev/secure-content/internal/common/logger"
	userdomain "github.com/dmedvedev/secure-content/internal/user/domain"
	userrepo "github.com/dmedvedev/secure-content/internal/user/repository"
)

// TokenIssuer is the slice of the token codec the auth service needs.
type TokenIssuer interface {
	Issue(subject, role string, now time.Time) (string, error)
}

type AuthService struct {
	repo   userrepo.Repository
	hasher commoncrypto.PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
	log    *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	tokens TokenIssuer,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
		log:    log,
	}
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	Token    string
	Username string
	Email    string
}

// Register creates a user with a hashed credential and the default role.
// The username/email existence checks fail fast but are not the correctness
// mechanism: the store's unique constraints adjudicate races, and a
// duplicate-key rejection at insert time maps to the same conflict errors.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.User, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := validateRegistration(input.Username, input.Password, input.Email); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return userdomain.User{}, err
	}

	if err := s.checkAvailability(ctx, input.Username, input.Email); err != nil {
		return userdomain.User{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return userdomain.User{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user := userdomain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         userdomain.DefaultRole,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, userrepo.ErrUsernameExists):
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: username already exists")
			incrementRegistrationConflict("username")
			return userdomain.User{}, ErrUsernameTaken
		case errors.Is(err, userrepo.ErrEmailExists):
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_email_exists",
			}).Warn("register failed: email already exists")
			incrementRegistrationConflict("email")
			return userdomain.User{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return userdomain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": created.Username,
		"user_id":  created.ID,
		"action":   "register_success",
	}).Info("register success")

	incrementRegistrations()

	return created, nil
}

// checkAvailability fails fast on an obviously taken username or email,
// checking the username first.
func (s *AuthService) checkAvailability(ctx context.Context, username, email string) error {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		incrementRegistrationConflict("username")
		return ErrUsernameTaken
	}
	if !errors.Is(err, userrepo.ErrUserNotFound) {
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	_, err = s.repo.FindByEmail(ctx, email)
	if err == nil {
		incrementRegistrationConflict("email")
		return ErrEmailTaken
	}
	if !errors.Is(err, userrepo.ErrUserNotFound) {
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	return nil
}

// Login verifies the credential and issues a bearer token bound to the
// user's username and role. Unknown username and password mismatch return
// the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_user_not_found",
			}).Warn("login failed")
			incrementLoginFailures()
			return LoginResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_invalid_password",
		}).Warn("login failed")
		incrementLoginFailures()
		return LoginResult{}, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.Username, user.Role, s.now())
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": user.Username,
			"user_id":  user.ID,
			"action":   "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return LoginResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  user.ID,
		"action":   "login_success",
	}).Info("login success")

	incrementAccessTokensIssued()

	return LoginResult{
		Token:    signed,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
