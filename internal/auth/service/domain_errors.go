package service

import (
	"net/http"

	commonerrors "github.com/dmedvedev/secure-content/internal/common/errors"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	// The two cases must stay indistinguishable to the caller so usernames
	// cannot be enumerated through the login endpoint.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Invalid username or password",
	)

	// Registration conflicts surface as 400 on the public API.
	ErrUsernameTaken = commonerrors.NewDomainError(
		"USERNAME_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"Username already exists",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"Email already exists",
	)

	ErrValidationUsernameLength = commonerrors.NewDomainError(
		"VALIDATION_USERNAME_LENGTH",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"username must be between 3 and 32 characters",
	)

	ErrValidationUsernameChars = commonerrors.NewDomainError(
		"VALIDATION_USERNAME_CHARS",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"username may contain only letters, digits, underscores and dashes",
	)

	ErrValidationPasswordLength = commonerrors.NewDomainError(
		"VALIDATION_PASSWORD_LENGTH",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"password must be between 8 and 72 characters",
	)

	ErrValidationPasswordWeak = commonerrors.NewDomainError(
		"VALIDATION_PASSWORD_WEAK",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"password must contain at least one letter and one digit",
	)

	ErrValidationEmail = commonerrors.NewDomainError(
		"VALIDATION_EMAIL",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"email address is not valid",
	)
)
