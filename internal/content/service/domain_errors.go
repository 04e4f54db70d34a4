package service

import (
	"net/http"

	commonerrors "github.com/dmedvedev/secure-content/internal/common/errors"
)

var (
	ErrValidationTitle = commonerrors.NewDomainError(
		"VALIDATION_TITLE",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"title must be between 1 and 200 characters",
	)

	ErrValidationContent = commonerrors.NewDomainError(
		"VALIDATION_CONTENT",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"content must be between 1 and 20000 characters",
	)
)
