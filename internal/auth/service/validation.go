package service

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/dmedvedev/secure-content/internal/common/constants"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	validate      = validator.New()
)

func validateRegistration(username, password, email string) error {
	if err := validateCredentials(username, password); err != nil {
		return err
	}
	return validateEmail(email)
}

func validateCredentials(username, password string) error {
	if len(username) < constants.UsernameMinLength || len(username) > constants.UsernameMaxLength {
		return ErrValidationUsernameLength
	}

	if len(password) < constants.PasswordMinLength || len(password) > constants.PasswordMaxLength {
		return ErrValidationPasswordLength
	}

	if !isValidUsername(username) {
		return ErrValidationUsernameChars
	}

	if !isValidPassword(password) {
		return ErrValidationPasswordWeak
	}

	return nil
}

func validateEmail(email string) error {
	if email == "" || len(email) > constants.EmailMaxLength {
		return ErrValidationEmail
	}

	if err := validate.Var(email, "required,email"); err != nil {
		return ErrValidationEmail
	}

	return nil
}

func isValidUsername(value string) bool {
	if !usernameRegex.MatchString(value) {
		return false
	}

	if !unicode.IsLetter(rune(value[0])) && !unicode.IsDigit(rune(value[0])) {
		return false
	}

	if !unicode.IsLetter(rune(value[len(value)-1])) && !unicode.IsDigit(rune(value[len(value)-1])) {
		return false
	}

	return true
}

func isValidPassword(value string) bool {
	hasLetter := false
	hasDigit := false

	for _, r := range value {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if hasLetter && hasDigit {
			return true
		}
	}

	return false
}
