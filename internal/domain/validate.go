package domain

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/cowetaconnect/backend/pkg/errorx"
)

func validateRegistration(email, password, name string) error {
	if email == "" {
		return errorx.New(errorx.BadRequest, "Email is required")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return errorx.New(errorx.BadRequest, "Email is not a valid address")
	}

	if err := validatePassword(password); err != nil {
		return err
	}

	if len([]rune(strings.TrimSpace(name))) < 2 {
		return errorx.New(errorx.BadRequest, "Name must be at least 2 characters")
	}

	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return errorx.New(errorx.BadRequest, "Password must be at least 8 characters")
	}

	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return errorx.New(errorx.BadRequest, "Password must contain an uppercase letter")
	}

	if !hasDigit {
		return errorx.New(errorx.BadRequest, "Password must contain a digit")
	}

	return nil
}
