package dto

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	apperrors "github.com/spec-kit/mood-journal/pkg/util/errorutil"
)

// fieldErrors collects per-field messages and becomes a VALIDATION_FAILED
// error when non-empty.
type fieldErrors map[string]any

func (f fieldErrors) add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError("invalid input", map[string]any(f))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
