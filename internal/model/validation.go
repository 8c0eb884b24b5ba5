package model

import (
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/portfolio-dev/portfolio-server/internal/errors"
)

const (
	MaxProjectTitleLength   = 100
	MaxContactMessageLength = 5000
)

var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// fieldErrors collects violations in declaration order.
type fieldErrors []apperrors.FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, apperrors.FieldError{Field: field, Message: message})
}

func (f *fieldErrors) required(field, value string) {
	if value == "" {
		f.add(field, field+" is required")
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.ValidationFailed(f)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// compact trims every entry and drops the empty ones. The result is never nil.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
