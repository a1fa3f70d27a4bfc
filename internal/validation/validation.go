// Package validation provides input validation utilities
package validation

import (
	"net/mail"
	"regexp"
	"strings"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	maxPasswordLen = 128
	maxFullNameLen = 100
	maxEmailLen    = 254
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// FieldErrors collects per-field validation failures.
type FieldErrors map[string]string

// Add records a failure for the given field, keeping the first message.
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

// OK reports whether no failures were recorded.
func (f FieldErrors) OK() bool {
	return len(f) == 0
}

// Message flattens the failures into a single human-readable message.
func (f FieldErrors) Message() string {
	parts := make([]string, 0, len(f))
	// Stable field ordering keeps error messages deterministic.
	for _, field := range []string{"username", "email", "password", "full_name"} {
		if msg, ok := f[field]; ok {
			parts = append(parts, msg)
		}
	}
	for field, msg := range f {
		switch field {
		case "username", "email", "password", "full_name":
		default:
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// NormalizeUsername trims surrounding whitespace.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// NormalizeEmail trims whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckUsername validates an already-normalized username.
func CheckUsername(username string, errs FieldErrors) {
	switch {
	case username == "":
		errs.Add("username", "username is required")
	case len(username) < minUsernameLen:
		errs.Add("username", "username must be at least 3 characters long")
	case len(username) > maxUsernameLen:
		errs.Add("username", "username must not exceed 50 characters")
	case !usernamePattern.MatchString(username):
		errs.Add("username", "username can only contain letters, numbers, dots, underscores, and hyphens")
	}
}

// CheckEmail validates an already-normalized email address.
func CheckEmail(email string, errs FieldErrors) {
	switch {
	case email == "":
		errs.Add("email", "email is required")
	case len(email) > maxEmailLen:
		errs.Add("email", "email must not exceed 254 characters")
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			errs.Add("email", "invalid email format")
		}
	}
}

// CheckPassword validates a plaintext password.
func CheckPassword(password string, errs FieldErrors) {
	switch {
	case password == "":
		errs.Add("password", "password is required")
	case len(password) < minPasswordLen:
		errs.Add("password", "password must be at least 6 characters long")
	case len(password) > maxPasswordLen:
		errs.Add("password", "password must not exceed 128 characters")
	}
}

// CheckFullName validates an optional display name.
func CheckFullName(fullName string, errs FieldErrors) {
	if len(fullName) > maxFullNameLen {
		errs.Add("full_name", "full name must not exceed 100 characters")
	}
}

// Registration validates and normalizes registration input. It returns the
// normalized username and email alongside any field errors.
func Registration(username, email, password, fullName string) (string, string, FieldErrors) {
	errs := FieldErrors{}
	username = NormalizeUsername(username)
	email = NormalizeEmail(email)

	CheckUsername(username, errs)
	CheckEmail(email, errs)
	CheckPassword(password, errs)
	CheckFullName(strings.TrimSpace(fullName), errs)

	return username, email, errs
}
