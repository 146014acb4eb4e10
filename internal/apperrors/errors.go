// Package apperrors holds the error categories every layer wraps its
// sentinels in, so handlers can branch on the category with errors.Is.
package apperrors

import (
	"errors"
	"strings"
)

var (
	// ErrValidation covers bad or missing input, including duplicates.
	ErrValidation = errors.New("validation failed")
	// ErrAuth covers bad credentials and missing sessions.
	ErrAuth = errors.New("authentication failed")
	// ErrAuthorization covers role and ownership denials.
	ErrAuthorization = errors.New("permission denied")
	// ErrNotFound covers unknown records.
	ErrNotFound = errors.New("not found")
	// ErrIO covers upload writes and unreadable documents.
	ErrIO = errors.New("i/o failure")
)

// Category returns the category err belongs to, or nil for unexpected errors.
func Category(err error) error {
	for _, c := range []error{ErrValidation, ErrAuth, ErrAuthorization, ErrNotFound, ErrIO} {
		if errors.Is(err, c) {
			return c
		}
	}
	return nil
}

// Message renders an expected error for display, without the category prefix.
func Message(err error) string {
	msg := err.Error()
	if c := Category(err); c != nil {
		msg = strings.TrimPrefix(msg, c.Error()+": ")
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
