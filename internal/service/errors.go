package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is temporarily locked due to multiple failed login attempts")
	ErrForbidden          = errors.New("forbidden: insufficient permissions")
)

// ValidationError aggregates every field-level problem found before any
// store write was attempted.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// Actor identifies who triggered a request, for the audit trail. The zero
// value means an unauthenticated caller.
type Actor struct {
	UserID    *uuid.UUID
	Role      string
	IP        string
	RequestID string
}
