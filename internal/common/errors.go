// Package common contains shared constants and sentinel errors used across
// Bridge components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Auth errors.
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidLogin     = errors.New("invalid email/password")
	ErrInvalidAuthShape = errors.New("invalid authorization header format")
	ErrNotVerified      = errors.New("email not verified")
	ErrAlreadyVerified  = errors.New("email already verified")
	ErrInvalidCode      = errors.New("invalid verification code")

	// Matching errors.
	ErrAlreadyGrouped    = errors.New("user already belongs to a group")
	ErrRequestPending    = errors.New("match request already pending")
	ErrSelfRequest       = errors.New("cannot send a match request to yourself")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrRequestNotFound   = errors.New("match request not found")
	ErrRequestNotPending = errors.New("match request is not pending")

	// Group/chat errors.
	ErrGroupFull      = errors.New("group is full")
	ErrGroupNotFound  = errors.New("group not found")
	ErrNotGroupMember = errors.New("not a member of this group")
	ErrEmptyMessage   = errors.New("message text is empty")

	// Generic service errors.
	ErrValidation = errors.New("validation error")
	ErrInternal   = errors.New("internal error")
)
