package api

import "errors"

var (
	// ErrUnauthorized means the credential was missing, invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the credential was fine but the action is not
	// allowed for this account; on login it signals an unverified email.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable covers network failures and 5xx responses. Callers treat
	// it as recoverable: keep state, let the user retry.
	ErrUnavailable = errors.New("server unavailable")

	// ErrNotFound maps 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRequest maps 4xx responses other than auth/404; the wrapped
	// message carries the server's reason.
	ErrInvalidRequest = errors.New("invalid request")
)
