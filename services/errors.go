package services

import "errors"

var (
	ErrUserNotFound       = errors.New("user_not_found")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrMissingSlots       = errors.New("missing_slots")
	ErrInvalidSlot        = errors.New("invalid_slot")
	ErrPackageNotFound    = errors.New("package_not_found")

	// ErrUpstream covers timeouts, connection errors and non-2xx answers from the
	// dialogue engine or the LLM provider.
	ErrUpstream = errors.New("upstream_unavailable")
	// ErrUpstreamAuth is an upstream rejection of our credentials (or no credentials configured).
	ErrUpstreamAuth = errors.New("upstream_auth_failed")
)
