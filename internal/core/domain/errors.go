package domain

import "errors"

// ErrNotAuthenticated is the single opaque failure returned for every
// authentication and authorization miss. Which check failed (bad signature,
// expired token, inactive account, stale token, unknown user, role not
// allowed) is never surfaced to the caller.
var ErrNotAuthenticated = errors.New("not authenticated")

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrForbidden        = errors.New("access forbidden")
)
