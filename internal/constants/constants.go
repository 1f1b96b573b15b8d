package constants

import "time"

// Context keys
const (
	ContextKeyIdentity = "identity"
	ContextKeyPuzzle   = "puzzle"
)

// Session keys
const (
	SessionKeyUsername = "username"
	SessionKeyToken    = "token"
)

// Account rules
const (
	MaxUsernameLength = 50
	MinPasswordLength = 10
	MaxPasswordLength = 2000
)

// Puzzle rules
const (
	MaxPuzzleTitleLength = 100
	MaxImageSize         = 10 << 20
)

// Token and session lifetimes
const (
	TokenTTL      = time.Hour
	SessionMaxAge = 24 * 60 * 60
)

// RemovedUserID replaces a deleted user's id in movie response slots.
const RemovedUserID = "-"

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
