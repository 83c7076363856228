// Package storage declares persistence contracts for server-side sessions.
//
// Only stored-mode session tokens use persistence; the default marker mode
// keeps no server state.
package storage

import (
	"context"
	"time"
)

// SessionStore persists issued session tokens by their hash.
type SessionStore interface {
	// SaveSession records token as valid until expiresAt and prunes sessions
	// that expired before createdAt.
	SaveSession(ctx context.Context, token string, createdAt, expiresAt time.Time) error
	// SessionExpiry returns when token expires. found is false for unknown tokens.
	SessionExpiry(ctx context.Context, token string) (expiresAt time.Time, found bool, err error)
	// DeleteExpiredSessions removes sessions whose expiry is at or before now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
	Close() error
}
