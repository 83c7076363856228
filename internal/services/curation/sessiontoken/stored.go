package sessiontoken

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/louisbranch/curation/internal/platform/id"
	"github.com/louisbranch/curation/internal/services/curation/storage"
)

// Stored issues random ids and records them in a SessionStore.
type Stored struct {
	store    storage.SessionStore
	lifetime time.Duration
	now      func() time.Time
}

// NewStored builds a Stored manager over store.
func NewStored(store storage.SessionStore, lifetime time.Duration, now func() time.Time) (*Stored, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if now == nil {
		now = time.Now
	}
	return &Stored{store: store, lifetime: lifetime, now: now}, nil
}

// Issue creates and persists a new session id.
func (s *Stored) Issue(ctx context.Context, now time.Time) (Token, error) {
	value, err := id.NewID()
	if err != nil {
		return Token{}, err
	}
	expiresAt := now.Add(s.lifetime)
	if err := s.store.SaveSession(ctx, value, now, expiresAt); err != nil {
		return Token{}, err
	}
	return Token{Value: value, ExpiresAt: expiresAt}, nil
}

// Verify reports whether value names a stored session that has not expired.
// Lookup failures are logged and treated as unauthenticated.
func (s *Stored) Verify(ctx context.Context, value string) bool {
	if !id.Valid(value) {
		return false
	}
	expiresAt, found, err := s.store.SessionExpiry(ctx, value)
	if err != nil {
		log.Printf("session lookup failed: %v", err)
		return false
	}
	return found && s.now().Before(expiresAt)
}

// Sweep deletes expired sessions every interval until ctx is done.
func (s *Stored) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.store.DeleteExpiredSessions(ctx, s.now())
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("session sweep failed: %v", err)
				}
				continue
			}
			if n > 0 {
				log.Printf("session sweep removed=%d", n)
			}
		}
	}
}
