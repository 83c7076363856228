// Package sessiontoken issues and verifies the opaque value stored in the
// auth-token cookie.
//
// Three modes are supported. Marker reproduces the plain presence check: the
// value is always "1" and any non-empty value passes, so the guard is a
// navigation aid rather than a security boundary. Signed issues HS256 JWTs.
// Stored issues random ids kept in a SessionStore.
package sessiontoken

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/curation/internal/services/curation/platform/sessioncookie"
	"github.com/louisbranch/curation/internal/services/curation/storage"
)

// Mode names a token strategy.
type Mode string

const (
	ModeMarker Mode = "marker"
	ModeSigned Mode = "signed"
	ModeStored Mode = "stored"
)

// MarkerValue is the literal value issued in marker mode.
const MarkerValue = "1"

// Token is an issued cookie value and its absolute expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Manager issues and verifies session tokens.
type Manager interface {
	Issue(ctx context.Context, now time.Time) (Token, error)
	Verify(ctx context.Context, value string) bool
}

// Config selects and parameterizes a Manager.
type Config struct {
	Mode     Mode
	Secret   string
	Store    storage.SessionStore
	Lifetime time.Duration
	Now      func() time.Time
}

// New builds the Manager for cfg.Mode.
func New(cfg Config) (Manager, error) {
	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = sessioncookie.Lifetime
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	switch Mode(strings.ToLower(strings.TrimSpace(string(cfg.Mode)))) {
	case "", ModeMarker:
		return Marker{Lifetime: lifetime}, nil
	case ModeSigned:
		return NewSigned([]byte(cfg.Secret), lifetime, now)
	case ModeStored:
		return NewStored(cfg.Store, lifetime, now)
	default:
		return nil, fmt.Errorf("unsupported session mode %q", cfg.Mode)
	}
}

// Marker issues the fixed "1" value and accepts any non-empty value.
type Marker struct {
	Lifetime time.Duration
}

// Issue returns the marker value expiring Lifetime after now.
func (m Marker) Issue(_ context.Context, now time.Time) (Token, error) {
	return Token{Value: MarkerValue, ExpiresAt: now.Add(m.Lifetime)}, nil
}

// Verify reports whether value is present.
func (Marker) Verify(_ context.Context, value string) bool {
	return strings.TrimSpace(value) != ""
}
