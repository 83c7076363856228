// Package authctx provides the single authorization predicate used by both
// the route guard and the protected page handlers.
package authctx

import (
	"context"
	"net/http"

	"github.com/louisbranch/curation/internal/services/curation/platform/sessioncookie"
)

// IsAuthorized reports whether the request carries a usable session marker.
type IsAuthorized func(*http.Request) bool

// VerifyFunc checks an opaque marker value.
type VerifyFunc func(ctx context.Context, value string) bool

// FromCookie authorizes requests whose auth-token cookie passes verify.
// A nil verify accepts any non-empty marker.
func FromCookie(verify VerifyFunc) IsAuthorized {
	return func(r *http.Request) bool {
		if r == nil {
			return false
		}
		value, ok := sessioncookie.Read(r)
		if !ok {
			return false
		}
		if verify == nil {
			return true
		}
		return verify(r.Context(), value)
	}
}
