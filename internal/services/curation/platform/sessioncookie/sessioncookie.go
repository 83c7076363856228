// Package sessioncookie owns the auth-token cookie that marks a signed-in browser.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/curation/internal/services/curation/platform/requestmeta"
)

// Name is the session marker cookie name.
const Name = "auth-token"

// Lifetime is how long a marker stays valid after it is issued.
const Lifetime = time.Hour

// Read returns the trimmed cookie value when present and non-empty.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Write sets the marker with an absolute expiry. The cookie is scoped to the
// whole site so the guard sees it on every path.
func Write(w http.ResponseWriter, r *http.Request, value string, expiresAt time.Time, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(value),
		Path:     "/",
		Expires:  expiresAt.UTC(),
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}
