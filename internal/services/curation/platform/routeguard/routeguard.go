// Package routeguard redirects unauthenticated browsers away from protected
// paths before any protected handler runs.
package routeguard

import (
	"net/http"
	"strings"

	"github.com/louisbranch/curation/internal/services/curation/platform/authctx"
	"github.com/louisbranch/curation/internal/services/curation/platform/httpx"
	"github.com/louisbranch/curation/internal/services/curation/routepath"
)

// Decision is the guard outcome for one request path.
type Decision struct {
	Redirect bool
	Location string
}

// Prefixes match raw strings, so "/api" exempts the bare path too.
var exemptPrefixes = []string{
	routepath.StaticPrefix,
	routepath.API,
	routepath.Favicon,
	routepath.Assets,
}

// Exempt reports whether path bypasses the guard entirely.
func Exempt(path string) bool {
	if path == routepath.Root {
		return true
	}
	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Decide computes the guard outcome for path.
func Decide(path string, authorized bool) Decision {
	if Exempt(path) || authorized {
		return Decision{}
	}
	return Decision{Redirect: true, Location: routepath.LoginFrom(path)}
}

// Middleware applies Decide to every request that reaches next.
func Middleware(isAuthorized authctx.IsAuthorized) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorized := isAuthorized != nil && isAuthorized(r)
			decision := Decide(r.URL.Path, authorized)
			if decision.Redirect {
				httpx.WriteRedirect(w, r, decision.Location)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
