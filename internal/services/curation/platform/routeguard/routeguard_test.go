package routeguard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/curation/internal/services/curation/platform/authctx"
	"github.com/louisbranch/curation/internal/services/curation/platform/sessioncookie"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		authorized bool
		want       Decision
	}{
		{name: "protected without marker", path: "/welcome", want: Decision{Redirect: true, Location: "/?from=%2Fwelcome"}},
		{name: "protected sub-path without marker", path: "/welcome/forms/abc", want: Decision{Redirect: true, Location: "/?from=%2Fwelcome%2Fforms%2Fabc"}},
		{name: "protected with marker", path: "/welcome", authorized: true, want: Decision{}},
		{name: "root exact", path: "/", want: Decision{}},
		{name: "api", path: "/api/health", want: Decision{}},
		{name: "bare api", path: "/api", want: Decision{}},
		{name: "api prefix without slash", path: "/apiv2/status", want: Decision{}},
		{name: "bare assets", path: "/assets", want: Decision{}},
		{name: "root lookalike", path: "/welcome-api", want: Decision{Redirect: true, Location: "/?from=%2Fwelcome-api"}},
		{name: "assets", path: "/assets/logo.png", want: Decision{}},
		{name: "static", path: "/static/app.css", want: Decision{}},
		{name: "favicon", path: "/favicon.ico", want: Decision{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Decide(tc.path, tc.authorized); got != tc.want {
				t.Fatalf("Decide(%q, %v) = %+v, want %+v", tc.path, tc.authorized, got, tc.want)
			}
		})
	}
}

func TestMiddlewareRedirectsWithoutMarker(t *testing.T) {
	t.Parallel()

	reached := false
	h := Middleware(authctx.FromCookie(nil))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { reached = true }))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/welcome", nil))
	if reached {
		t.Fatal("protected handler should not run without marker")
	}
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != "/?from=%2Fwelcome" {
		t.Fatalf("Location = %q", got)
	}
}

func TestMiddlewarePassesWithMarker(t *testing.T) {
	t.Parallel()

	reached := false
	h := Middleware(authctx.FromCookie(nil))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { reached = true }))

	req := httptest.NewRequest(http.MethodGet, "/welcome", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "1"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !reached {
		t.Fatal("expected protected handler to run with marker")
	}
}

func TestMiddlewareUsesHTMXRedirect(t *testing.T) {
	t.Parallel()

	h := Middleware(nil)(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodPost, "/welcome/forms/abc", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("HX-Redirect"); got != "/?from=%2Fwelcome%2Fforms%2Fabc" {
		t.Fatalf("HX-Redirect = %q", got)
	}
}
