package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/louisbranch/curation/internal/services/curation/platform/requestmeta"
)

func TestReadTrimsAndRejectsEmpty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/welcome", nil)
	if _, ok := Read(req); ok {
		t.Fatal("expected missing cookie to be absent")
	}
	req.AddCookie(&http.Cookie{Name: Name, Value: " 1 "})
	if got, ok := Read(req); !ok || got != "1" {
		t.Fatalf("Read() = %q, %v, want %q, true", got, ok, "1")
	}

	empty := httptest.NewRequest(http.MethodGet, "/welcome", nil)
	empty.AddCookie(&http.Cookie{Name: Name, Value: ""})
	if _, ok := Read(empty); ok {
		t.Fatal("expected empty cookie to be absent")
	}
	if _, ok := Read(nil); ok {
		t.Fatal("expected nil request to be absent")
	}
}

func TestWriteSetsSiteWideLaxCookie(t *testing.T) {
	t.Parallel()

	expires := time.Date(2026, 8, 31, 13, 0, 0, 0, time.UTC)
	rr := httptest.NewRecorder()
	Write(rr, httptest.NewRequest(http.MethodPost, "http://localhost/login", nil), "1", expires, requestmeta.SchemePolicy{})

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != Name || c.Value != "1" || c.Path != "/" {
		t.Fatalf("cookie = %+v", c)
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("SameSite = %v, want Lax", c.SameSite)
	}
	if !c.Expires.Equal(expires) {
		t.Fatalf("Expires = %v, want %v", c.Expires, expires)
	}
	if c.Secure {
		t.Fatal("expected plain http request to produce non-secure cookie")
	}
}

func TestWriteMarksSecureBehindTrustedProxy(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "http://localhost/login", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rr := httptest.NewRecorder()
	Write(rr, req, "1", time.Now().Add(Lifetime), requestmeta.SchemePolicy{TrustForwardedProto: true})

	if c := rr.Result().Cookies()[0]; !c.Secure {
		t.Fatal("expected secure cookie")
	}
}
