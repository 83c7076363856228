package authctx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/curation/internal/services/curation/platform/sessioncookie"
)

func TestFromCookie(t *testing.T) {
	t.Parallel()

	withCookie := func(value string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/welcome", nil)
		req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: value})
		return req
	}

	presence := FromCookie(nil)
	if presence(httptest.NewRequest(http.MethodGet, "/welcome", nil)) {
		t.Fatal("expected request without cookie to be unauthorized")
	}
	if !presence(withCookie("anything")) {
		t.Fatal("expected any non-empty marker to be authorized")
	}
	if presence(nil) {
		t.Fatal("expected nil request to be unauthorized")
	}

	strict := FromCookie(func(_ context.Context, value string) bool { return value == "good" })
	if strict(withCookie("bad")) {
		t.Fatal("expected rejected marker to be unauthorized")
	}
	if !strict(withCookie("good")) {
		t.Fatal("expected verified marker to be authorized")
	}
}
