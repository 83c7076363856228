package pagerender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func fragment(text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
}

func TestWritePageFullDocument(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/welcome", nil)
	err := WritePage(rec, req, Page{
		Title:    "Curation for Mock Real Test",
		Lang:     "en-US",
		Loc:      message.NewPrinter(language.AmericanEnglish),
		Fragment: fragment("<section>body</section>"),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<!doctype html>") || !strings.Contains(body, "<section>body</section>") {
		t.Fatalf("body = %q", body)
	}
	if !strings.Contains(body, `href="/welcome?lang=pt-BR"`) {
		t.Fatalf("body missing language switch: %q", body)
	}
}

func TestWritePageHTMXFragmentOnly(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/welcome/forms/abc", nil)
	req.Header.Set("HX-Request", "true")
	if err := WritePage(rec, req, Page{StatusCode: http.StatusConflict, Fragment: fragment("<div>frag</div>")}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if got := rec.Body.String(); got != "<div>frag</div>" {
		t.Fatalf("body = %q, want fragment only", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("Content-Type = %q", got)
	}
}

func TestWriteErrorUsesStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/nope", nil), http.StatusNotFound, "core.error.not_found")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "Page not found.") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
