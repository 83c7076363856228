package i18n

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/curation/internal/services/curation/platform/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestResolveTagPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		want        language.Tag
		wantPersist bool
	}{
		{name: "default", target: "/", want: language.AmericanEnglish},
		{name: "query", target: "/?lang=pt-BR", cookie: "en-US", want: language.BrazilianPortuguese, wantPersist: true},
		{name: "bare query language", target: "/?lang=pt", want: language.BrazilianPortuguese, wantPersist: true},
		{name: "unsupported query falls through to cookie", target: "/?lang=xx", cookie: "pt-BR", want: language.BrazilianPortuguese},
		{name: "accept language", target: "/", accept: "pt-BR,pt;q=0.9", want: language.BrazilianPortuguese},
		{name: "unsupported accept language", target: "/", accept: "ja", want: language.AmericanEnglish},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, persist := ResolveTag(req)
			if got != tc.want || persist != tc.wantPersist {
				t.Fatalf("ResolveTag() = (%v, %v), want (%v, %v)", got, persist, tc.want, tc.wantPersist)
			}
		})
	}
}

func TestResolveLocalizerPersistsQueryChoice(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil)
	loc, lang := ResolveLocalizer(rec, req)
	if lang != "pt-BR" {
		t.Fatalf("lang = %q, want %q", lang, "pt-BR")
	}
	if got := loc.Sprintf("login.invalid_credentials"); got != "Credenciais inválidas." {
		t.Fatalf("Sprintf() = %q", got)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "pt-BR" {
		t.Fatalf("cookies = %+v, want %s=pt-BR", cookies, LangCookieName)
	}

	rec = httptest.NewRecorder()
	_, _ = ResolveLocalizer(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("Set-Cookie"); got != "" {
		t.Fatalf("Set-Cookie = %q, want none without ?lang", got)
	}
}

func TestLanguageOptionsMarkActive(t *testing.T) {
	t.Parallel()

	loc := message.NewPrinter(language.AmericanEnglish)
	options := LanguageOptions(loc, "/welcome", "form=abc", "pt-BR")
	if len(options) != 2 {
		t.Fatalf("len(options) = %d, want 2", len(options))
	}
	if options[0].Active || !options[1].Active {
		t.Fatalf("options = %+v, want pt-BR active", options)
	}
	if options[1].Label != "Português (Brasil)" {
		t.Fatalf("label = %q", options[1].Label)
	}
	if !strings.Contains(options[1].URL, "form=abc") || !strings.Contains(options[1].URL, "lang=pt-BR") {
		t.Fatalf("url = %q, want form and lang preserved", options[1].URL)
	}
}

func TestLocalizeError(t *testing.T) {
	t.Parallel()

	loc := message.NewPrinter(language.AmericanEnglish)
	keyed := apperrors.EK(apperrors.KindConflict, "core.error.submission_pending", "pending")
	if got := LocalizeError(loc, keyed); got != "A submission is already in progress." {
		t.Fatalf("LocalizeError(keyed) = %q", got)
	}
	if got := LocalizeError(loc, errors.New(" plain ")); got != "plain" {
		t.Fatalf("LocalizeError(plain) = %q", got)
	}
	if got := LocalizeError(loc, nil); got != "" {
		t.Fatalf("LocalizeError(nil) = %q", got)
	}
}
