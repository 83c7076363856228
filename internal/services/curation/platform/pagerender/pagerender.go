// Package pagerender centralizes page rendering for full-page and htmx flows.
package pagerender

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/curation/internal/services/curation/platform/httpx"
	curationi18n "github.com/louisbranch/curation/internal/services/curation/platform/i18n"
	"github.com/louisbranch/curation/internal/services/curation/templates"
)

// Page describes one page response.
type Page struct {
	Title      string
	StatusCode int
	Lang       string
	Loc        curationi18n.Localizer
	Fragment   templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage writes only the fragment for htmx requests and the full layout
// otherwise.
func WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}
	ctx := httpx.RequestContext(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if httpx.IsHTMXRequest(r) {
		w.WriteHeader(statusCode)
		return fragment.Render(ctx, w)
	}

	var languages []curationi18n.LanguageOption
	if r != nil {
		languages = curationi18n.LanguageOptions(page.Loc, r.URL.Path, r.URL.RawQuery, page.Lang)
	}
	w.WriteHeader(statusCode)
	layout := templates.Layout(templates.LayoutOptions{
		Title:     page.Title,
		Lang:      page.Lang,
		Loc:       page.Loc,
		Languages: languages,
	})
	return layout.Render(templ.WithChildren(ctx, fragment), w)
}

// WriteError renders a localized error page with status. key names the
// catalog message shown to the visitor.
func WriteError(w http.ResponseWriter, r *http.Request, status int, key string) {
	loc, lang := curationi18n.ResolveLocalizer(w, r)
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	message := http.StatusText(status)
	if key != "" {
		message = loc.Sprintf(key)
	}
	err := WritePage(w, r, Page{
		Title:      loc.Sprintf("core.error"),
		StatusCode: status,
		Lang:       lang,
		Loc:        loc,
		Fragment:   templates.ErrorState(loc, message),
	})
	if err != nil {
		http.Error(w, message, status)
	}
}
