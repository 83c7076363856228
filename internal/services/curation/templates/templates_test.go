package templates

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/louisbranch/curation/internal/services/curation/form"
	curationi18n "github.com/louisbranch/curation/internal/services/curation/platform/i18n"
	"github.com/louisbranch/curation/internal/services/curation/result"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func render(t *testing.T, c templ.Component, ctx context.Context) string {
	t.Helper()
	if ctx == nil {
		ctx = context.Background()
	}
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return b.String()
}

func englishLoc() Localizer {
	return message.NewPrinter(language.AmericanEnglish)
}

func TestComposePageTitle(t *testing.T) {
	t.Parallel()

	tests := []struct{ title, want string }{
		{"", "Curation"},
		{"Curation", "Curation"},
		{"Sign In | Curation", "Sign In | Curation"},
		{"Curation for Mock Real Test", "Curation for Mock Real Test | Curation"},
	}
	for _, tc := range tests {
		if got := ComposePageTitle(tc.title, "Curation"); got != tc.want {
			t.Fatalf("ComposePageTitle(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestLayoutWrapsChildrenInMain(t *testing.T) {
	t.Parallel()

	child := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>child</p>")
		return err
	})
	ctx := templ.WithChildren(context.Background(), child)
	got := render(t, Layout(LayoutOptions{
		Title: "Sign In | Curation",
		Lang:  "pt-BR",
		Loc:   englishLoc(),
		Languages: []curationi18n.LanguageOption{
			{Tag: "en-US", Label: "English", URL: "/?lang=en-US"},
			{Tag: "pt-BR", Label: "Português (Brasil)", URL: "/?lang=pt-BR", Active: true},
		},
	}), ctx)
	for _, want := range []string{
		`<html lang="pt-BR">`,
		"<title>Sign In | Curation</title>",
		`<main id="main"><p>child</p></main>`,
		`href="/?lang=en-US"`,
		`<span class="language-active" lang="pt-BR">`,
		htmxScriptURL,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("Layout() missing %q in %q", want, got)
		}
	}
}

func TestLoginPanelRendersErrorAndFrom(t *testing.T) {
	t.Parallel()

	got := render(t, LoginPanel(englishLoc(), LoginView{
		Action: "/login",
		From:   `/welcome"><script>`,
		Error:  "Invalid credentials.",
	}), nil)
	for _, want := range []string{
		`hx-post="/login"`,
		`hx-disabled-elt="find button[type=submit]"`,
		`name="from" value="/welcome&#34;&gt;&lt;script&gt;"`,
		`<p class="alert-description">Invalid credentials.</p>`,
		`<strong class="alert-title">Error</strong>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("LoginPanel() missing %q in %q", want, got)
		}
	}
	if strings.Contains(got, `name="password" value`) {
		t.Fatalf("LoginPanel() must not echo a password: %q", got)
	}
}

func TestCurationPanelRowControls(t *testing.T) {
	t.Parallel()

	view := CurationView{
		Action:        "/welcome/forms/abc",
		SheetURL:      "https://docs.example.com/sheet",
		Classes:       []string{"11", "12"},
		QuestionTypes: []string{"Integer"},
		Rows: []RowView{
			{Index: 0, Row: form.Row{ID: 1}},
		},
	}
	got := render(t, CurationPanel(englishLoc(), view), nil)
	for _, want := range []string{
		`placeholder="MockRealTest_12th_31Aug"`,
		`name="chapter-1" aria-label="Chapter" disabled>`,
		"Select Class First",
		`value="remove-0" disabled>`,
		`href="https://docs.example.com/sheet"`,
		">Generate<",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("CurationPanel() missing %q in %q", want, got)
		}
	}

	view.CanRemove = true
	view.Rows = []RowView{
		{Index: 0, Row: form.Row{ID: 1, Class: "12", Chapter: "Atoms"}, Chapters: []string{"Atoms", "Nuclei"}},
		{Index: 1, Row: form.Row{ID: 3}},
	}
	got = render(t, CurationPanel(englishLoc(), view), nil)
	for _, want := range []string{
		`<option value="Atoms" selected>Atoms</option>`,
		"Select Chapter",
		`value="remove-1">`,
		`name="row" value="3"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("CurationPanel() missing %q in %q", want, got)
		}
	}
}

func TestCurationPanelPendingDisablesSubmit(t *testing.T) {
	t.Parallel()

	got := render(t, CurationPanel(englishLoc(), CurationView{Pending: true}), nil)
	if !strings.Contains(got, `value="submit" class="button button-primary" disabled>Generating...`) {
		t.Fatalf("CurationPanel(pending) = %q", got)
	}
}

func TestCurationPanelResultStates(t *testing.T) {
	t.Parallel()

	loc := englishLoc()
	empty := render(t, CurationPanel(loc, CurationView{Result: result.View{State: result.StateEmpty}}), nil)
	if !strings.Contains(empty, "Received an empty data set from the webhook.") {
		t.Fatalf("empty result = %q", empty)
	}

	none := render(t, CurationPanel(loc, CurationView{}), nil)
	if strings.Contains(none, "Curated Test Details") {
		t.Fatalf("StateNone rendered a result card: %q", none)
	}

	mismatch := render(t, CurationPanel(loc, CurationView{Mismatched: true}), nil)
	if !strings.Contains(mismatch, "columns of different lengths") || strings.Contains(mismatch, "<table") {
		t.Fatalf("mismatched result = %q", mismatch)
	}

	table := render(t, CurationPanel(loc, CurationView{Result: result.View{State: result.StateTable, Rows: []result.Row{
		{ChapterName: "Atoms", QuestionType: "Integer", Difficulty: "-", SourceLink: "https://x.test/q", SourceLinkSafe: true, QuestionNumber: "7"},
		{ChapterName: "Nuclei", QuestionType: "Passage", Difficulty: "Hard", SourceLink: "javascript:alert(1)", QuestionNumber: "8"},
	}}}), nil)
	for _, want := range []string{
		"<th>Chapter Name</th>",
		"<td>Atoms</td><td>Integer</td><td>-</td>",
		`<a target="_blank" rel="noopener noreferrer" href="https://x.test/q">View Source</a>`,
		"<td>javascript:alert(1)</td>",
		"<td>8</td>",
	} {
		if !strings.Contains(table, want) {
			t.Fatalf("table result missing %q in %q", want, table)
		}
	}

	failed := render(t, CurationPanel(loc, CurationView{Error: "Failed to submit form: HTTP error! status: 500"}), nil)
	if !strings.Contains(failed, "Failed to submit form: HTTP error! status: 500") {
		t.Fatalf("error alert = %q", failed)
	}
}

func TestTFallsBackToKey(t *testing.T) {
	t.Parallel()

	if got := T(nil, "core.error.submit_failed %s", "x"); got != "core.error.submit_failed x" {
		t.Fatalf("T(nil) = %q", got)
	}
}
