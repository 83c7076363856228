package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   language.Tag
		wantOK bool
	}{
		{in: "pt-BR", want: language.BrazilianPortuguese, wantOK: true},
		{in: "pt", want: language.BrazilianPortuguese, wantOK: true},
		{in: "en", want: language.AmericanEnglish, wantOK: true},
		{in: "", want: language.AmericanEnglish, wantOK: false},
		{in: "not a tag!", want: language.AmericanEnglish, wantOK: false},
		{in: "ja", want: language.AmericanEnglish, wantOK: false},
	}
	for _, tc := range tests {
		got, ok := ParseTag(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("ParseTag(%q) = %v, %v, want %v, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestMatchTagsFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("MatchTags(nil) = %v, want %v", got, DefaultTag())
	}
	if got := MatchTags([]language.Tag{language.Portuguese}); got != language.BrazilianPortuguese {
		t.Fatalf("MatchTags(pt) = %v, want pt-BR", got)
	}
}

func TestSupportedTagsHaveCatalogs(t *testing.T) {
	t.Parallel()

	for _, tag := range SupportedTags() {
		if !Loaded(tag) {
			t.Fatalf("Loaded(%v) = false, want true", tag)
		}
	}
}
