// Package i18n defines the supported locales and tag parsing helpers.
package i18n

import (
	"strings"

	"github.com/louisbranch/curation/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
)

var (
	supported = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}
	matcher   = language.NewMatcher(supported)
)

// DefaultTag returns the fallback locale.
func DefaultTag() language.Tag {
	return language.AmericanEnglish
}

// SupportedTags returns the locales that have catalogs.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// ParseTag maps value onto a supported locale. Bare languages ("pt") resolve
// to their supported regional variant.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return DefaultTag(), false
	}
	return supported[index], true
}

// MatchTags picks the best supported locale for an Accept-Language list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[index]
}

// Loaded reports whether the embedded catalogs registered a locale for tag.
func Loaded(tag language.Tag) bool {
	return catalog.Default().HasLocale(tag.String())
}
