// Package i18n resolves language tags against the locales shipped in the
// embedded catalog bundle.
package i18n

import (
	"strings"

	"github.com/louisbranch/aria-memo/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supported = supportedTags()
	matcher   = language.NewMatcher(supported)
)

func supportedTags() []language.Tag {
	// The base locale goes first so the matcher falls back to it.
	tags := []language.Tag{language.MustParse(catalog.BaseLocale)}
	for _, locale := range catalog.Default().Locales() {
		if locale == catalog.BaseLocale {
			continue
		}
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses value and reports whether it matches a supported tag
// with at least high confidence.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return DefaultTag(), false
	}
	return supported[index], true
}

// MatchTags returns the best supported tag for the preferred tags.
func MatchTags(tags []language.Tag) language.Tag {
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[index]
}

// ResolveLocale returns the supported catalog locale for an Accept-Language
// style value. Blank or unparsable values resolve to the default locale.
func ResolveLocale(acceptLanguage string) string {
	value := strings.TrimSpace(acceptLanguage)
	if value == "" {
		return DefaultTag().String()
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return DefaultTag().String()
	}
	return MatchTags(tags).String()
}

// Printer returns a message printer for the locale resolved from acceptLanguage.
func Printer(acceptLanguage string) *message.Printer {
	tag, _ := ParseTag(ResolveLocale(acceptLanguage))
	return message.NewPrinter(tag)
}
