package utils

import (
	"strings"

	"golang.org/x/text/language"
)

// DetermineLocale resolves a locale to use based on explicit query param, Accept-Language header,
// supported locales, and a default fallback. Supported values should be base languages like "es", "en".
func DetermineLocale(queryLang, acceptLang string, supported []string, def string) string {
	tags := make([]language.Tag, 0, len(supported))
	names := make([]string, 0, len(supported))
	for _, s := range supported {
		t, err := language.Parse(s)
		if err != nil {
			continue
		}
		tags = append(tags, t)
		names = append(names, strings.ToLower(s))
	}
	if len(tags) == 0 {
		return def
	}
	matcher := language.NewMatcher(tags)

	pick := func(wanted ...language.Tag) (string, bool) {
		if len(wanted) == 0 {
			return "", false
		}
		_, idx, conf := matcher.Match(wanted...)
		if conf == language.No {
			return "", false
		}
		return names[idx], true
	}

	// Query parameter wins when it names a supported language.
	if queryLang != "" {
		if t, err := language.Parse(queryLang); err == nil {
			if v, ok := pick(t); ok {
				return v
			}
		}
	}

	// Example: "en-US,en;q=0.9,es;q=0.8"
	if wanted, _, err := language.ParseAcceptLanguage(acceptLang); err == nil {
		if v, ok := pick(wanted...); ok {
			return v
		}
	}

	def = strings.ToLower(def)
	for _, n := range names {
		if n == def {
			return n
		}
	}
	// If def not in supported, pick first supported to avoid empty
	return names[0]
}
