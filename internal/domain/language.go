package domain

import "strings"

// BaseLanguage is served when a request names no language or an unsupported one.
const BaseLanguage = "english"

var supportedLanguages = map[string]struct{}{
	"english":   {},
	"hindi":     {},
	"marathi":   {},
	"tamil":     {},
	"telugu":    {},
	"kannada":   {},
	"malayalam": {},
	"gujarati":  {},
	"bengali":   {},
	"odia":      {},
	"nepali":    {},
}

// IsSupportedLanguage reports whether a question collection exists for the language.
func IsSupportedLanguage(language string) bool {
	_, ok := supportedLanguages[strings.ToLower(strings.TrimSpace(language))]
	return ok
}

// NormalizeLanguage lowercases the identifier and falls back to base for unknown values.
func NormalizeLanguage(language, base string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if _, ok := supportedLanguages[lang]; ok {
		return lang
	}
	return base
}
