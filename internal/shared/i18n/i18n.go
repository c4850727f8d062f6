// Package i18n translates error codes into the caller's language at the HTTP
// boundary. Services never see localized text.
package i18n

import (
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English,
	language.Indonesian,
}

var matcher = language.NewMatcher(supported)

// Match picks the best supported language for an Accept-Language header,
// defaulting to English.
func Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// Message returns the localized text for code, or fallback when the language
// has no entry for it.
func Message(acceptLanguage, code, fallback string) string {
	tag := Match(acceptLanguage)
	if msgs, ok := catalogs[tag]; ok {
		if msg, ok := msgs[code]; ok {
			return msg
		}
	}
	return fallback
}
