package i18n

import (
	"net/http"
	"slices"
	"strings"
)

// maxLangCodeLength follows the RFC 5646 recommendation.
const maxLangCodeLength = 35

// LangExtractor returns the language requested by r, or "" when it cannot tell.
type LangExtractor func(r *http.Request) string

// ExtractorConfig holds the sources checked by DefaultLangExtractor.
type ExtractorConfig struct {
	QueryParamName string
	CookieName     string
	SupportedLangs []string
}

// ExtractorOption configures DefaultLangExtractor.
type ExtractorOption func(*ExtractorConfig)

// WithQueryParamName sets the query parameter holding the language. Empty is ignored.
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithCookieName sets the cookie holding the language. Empty is ignored.
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// WithSupportedLanguages restricts the extractor to langs.
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) > 0 {
			c.SupportedLangs = langs
		}
	}
}

// DefaultLangExtractor checks the query parameter, then the cookie, then the
// Accept-Language header, and returns the first supported language found.
// Without supported languages any well-formed tag is accepted.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	cfg := ExtractorConfig{
		QueryParamName: "lang",
		CookieName:     "lang",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	supported := normalizeLangs(cfg.SupportedLangs)

	validate := func(lang string) string {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" || len(lang) > maxLangCodeLength {
			return ""
		}
		if len(supported) == 0 || slices.Contains(supported, lang) {
			return lang
		}
		if base := baseLanguage(lang); slices.Contains(supported, base) {
			return base
		}
		return ""
	}

	return func(r *http.Request) string {
		if lang := validate(r.URL.Query().Get(cfg.QueryParamName)); lang != "" {
			return lang
		}
		if c, err := r.Cookie(cfg.CookieName); err == nil {
			if lang := validate(c.Value); lang != "" {
				return lang
			}
		}

		header := r.Header.Get("Accept-Language")
		if len(supported) > 0 {
			return ParseAcceptLanguage(header, supported, "")
		}
		if langs := parseAcceptLanguageHeader(header); len(langs) > 0 {
			return validate(langs[0].lang)
		}
		return ""
	}
}
