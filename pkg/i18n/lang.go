package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// DefaultLanguage is used when no language is detected.
const DefaultLanguage = "en"

// maxAcceptLanguageLength bounds the part of the Accept-Language header that is parsed.
const maxAcceptLanguageLength = 4096

type langWithQ struct {
	lang string
	q    float64
}

// parseAcceptLanguageHeader returns the header's language tags, lower-cased
// and sorted by descending quality. Malformed quality values count as 1.
func parseAcceptLanguageHeader(header string) []langWithQ {
	if header == "" {
		return nil
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var languages []langWithQ
	for part := range strings.SplitSeq(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || tag == "*" {
			continue
		}

		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
				q = parsed
			}
		}
		if q == 0 {
			continue
		}
		languages = append(languages, langWithQ{lang: tag, q: q})
	}

	slices.SortStableFunc(languages, func(a, b langWithQ) int {
		return cmp.Compare(b.q, a.q)
	})
	return languages
}

// ParseAcceptLanguage picks the best supported language for header. Exact
// matches win over base-language matches (pt-BR matching pt), so quality
// order is only relaxed once no exact match exists. It returns defaultLang
// when nothing matches.
func ParseAcceptLanguage(header string, supportedLangs []string, defaultLang string) string {
	if header == "" || len(supportedLangs) == 0 {
		return defaultLang
	}

	supported := normalizeLangs(supportedLangs)
	languages := parseAcceptLanguageHeader(header)

	for _, lq := range languages {
		if slices.Contains(supported, lq.lang) {
			return lq.lang
		}
	}
	for _, lq := range languages {
		if base := baseLanguage(lq.lang); base != lq.lang && slices.Contains(supported, base) {
			return base
		}
	}
	return defaultLang
}

func normalizeLangs(langs []string) []string {
	out := make([]string, len(langs))
	for i, lang := range langs {
		out[i] = strings.ToLower(lang)
	}
	return out
}

// baseLanguage strips the region subtag: "pt-br" becomes "pt".
func baseLanguage(lang string) string {
	if idx := strings.IndexAny(lang, "-_"); idx > 0 {
		return lang[:idx]
	}
	return lang
}
