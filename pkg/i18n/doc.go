// Package i18n translates user-facing messages and negotiates the language of
// an HTTP request.
//
// Translations are YAML documents keyed by language code at the top level and
// by dot-separated message keys below it:
//
//	en:
//	  validation:
//	    required: "%{field} is required"
//	pt:
//	  validation:
//	    required: "%{field} é obrigatório"
//
// NewTranslator loads every .yaml or .yml file at the root of an fs.FS, so
// bundles are usually shipped with embed.FS. Placeholders use the %{name}
// form and are filled from key/value argument pairs.
//
// # Language negotiation
//
// Middleware stores the request language in the context. The default
// extractor checks, in order, the "lang" query parameter, the "lang" cookie,
// and the Accept-Language header, keeping only supported languages. A
// regional tag such as pt-BR falls back to its base language pt.
//
//	tr, err := i18n.NewTranslator(ctx, locales, i18n.WithDefaultLanguage("en"))
//	if err != nil {
//		return err
//	}
//	mw := i18n.Middleware(i18n.DefaultLangExtractor(
//		i18n.WithSupportedLanguages(tr.SupportedLanguages()...),
//	))
//
// Handlers then call tr.Tc(r.Context(), "validation.required", "field", "city").
package i18n
