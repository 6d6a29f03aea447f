package pixhttp

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrymomot/pixkit/pkg/i18n"
	"github.com/dmitrymomot/pixkit/pkg/validator"
)

//go:embed locales/*.yaml
var localeFiles embed.FS

// defaultTranslator loads the bundled English and Portuguese messages.
func defaultTranslator(ctx context.Context, opts ...i18n.Option) (*i18n.Translator, error) {
	sub, err := fs.Sub(localeFiles, "locales")
	if err != nil {
		return nil, err
	}
	return i18n.NewTranslator(ctx, sub, opts...)
}

// localizeErrors renders field errors in lang, keyed by field name. Errors
// without a translation keep their original message.
func (h *handler) localizeErrors(lang string, errs validator.ValidationErrors) map[string][]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string][]string, len(errs))
	for _, e := range errs {
		out[e.Field] = append(out[e.Field], h.localizeError(lang, e))
	}
	return out
}

func (h *handler) localizeError(lang string, e validator.ValidationError) string {
	if e.TranslationKey == "" {
		return e.Message
	}
	args := make([]string, 0, 2*len(e.TranslationValues)+2)
	for k, v := range e.TranslationValues {
		if k != "field" {
			args = append(args, k, fmt.Sprint(v))
		}
	}
	args = append(args, "field", h.tr.Td(lang, "fields."+e.Field, e.Field))
	return h.tr.Td(lang, e.TranslationKey, e.Message, args...)
}
