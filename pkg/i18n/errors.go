package i18n

import "errors"

var (
	ErrNoTranslations     = errors.New("i18n: no translations found")
	ErrFailedToReadSource = errors.New("i18n: failed to read translation source")
	ErrFailedToReadFile   = errors.New("i18n: failed to read translation file")
	ErrFailedToParseYAML  = errors.New("i18n: failed to parse YAML content")
	ErrInvalidStructure   = errors.New("i18n: invalid translation structure")
	ErrLoadingCancelled   = errors.New("i18n: loading translations cancelled")
)
