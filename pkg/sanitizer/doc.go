// Package sanitizer provides small, composable helpers that clean user input
// before it is stored in a payment payload.
//
// The helpers are grouped conceptually into two areas:
//
//   - Text: accent transliteration for Latin letters, case conversion backed
//     by golang.org/x/text, whitespace trimming.
//
//   - Format: digit extraction used by identity keys such as tax ids and
//     phone numbers.
//
// All helpers have the signature func(string) string so they can be chained
// with Apply and Compose:
//
//	clean := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.RemoveAccents,
//	    sanitizer.ToUpper,
//	)
//
//	city := clean("  João Pessoa ") // "JOAO PESSOA"
//
// # Accent removal
//
// RemoveAccents is a best-effort transliteration, not a full Unicode
// normalization routine. A Latin letter whose canonical decomposition is a
// base letter followed by combining marks is replaced by the base letter
// ("ç" → "c", "Ã" → "A"). Everything else, including letters from other
// scripts and Latin letters without a decomposition such as "ø", passes
// through unchanged.
//
// # Error handling
//
// None of the helpers returns an error. When a transformation cannot be
// applied the original input is returned.
//
// The package has no global mutable state and is safe for concurrent use.
package sanitizer
