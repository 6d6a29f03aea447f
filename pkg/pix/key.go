package pix

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/pixkit/pkg/sanitizer"
)

// KeyKind is the type of a PIX key. The zero value is invalid.
type KeyKind uint8

const (
	KeyCPF KeyKind = iota + 1
	KeyCNPJ
	KeyPhone
	KeyEmail
	KeyRandom
)

var keyKindNames = map[KeyKind]string{
	KeyCPF:    "cpf",
	KeyCNPJ:   "cnpj",
	KeyPhone:  "phone",
	KeyEmail:  "email",
	KeyRandom: "random",
}

var keyKindAliases = map[string]KeyKind{
	"cpf":       KeyCPF,
	"cnpj":      KeyCNPJ,
	"phone":     KeyPhone,
	"telefone":  KeyPhone,
	"email":     KeyEmail,
	"e-mail":    KeyEmail,
	"random":    KeyRandom,
	"evp":       KeyRandom,
	"aleatoria": KeyRandom,
}

// Valid reports whether k is one of the declared kinds.
func (k KeyKind) Valid() bool {
	_, ok := keyKindNames[k]
	return ok
}

func (k KeyKind) String() string {
	if name, ok := keyKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KeyKind(%d)", uint8(k))
}

// ParseKeyKind accepts the English names plus the Portuguese aliases
// "telefone" and "aleatória", case-insensitively.
func ParseKeyKind(s string) (KeyKind, error) {
	name := sanitizer.Apply(s, sanitizer.Trim, sanitizer.ToLower, sanitizer.RemoveAccents)
	if k, ok := keyKindAliases[name]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q, expected one of %s", ErrInvalidKeyKind, s, strings.Join(KeyKinds(), ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (k KeyKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyKind, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *KeyKind) UnmarshalText(text []byte) error {
	parsed, err := ParseKeyKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// KeyKinds lists every valid kind name, for help texts.
func KeyKinds() []string {
	return []string{KeyCPF.String(), KeyCNPJ.String(), KeyPhone.String(), KeyEmail.String(), KeyRandom.String()}
}
