package emv

import (
	"fmt"
	"strings"
)

// LeafFormatter rewrites a leaf's content right before it is length-prefixed.
type LeafFormatter func(content string) (string, error)

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithLeafFormatter registers fn for the root-level leaf stored at id.
// Nil formatters are ignored.
func WithLeafFormatter(id ID, fn LeafFormatter) EncoderOption {
	return func(e *Encoder) {
		if fn != nil {
			e.formatters[id] = fn
		}
	}
}

// Encoder serializes trees into TLV strings.
type Encoder struct {
	formatters map[ID]LeafFormatter
}

// NewEncoder returns an Encoder configured with opts.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{formatters: make(map[ID]LeafFormatter)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode serializes t with the default Encoder.
func (t *Tree) Encode() (string, error) {
	return NewEncoder().Encode(t)
}

// Encode serializes t depth-first in each level's iteration order.
func (e *Encoder) Encode(t *Tree) (string, error) {
	var b strings.Builder
	if err := e.encode(&b, t, "", true); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (e *Encoder) encode(b *strings.Builder, t *Tree, prefix string, root bool) error {
	for id, v := range t.All() {
		path := prefix + id.String()

		var content string
		if v.IsGroup() {
			var sub strings.Builder
			if err := e.encode(&sub, v.Tree(), path+".", false); err != nil {
				return err
			}
			content = sub.String()
		} else {
			content = v.Text()
			if fn, ok := e.formatters[id]; ok && root {
				formatted, err := fn(content)
				if err != nil {
					return fmt.Errorf("emv: format field %s: %w", path, err)
				}
				content = formatted
			}
		}

		if err := writeField(b, id, path, content); err != nil {
			return err
		}
	}
	return nil
}

// EncodeField renders a single data object: id, two-digit length, content.
func EncodeField(id ID, content string) (string, error) {
	var b strings.Builder
	if err := writeField(&b, id, id.String(), content); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeField(b *strings.Builder, id ID, path, content string) error {
	if !id.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidID, uint8(id))
	}
	if len(content) > MaxLength {
		return &LengthError{Path: path, Length: len(content)}
	}
	b.WriteString(id.String())
	fmt.Fprintf(b, "%02d", len(content))
	b.WriteString(content)
	return nil
}
