package pix_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pixkit/pkg/emv"
	"github.com/dmitrymomot/pixkit/pkg/pix"
	"github.com/dmitrymomot/pixkit/pkg/validator"
)

const (
	randomKey = "4b5e9b53-bded-4f60-8ba3-e1b2cc3088c5"

	sortedPayload          = "00020126720014BR.GOV.BCB.PIX01364b5e9b53-bded-4f60-8ba3-e1b2cc3088c50210Teste PIX.52040000530398654040.015802BR5922MATEUS ANTONIO TAVARES6011JOAO PESSOA62410503***50300017BR.GOV.BCB.BRCODE01051.0.0630435D5"
	sortedSingleUsePayload = "00020101021226720014BR.GOV.BCB.PIX01364b5e9b53-bded-4f60-8ba3-e1b2cc3088c50210Teste PIX.52040000530398654040.015802BR5922MATEUS ANTONIO TAVARES6011JOAO PESSOA62410503***50300017BR.GOV.BCB.BRCODE01051.0.06304F92A"

	insertionPayload          = "00020126720014BR.GOV.BCB.PIX01364b5e9b53-bded-4f60-8ba3-e1b2cc3088c50210Teste PIX.5204000053039865802BR624150300017BR.GOV.BCB.BRCODE01051.0.00503***54040.015922MATEUS ANTONIO TAVARES6011JOAO PESSOA6304347D"
	insertionSingleUsePayload = "00020126720014BR.GOV.BCB.PIX01364b5e9b53-bded-4f60-8ba3-e1b2cc3088c50210Teste PIX.5204000053039865802BR624150300017BR.GOV.BCB.BRCODE01051.0.00503***01021254040.015922MATEUS ANTONIO TAVARES6011JOAO PESSOA6304A00B"
)

func examplePayment() pix.Payment {
	return pix.Payment{
		KeyKind:     pix.KeyRandom,
		Key:         randomKey,
		Description: "Teste PIX.",
		Beneficiary: "Mateus Antônio Tavares",
		City:        "João Pessoa",
	}
}

func newExample(t *testing.T, opts ...pix.Option) *pix.Generator {
	t.Helper()
	g, err := pix.New(examplePayment(), opts...)
	require.NoError(t, err)
	return g
}

func mustEncode(t *testing.T, g *pix.Generator) string {
	t.Helper()
	payload, err := g.Encode()
	require.NoError(t, err)
	return payload
}

type fakeRenderer struct {
	payload string
	dataURI bool
	err     error
}

func (f *fakeRenderer) Render(payload string, dataURI bool) ([]byte, error) {
	f.payload = payload
	f.dataURI = dataURI
	if f.err != nil {
		return nil, f.err
	}
	return []byte("image:" + payload), nil
}

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("ascending field order", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		assert.Equal(t, sortedPayload, mustEncode(t, g))
		assert.Equal(t, emv.OrderByID, g.Order())
	})

	t.Run("insertion field order", func(t *testing.T) {
		t.Parallel()
		g := newExample(t, pix.WithFieldOrder(emv.OrderInsertion))
		assert.Equal(t, insertionPayload, mustEncode(t, g))
	})

	t.Run("single use in both orders", func(t *testing.T) {
		t.Parallel()
		p := examplePayment()
		p.SingleUse = true

		sorted, err := pix.New(p)
		require.NoError(t, err)
		assert.Equal(t, sortedSingleUsePayload, mustEncode(t, sorted))

		insertion, err := pix.New(p, pix.WithFieldOrder(emv.OrderInsertion))
		require.NoError(t, err)
		assert.Equal(t, insertionSingleUsePayload, mustEncode(t, insertion))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		first := mustEncode(t, g)
		assert.Equal(t, first, mustEncode(t, g))
		assert.Equal(t, first, g.String())
	})

	t.Run("ends with a valid CRC data object", func(t *testing.T) {
		t.Parallel()
		payload := mustEncode(t, newExample(t))
		require.Greater(t, len(payload), 8)
		assert.Equal(t, "6304", payload[len(payload)-8:len(payload)-4])
		assert.Regexp(t, `^[0-9A-F]{4}$`, payload[len(payload)-4:])
		assert.True(t, pix.VerifyChecksum(payload))
	})

	t.Run("explicit defaults match implicit ones", func(t *testing.T) {
		t.Parallel()
		g := newExample(t, pix.WithAmount(decimal.RequireFromString("0.01")), pix.WithIdentifier("***"))
		assert.Equal(t, sortedPayload, mustEncode(t, g))
	})

	t.Run("group overflow fails at encode time", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		require.NoError(t, g.SetDescription(strings.Repeat("a", 99)))

		_, err := g.Encode()
		require.Error(t, err)
		assert.ErrorIs(t, err, pix.ErrInvalidPayload)
		assert.ErrorIs(t, err, emv.ErrContentTooLong)
		assert.Empty(t, g.String())

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, pix.FieldDescription, verrs[0].Field)
		assert.Equal(t, "validation.payload_too_long", verrs[0].TranslationKey)
		assert.Equal(t, "26", verrs[0].TranslationValues["path"])
	})
}

func TestSingleUseToggle(t *testing.T) {
	t.Parallel()

	g := newExample(t)
	g.SetSingleUse(true)
	assert.True(t, g.SingleUse())
	assert.Equal(t, sortedSingleUsePayload, mustEncode(t, g))

	g.SetSingleUse(false)
	assert.False(t, g.SingleUse())
	payload := mustEncode(t, g)
	assert.Equal(t, sortedPayload, payload)
	assert.False(t, strings.HasPrefix(payload, "000201010212"))
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("stores normalized values", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		assert.Equal(t, pix.KeyRandom, g.KeyKind())
		assert.Equal(t, randomKey, g.Key())
		assert.False(t, g.SingleUse())
		assert.Equal(t, "Teste PIX.", g.Description())
		assert.Equal(t, "0.01", g.Amount().StringFixed(2))
		assert.Equal(t, "MATEUS ANTONIO TAVARES", g.Beneficiary())
		assert.Equal(t, "***", g.Identifier())
		assert.Equal(t, "JOAO PESSOA", g.City())
	})

	t.Run("fails atomically", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name   string
			mutate func(p *pix.Payment)
			want   error
		}{
			{name: "invalid kind", mutate: func(p *pix.Payment) { p.KeyKind = 0 }, want: pix.ErrInvalidKeyKind},
			{name: "empty key", mutate: func(p *pix.Payment) { p.Key = "" }, want: pix.ErrEmptyKey},
			{name: "short key", mutate: func(p *pix.Payment) { p.Key = randomKey[:35] }, want: pix.ErrInvalidKeyLength},
			{name: "long description", mutate: func(p *pix.Payment) { p.Description = strings.Repeat("d", 100) }, want: pix.ErrFieldTooLong},
			{name: "missing beneficiary", mutate: func(p *pix.Payment) { p.Beneficiary = "" }, want: pix.ErrFieldRequired},
			{name: "long beneficiary", mutate: func(p *pix.Payment) { p.Beneficiary = strings.Repeat("n", 26) }, want: pix.ErrFieldTooLong},
			{name: "missing city", mutate: func(p *pix.Payment) { p.City = "  " }, want: pix.ErrFieldRequired},
			{name: "long city", mutate: func(p *pix.Payment) { p.City = "Sao Jose dos Campos" }, want: pix.ErrFieldTooLong},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				p := examplePayment()
				tt.mutate(&p)

				g, err := pix.New(p)
				require.Error(t, err)
				assert.Nil(t, g)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("invalid options fail construction", func(t *testing.T) {
		t.Parallel()
		g, err := pix.New(examplePayment(), pix.WithIdentifier(strings.Repeat("x", 37)))
		assert.Nil(t, g)
		assert.ErrorIs(t, err, pix.ErrFieldTooLong)

		g, err = pix.New(examplePayment(), pix.WithAmount(decimal.NewFromInt(-1)))
		assert.Nil(t, g)
		assert.ErrorIs(t, err, pix.ErrInvalidAmount)
	})
}

func TestSetAmount(t *testing.T) {
	t.Parallel()

	t.Run("formats with two decimals", func(t *testing.T) {
		t.Parallel()
		g := newExample(t, pix.WithAmount(decimal.RequireFromString("0.1")))
		assert.Contains(t, mustEncode(t, g), "54040.10")
		assert.Equal(t, "0.1", g.Amount().String())
	})

	t.Run("rounds to cents", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		require.NoError(t, g.SetAmount(decimal.RequireFromString("10.005")))
		assert.Contains(t, mustEncode(t, g), "540510.01")
	})

	t.Run("accepts zero and twelve characters", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		require.NoError(t, g.SetAmount(decimal.Zero))
		assert.Contains(t, mustEncode(t, g), "54040.00")

		require.NoError(t, g.SetAmount(decimal.RequireFromString("999999999.99")))
		assert.Contains(t, mustEncode(t, g), "5412999999999.99")
	})

	t.Run("rejects thirteen characters", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		err := g.SetAmount(decimal.RequireFromString("1234567890.12"))
		require.ErrorIs(t, err, pix.ErrFieldTooLong)
		assert.Equal(t, []string{pix.FieldAmount}, validator.ExtractValidationErrors(err).Fields())
		assert.Equal(t, sortedPayload, mustEncode(t, g))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		err := g.SetAmount(decimal.RequireFromString("-0.01"))
		require.ErrorIs(t, err, pix.ErrInvalidAmount)
		assert.Equal(t, "0.01", g.Amount().StringFixed(2))
	})
}

func TestFailingSetterKeepsPayload(t *testing.T) {
	t.Parallel()

	g := newExample(t)
	before := mustEncode(t, g)

	assert.Error(t, g.SetKey(pix.KeyCPF, "123"))
	assert.Error(t, g.SetKey(pix.KeyKind(42), randomKey))
	assert.Error(t, g.SetDescription(strings.Repeat("d", 100)))
	assert.Error(t, g.SetBeneficiary(strings.Repeat("n", 26)))
	assert.Error(t, g.SetIdentifier(strings.Repeat("i", 37)))
	assert.Error(t, g.SetCity(""))

	assert.Equal(t, before, mustEncode(t, g))
	assert.Equal(t, pix.KeyRandom, g.KeyKind())
	assert.Equal(t, randomKey, g.Key())
}

func TestSetters(t *testing.T) {
	t.Parallel()

	t.Run("empty description removes the field", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		require.NoError(t, g.SetDescription(""))
		assert.Empty(t, g.Description())

		payload := mustEncode(t, g)
		assert.NotContains(t, payload, "0210Teste PIX.")
		assert.Contains(t, payload, "26580014BR.GOV.BCB.PIX0136"+randomKey)
		assert.True(t, pix.VerifyChecksum(payload))
	})

	t.Run("description keeps case and drops accents", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		require.NoError(t, g.SetDescription("Teste PIX com açentós"))
		assert.Equal(t, "Teste PIX com acentos", g.Description())
	})

	t.Run("text fields are folded onto one line", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		require.NoError(t, g.SetDescription("Pedido 42\n  mesa 7\t"))
		assert.Equal(t, "Pedido 42 mesa 7", g.Description())
		require.NoError(t, g.SetBeneficiary("  Maria\r\nSilva "))
		assert.Equal(t, "MARIA SILVA", g.Beneficiary())

		// Whitespace-only names are still missing.
		assert.ErrorIs(t, g.SetCity(" \n "), pix.ErrFieldRequired)
		require.NoError(t, g.SetDescription("\n"))
		assert.Empty(t, g.Description())
	})

	t.Run("identifier defaults to placeholder", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		require.NoError(t, g.SetIdentifier("PEDIDO42"))
		assert.Equal(t, "PEDIDO42", g.Identifier())
		require.NoError(t, g.SetIdentifier(""))
		assert.Equal(t, "***", g.Identifier())
	})

	t.Run("identifier length boundary", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		assert.NoError(t, g.SetIdentifier(strings.Repeat("i", 36)))
		assert.ErrorIs(t, g.SetIdentifier(strings.Repeat("i", 37)), pix.ErrFieldTooLong)
	})

	t.Run("name limits apply after normalization", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		// 25 characters, 29 bytes before accents are removed.
		require.NoError(t, g.SetBeneficiary("Maria Conceição Araújo Sá"))
		assert.Equal(t, "MARIA CONCEICAO ARAUJO SA", g.Beneficiary())
		require.NoError(t, g.SetCity("São José do Rio"))
		assert.Equal(t, "SAO JOSE DO RIO", g.City())
	})

	t.Run("key can be replaced in place", func(t *testing.T) {
		t.Parallel()
		g := newExample(t, pix.WithFieldOrder(emv.OrderInsertion))
		require.NoError(t, g.SetKey(pix.KeyCPF, "123.456.789-01"))
		assert.Equal(t, pix.KeyCPF, g.KeyKind())
		assert.Equal(t, "12345678901", g.Key())
		assert.True(t, strings.HasPrefix(mustEncode(t, g), "00020126470014BR.GOV.BCB.PIX011112345678901"))
	})

	t.Run("validation errors name the field", func(t *testing.T) {
		t.Parallel()
		g := newExample(t)
		err := g.SetCity("Sao Jose dos Campos")
		require.Error(t, err)

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, pix.FieldCity, verrs[0].Field)
		assert.Equal(t, "value exceeds maximum field length of 15 characters", verrs[0].Message)
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("passes the payload to the renderer", func(t *testing.T) {
		t.Parallel()
		r := &fakeRenderer{}
		g := newExample(t, pix.WithRenderer(r))

		out, err := g.Render(true)
		require.NoError(t, err)
		assert.Equal(t, "image:"+sortedPayload, string(out))
		assert.Equal(t, sortedPayload, r.payload)
		assert.True(t, r.dataURI)
	})

	t.Run("returns renderer errors unchanged", func(t *testing.T) {
		t.Parallel()
		errRender := errors.New("render failed")
		g := newExample(t, pix.WithRenderer(&fakeRenderer{err: errRender}))

		out, err := g.Render(false)
		assert.Nil(t, out)
		assert.Same(t, errRender, err)
	})

	t.Run("default renderer produces a data URI", func(t *testing.T) {
		t.Parallel()
		g := newExample(t, pix.WithRenderer(nil))
		out, err := g.Render(true)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "data:image/png;base64,"))
	})

	t.Run("does not render invalid payloads", func(t *testing.T) {
		t.Parallel()
		r := &fakeRenderer{}
		g := newExample(t, pix.WithRenderer(r))
		require.NoError(t, g.SetDescription(strings.Repeat("a", 99)))

		_, err := g.Render(false)
		assert.ErrorIs(t, err, pix.ErrInvalidPayload)
		assert.Empty(t, r.payload)
	})
}

func TestVerifyChecksum(t *testing.T) {
	t.Parallel()

	assert.True(t, pix.VerifyChecksum(sortedPayload))
	assert.True(t, pix.VerifyChecksum(insertionPayload))

	assert.False(t, pix.VerifyChecksum(""))
	assert.False(t, pix.VerifyChecksum("6304"))
	assert.False(t, pix.VerifyChecksum(sortedPayload[:len(sortedPayload)-1]+"0"))
	assert.False(t, pix.VerifyChecksum(strings.Replace(sortedPayload, "Teste", "Tests", 1)))
	assert.False(t, pix.VerifyChecksum(strings.ToLower(sortedPayload)))
}
