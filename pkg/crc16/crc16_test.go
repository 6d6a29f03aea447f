package crc16_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pixkit/pkg/crc16"
)

func TestChecksum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  uint16
	}{
		{name: "published check value", input: "123456789", want: 0x29B1},
		{name: "empty input keeps initial register", input: "", want: 0xFFFF},
		{name: "single byte", input: "A", want: 0xB915},
		{name: "value below 0x1000", input: "J", want: 0x087E},
		{name: "two bytes below 0x1000", input: "BR", want: 0x0C16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, crc16.Checksum([]byte(tt.input)))
		})
	}
}

func TestHex(t *testing.T) {
	t.Parallel()

	t.Run("renders four uppercase digits", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "29B1", crc16.Hex(0x29B1))
		assert.Equal(t, "FFFF", crc16.Hex(0xFFFF))
	})

	t.Run("zero pads short values", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "087E", crc16.Hex(0x087E))
		assert.Equal(t, "00A1", crc16.Hex(0x00A1))
		assert.Equal(t, "0000", crc16.Hex(0))
	})

	t.Run("string helper pads too", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "087E", crc16.String("J"))
		assert.Equal(t, "29B1", crc16.String("123456789"))
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	whole := crc16.Checksum([]byte("123456789"))
	split := crc16.Update(crc16.Update(crc16.Init, []byte("1234")), []byte("56789"))
	assert.Equal(t, whole, split, "incremental update must match one-shot checksum")
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("streams like Checksum", func(t *testing.T) {
		t.Parallel()
		h := crc16.New()
		for _, chunk := range []string{"12", "345", "6789"} {
			n, err := h.Write([]byte(chunk))
			require.NoError(t, err)
			assert.Equal(t, len(chunk), n)
		}
		assert.Equal(t, uint16(0x29B1), h.Sum16())
		assert.Equal(t, []byte{0x29, 0xB1}, h.Sum(nil))
		assert.Equal(t, crc16.Size, h.Size())
		assert.Equal(t, 1, h.BlockSize())
	})

	t.Run("reset restores initial register", func(t *testing.T) {
		t.Parallel()
		h := crc16.New()
		_, _ = h.Write([]byte(strings.Repeat("x", 64)))
		h.Reset()
		assert.Equal(t, crc16.Init, h.Sum16())
	})

	t.Run("sum appends to prefix", func(t *testing.T) {
		t.Parallel()
		h := crc16.New()
		_, _ = h.Write([]byte("123456789"))
		assert.Equal(t, []byte{'p', 0x29, 0xB1}, h.Sum([]byte{'p'}))
	})
}
