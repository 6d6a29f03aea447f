package crc16

import (
	"fmt"
	"hash"
)

const (
	// Poly is the CCITT generator polynomial x^16 + x^12 + x^5 + 1.
	Poly uint16 = 0x1021
	// Init is the initial register value of the CCITT-FALSE variant.
	Init uint16 = 0xFFFF
	// Size is the size of the checksum in bytes.
	Size = 2
)

// table holds the register update for every possible high byte.
var table = makeTable(Poly)

func makeTable(poly uint16) *[256]uint16 {
	t := new([256]uint16)
	for i := range t {
		crc := uint16(i) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}

// Update returns the result of adding the bytes in p to crc.
func Update(crc uint16, p []byte) uint16 {
	for _, b := range p {
		crc = crc<<8 ^ table[byte(crc>>8)^b]
	}
	return crc
}

// Checksum returns the CRC-16/CCITT-FALSE checksum of data.
func Checksum(data []byte) uint16 {
	return Update(Init, data)
}

// Hex renders a checksum as exactly four uppercase hexadecimal digits.
func Hex(sum uint16) string {
	return fmt.Sprintf("%04X", sum)
}

// String computes the checksum of s and renders it with Hex.
func String(s string) string {
	return Hex(Checksum([]byte(s)))
}

// Hash16 is the common interface implemented by all 16-bit hash functions.
type Hash16 interface {
	hash.Hash
	Sum16() uint16
}

type digest struct {
	crc uint16
}

// New creates a new Hash16 computing the CRC-16/CCITT-FALSE checksum.
func New() Hash16 {
	return &digest{crc: Init}
}

func (d *digest) Size() int      { return Size }
func (d *digest) BlockSize() int { return 1 }
func (d *digest) Reset()         { d.crc = Init }
func (d *digest) Sum16() uint16  { return d.crc }

func (d *digest) Write(p []byte) (int, error) {
	d.crc = Update(d.crc, p)
	return len(p), nil
}

// Sum appends the big-endian checksum to b.
func (d *digest) Sum(b []byte) []byte {
	return append(b, byte(d.crc>>8), byte(d.crc))
}
