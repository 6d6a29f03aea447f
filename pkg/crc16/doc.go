// Package crc16 implements the CRC-16/CCITT-FALSE checksum used as the
// integrity trailer of EMV merchant-presented QR payloads such as the PIX
// BR Code.
//
// The variant uses the polynomial 0x1021, an initial register of 0xFFFF, no
// input or output reflection and no final XOR. The well-known check value for
// the ASCII string "123456789" is 0x29B1.
//
// # Usage
//
//	import "github.com/dmitrymomot/pixkit/pkg/crc16"
//
//	sum := crc16.Checksum([]byte("123456789")) // 0x29B1
//	hex := crc16.Hex(sum)                      // "29B1"
//
//	// Streaming
//	h := crc16.New()
//	h.Write([]byte("1234"))
//	h.Write([]byte("56789"))
//	h.Sum16() // 0x29B1
//
// Hex always renders exactly four uppercase digits, zero-padded, so values
// below 0x1000 still fill a fixed-width checksum field.
//
// All functions are safe for concurrent use. A Hash16 returned by New is not.
package crc16
