// Package cli implements the pix command line: encode, qrcode, serve and
// version.
package cli
