// Package qrcode renders QR code images either as raw PNG bytes or as a
// data-URI string that can be embedded directly into HTML pages.
//
// The package is a thin wrapper around github.com/skip2/go-qrcode. A Renderer
// fixes the image size and error correction level once and is then reused for
// every payload; it satisfies the pix.Renderer interface.
//
// # Usage
//
//	r := qrcode.NewRenderer(qrcode.WithSize(300), qrcode.WithRecoveryLevel(qrcode.High))
//
//	// PNG bytes
//	img, err := r.Render(payload, false)
//
//	// data:image/png;base64,... for <img src>
//	uri, err := r.Render(payload, true)
//
// DataURI wraps PNG bytes that were rendered earlier, for example ones read
// back from a cache.
//
// # Error Handling
//
//   - ErrEmptyContent: the content argument was empty or whitespace.
//   - ErrorFailedToGenerateQRCode: the underlying library could not
//     generate the QR code.
package qrcode
