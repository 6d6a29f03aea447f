// Package pix builds static PIX BR Code payloads.
//
// A Generator holds the EMV data objects of a single payment request. Setters
// normalize and validate their input before touching the payload, so a
// failing setter leaves a previously valid Generator untouched. Encode walks
// the payload with an emv.Encoder, appends the CRC field and returns the
// copy-and-paste string; Render hands that string to a Renderer to produce a
// QR image.
//
// # Usage
//
//	gen, err := pix.New(pix.Payment{
//	    KeyKind:     pix.KeyRandom,
//	    Key:         "4b5e9b53-bded-4f60-8ba3-e1b2cc3088c5",
//	    Description: "Teste PIX.",
//	    Beneficiary: "Mateus Antônio Tavares",
//	    City:        "João Pessoa",
//	}, pix.WithAmount(decimal.RequireFromString("10.00")))
//	if err != nil {
//	    return err
//	}
//	payload, err := gen.Encode()
//
// # Field order
//
// By default data objects are emitted in ascending identifier order, which is
// what EMV readers expect. WithFieldOrder(emv.OrderInsertion) emits them in
// the order they were first assigned instead.
//
// # Errors
//
// Every validation failure joins a package sentinel (ErrFieldTooLong,
// ErrInvalidKeyLength, ...) with validator.ValidationErrors naming the field,
// so callers can branch with errors.Is and report with
// validator.ExtractValidationErrors.
//
// A Generator is not safe for concurrent mutation.
package pix
