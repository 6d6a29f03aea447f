// Package emv models and serializes the nested tag-length-value (TLV) data
// objects used by EMV merchant-presented QR payloads, such as the Brazilian
// PIX BR Code.
//
// Every data object is rendered as a two-digit identifier, a two-digit
// content length and the content itself. Composite objects (templates) hold
// another level of data objects whose serialized form becomes the content of
// the parent.
//
// # Architecture
//
// A Tree is an ordered mapping from ID (00..99) to Value. A Value is an
// explicit tagged union: either a Leaf holding text or a Group holding a
// nested Tree. Each Tree carries an Order discipline that decides how entries
// are iterated and serialized:
//
//   - OrderByID sorts entries by ascending identifier, as EMV QRCPS expects.
//   - OrderInsertion keeps the order in which identifiers were first assigned.
//
// Re-assigning an identifier updates its value in place. Deleting it removes
// both the value and its position.
//
// The Encoder walks a Tree depth-first. Leaf formatters registered with
// WithLeafFormatter rewrite root-level leaves right before their length is
// computed, which is how callers normalize values such as monetary amounts.
//
// # Usage
//
//	t := emv.NewTree(emv.OrderByID)
//	_ = t.SetLeaf(0, "01")
//	mai, _ := t.Group(26)
//	_ = mai.SetLeaf(0, "BR.GOV.BCB.PIX")
//
//	s, err := t.Encode() // "000201" + "26180014BR.GOV.BCB.PIX"
//
// # Error Handling
//
//   - ErrInvalidID: identifier outside 00..99.
//   - ErrNotAGroup: Group called on an identifier holding a leaf.
//   - ErrContentTooLong: serialized content longer than 99 bytes.
//
// Errors wrap these sentinels, so compare them with errors.Is.
package emv
