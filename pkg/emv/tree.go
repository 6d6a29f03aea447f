package emv

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// MaxLength is the largest content length a two-digit length prefix can declare.
const MaxLength = 99

// ID identifies a data object within one level of a Tree.
type ID uint8

// MaxID is the highest identifier a two-digit tag can carry.
const MaxID ID = 99

// Valid reports whether id fits in two decimal digits.
func (id ID) Valid() bool { return id <= MaxID }

// String renders id as exactly two zero-padded digits.
func (id ID) String() string { return fmt.Sprintf("%02d", uint8(id)) }

// Order selects how a Tree iterates its entries.
type Order uint8

const (
	// OrderByID iterates entries by ascending identifier.
	OrderByID Order = iota
	// OrderInsertion iterates entries in first-assignment order.
	OrderInsertion
)

func (o Order) String() string {
	switch o {
	case OrderByID:
		return "sorted"
	case OrderInsertion:
		return "insertion"
	default:
		return fmt.Sprintf("Order(%d)", uint8(o))
	}
}

// ParseOrder converts the textual name of an order discipline.
// Accepted values are "sorted" (or "id") and "insertion".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sorted", "id":
		return OrderByID, nil
	case "insertion":
		return OrderInsertion, nil
	}
	return 0, fmt.Errorf("emv: unknown field order %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Order) MarshalText() ([]byte, error) {
	if o > OrderInsertion {
		return nil, fmt.Errorf("emv: unknown field order %d", uint8(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseOrder.
func (o *Order) UnmarshalText(text []byte) error {
	v, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Value is either a Leaf carrying text or a Group carrying a nested Tree.
type Value struct {
	text  string
	group *Tree
}

// Leaf creates a text value.
func Leaf(text string) Value { return Value{text: text} }

// Group creates a composite value. A nil tree is treated as an empty group.
func Group(t *Tree) Value {
	if t == nil {
		t = NewTree(OrderByID)
	}
	return Value{group: t}
}

// IsGroup reports whether v holds a nested Tree.
func (v Value) IsGroup() bool { return v.group != nil }

// Text returns the leaf content, or "" for groups.
func (v Value) Text() string { return v.text }

// Tree returns the nested tree, or nil for leaves.
func (v Value) Tree() *Tree { return v.group }

type entry struct {
	id    ID
	value Value
}

// Tree is one level of TLV data objects.
// A Tree is not safe for concurrent mutation.
type Tree struct {
	order   Order
	entries []entry
}

// NewTree returns an empty tree using the given order discipline.
func NewTree(order Order) *Tree {
	return &Tree{order: order}
}

// Order returns the tree's order discipline.
func (t *Tree) Order() Order { return t.order }

// Len returns the number of entries at this level.
func (t *Tree) Len() int { return len(t.entries) }

func (t *Tree) index(id ID) int {
	for i, e := range t.entries {
		if e.id == id {
			return i
		}
	}
	return -1
}

// Set assigns v to id. An existing entry keeps its position.
func (t *Tree) Set(id ID, v Value) error {
	if !id.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidID, uint8(id))
	}

	if i := t.index(id); i >= 0 {
		t.entries[i].value = v
		return nil
	}

	e := entry{id: id, value: v}
	if t.order == OrderInsertion {
		t.entries = append(t.entries, e)
		return nil
	}

	pos, _ := slices.BinarySearchFunc(t.entries, id, func(e entry, id ID) int {
		return int(e.id) - int(id)
	})
	t.entries = slices.Insert(t.entries, pos, e)
	return nil
}

// SetLeaf assigns a text value to id.
func (t *Tree) SetLeaf(id ID, text string) error {
	return t.Set(id, Leaf(text))
}

// Group returns the nested tree stored at id, creating an empty group with the
// same order discipline when id is absent.
func (t *Tree) Group(id ID) (*Tree, error) {
	if v, ok := t.Get(id); ok {
		if !v.IsGroup() {
			return nil, fmt.Errorf("%w: %s", ErrNotAGroup, id)
		}
		return v.group, nil
	}

	sub := NewTree(t.order)
	if err := t.Set(id, Group(sub)); err != nil {
		return nil, err
	}
	return sub, nil
}

// Get returns the value stored at id.
func (t *Tree) Get(id ID) (Value, bool) {
	if i := t.index(id); i >= 0 {
		return t.entries[i].value, true
	}
	return Value{}, false
}

// Has reports whether id is present.
func (t *Tree) Has(id ID) bool {
	return t.index(id) >= 0
}

// Delete removes id and its position. It reports whether id was present.
func (t *Tree) Delete(id ID) bool {
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.entries = slices.Delete(t.entries, i, i+1)
	return true
}

// All iterates the entries in the tree's order.
func (t *Tree) All() iter.Seq2[ID, Value] {
	return func(yield func(ID, Value) bool) {
		for _, e := range t.entries {
			if !yield(e.id, e.value) {
				return
			}
		}
	}
}

// IDs returns the identifiers at this level in iteration order.
func (t *Tree) IDs() []ID {
	ids := make([]ID, 0, len(t.entries))
	for id := range t.All() {
		ids = append(ids, id)
	}
	return ids
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	c := &Tree{order: t.order, entries: make([]entry, len(t.entries))}
	for i, e := range t.entries {
		if e.value.IsGroup() {
			e.value = Group(e.value.group.Clone())
		}
		c.entries[i] = e
	}
	return c
}
