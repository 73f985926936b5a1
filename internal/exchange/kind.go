// Package exchange provides the core types for the warray exchange format:
// the element-kind registry, the WA-1 header codec, and typed zero-copy
// array views over raw memory blocks.
package exchange

import "fmt"

// Kind represents the element type of an array view.
type Kind int

// Supported element kinds. The zero value is invalid.
const (
	Int8 Kind = iota + 1
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	Complex64
	Complex128
)

// kindInfo holds the fixed layout properties of a kind.
type kindInfo struct {
	id    uint16 // wire identifier, stable across versions
	size  int    // element size in bytes
	align int    // required alignment of the first element
	label string
}

// kindTable is the process-wide type registry. It is built once and never
// mutated; wire identifiers are append-only.
var kindTable = [...]kindInfo{
	Int8:       {id: 1, size: 1, align: 1, label: "int8"},
	Uint8:      {id: 2, size: 1, align: 1, label: "uint8"},
	Int16:      {id: 3, size: 2, align: 2, label: "int16"},
	Uint16:     {id: 4, size: 2, align: 2, label: "uint16"},
	Int32:      {id: 5, size: 4, align: 4, label: "int32"},
	Uint32:     {id: 6, size: 4, align: 4, label: "uint32"},
	Int64:      {id: 7, size: 8, align: 8, label: "int64"},
	Uint64:     {id: 8, size: 8, align: 8, label: "uint64"},
	Float32:    {id: 9, size: 4, align: 4, label: "float32"},
	Float64:    {id: 10, size: 8, align: 8, label: "float64"},
	Complex64:  {id: 11, size: 8, align: 4, label: "complex64"},
	Complex128: {id: 12, size: 16, align: 8, label: "complex128"},
}

// kindByID maps wire identifiers back to kinds. Built from kindTable so
// the two can never disagree.
var kindByID = func() map[uint16]Kind {
	m := make(map[uint16]Kind, len(kindTable))
	for k := range kindTable {
		if kindTable[k].id != 0 {
			m[kindTable[k].id] = Kind(k)
		}
	}
	return m
}()

// IsValid reports whether k is a registered kind.
func (k Kind) IsValid() bool {
	return k >= Int8 && k <= Complex128
}

// ID returns the kind's stable wire identifier.
// Fails with ErrUnsupportedKind for unregistered kinds.
func (k Kind) ID() (uint16, error) {
	if !k.IsValid() {
		return 0, fmt.Errorf("%w: kind %d", ErrUnsupportedKind, int(k))
	}
	return kindTable[k].id, nil
}

// Size returns the element size in bytes. Panics on an unregistered kind;
// callers validate kinds at construction time.
func (k Kind) Size() int {
	if !k.IsValid() {
		panic(fmt.Sprintf("exchange: unregistered kind %d", int(k)))
	}
	return kindTable[k].size
}

// Alignment returns the byte alignment required for vectorized access to
// elements of this kind.
func (k Kind) Alignment() int {
	if !k.IsValid() {
		panic(fmt.Sprintf("exchange: unregistered kind %d", int(k)))
	}
	return kindTable[k].align
}

// String returns a human-readable label for the kind.
func (k Kind) String() string {
	if !k.IsValid() {
		return "unknown"
	}
	return kindTable[k].label
}

// KindOf resolves a wire identifier to its kind.
// Fails with ErrUnknownKindID for identifiers outside the registered range.
func KindOf(id uint16) (Kind, error) {
	k, ok := kindByID[id]
	if !ok {
		return 0, fmt.Errorf("%w: id %d", ErrUnknownKindID, id)
	}
	return k, nil
}
