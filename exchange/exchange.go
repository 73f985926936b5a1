// Copyright 2026 The warray Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package exchange

import (
	"github.com/warray-io/warray/internal/exchange"
)

// Kind represents the element type of an array view.
type Kind = exchange.Kind

// Supported element kinds.
const (
	Int8       Kind = exchange.Int8
	Uint8      Kind = exchange.Uint8
	Int16      Kind = exchange.Int16
	Uint16     Kind = exchange.Uint16
	Int32      Kind = exchange.Int32
	Uint32     Kind = exchange.Uint32
	Int64      Kind = exchange.Int64
	Uint64     Kind = exchange.Uint64
	Float32    Kind = exchange.Float32
	Float64    Kind = exchange.Float64
	Complex64  Kind = exchange.Complex64
	Complex128 Kind = exchange.Complex128
)

// Shape represents the dimensions of an array view, outermost first.
// Layout is dense row-major: the last dimension varies fastest.
type Shape = exchange.Shape

// Array is a typed, shaped, zero-copy view over a region of a Block.
type Array = exchange.Array

// Block is the memory capability the core consumes: a contiguous byte
// region with a stable base address and a read-only flag. The shm and
// buffer packages provide implementations; any type with the same two
// methods works.
type Block = exchange.Block

// BlockCloser is a Block whose release has a side effect, run when the
// last view reference drops.
type BlockCloser = exchange.BlockCloser

// Decoder recovers an array layout from a block that does not carry a
// WA-1 header.
type Decoder = exchange.Decoder

// Elem is the constraint covering every supported element kind.
type Elem = exchange.Elem

// Error categories. Every error wraps exactly one of these.
var (
	ErrArgument = exchange.ErrArgument
	ErrFormat   = exchange.ErrFormat
	ErrCapacity = exchange.ErrCapacity
	ErrAccess   = exchange.ErrAccess
)

// Specific failures.
var (
	ErrUnsupportedKind      = exchange.ErrUnsupportedKind
	ErrUnknownKindID        = exchange.ErrUnknownKindID
	ErrBadDimensions        = exchange.ErrBadDimensions
	ErrNegativeOffset       = exchange.ErrNegativeOffset
	ErrDimensionOverflow    = exchange.ErrDimensionOverflow
	ErrMisalignedBase       = exchange.ErrMisalignedBase
	ErrIncompatibleShape    = exchange.ErrIncompatibleShape
	ErrInvalidDecoderResult = exchange.ErrInvalidDecoderResult
	ErrIncompatibleKinds    = exchange.ErrIncompatibleKinds
	ErrUnsupportedStore     = exchange.ErrUnsupportedStore
	ErrBadMagic             = exchange.ErrBadMagic
	ErrBadOffset            = exchange.ErrBadOffset
	ErrInsufficientCapacity = exchange.ErrInsufficientCapacity
	ErrIndexOutOfRange      = exchange.ErrIndexOutOfRange
	ErrReadOnly             = exchange.ErrReadOnly
)

// HeaderAlign is the boundary the WA-1 header is rounded up to, and the
// guaranteed payload alignment relative to the block base.
const HeaderAlign = exchange.HeaderAlign

// KindOf resolves a wire identifier to its kind.
func KindOf(id uint16) (Kind, error) {
	return exchange.KindOf(id)
}

// KindFor maps a Go element type to its registered kind.
func KindFor[T Elem]() Kind {
	return exchange.KindFor[T]()
}

// HeaderSize returns the total byte size of the WA-1 header plus the
// dimension list for an ndims-dimensional array, rounded up to
// HeaderAlign.
func HeaderSize(ndims int) int {
	return exchange.HeaderSize(ndims)
}

// EncodeHeader writes a WA-1 header for (kind, shape) at the start of b
// and returns the payload offset.
func EncodeHeader(b []byte, kind Kind, shape Shape) (int, error) {
	return exchange.EncodeHeader(b, kind, shape)
}

// DecodeHeader reads and validates a WA-1 header from the start of b.
func DecodeHeader(b []byte) (Kind, Shape, int, error) {
	return exchange.DecodeHeader(b)
}

// NewArray wraps block with an explicit layout. A nil shape derives the
// maximal one-dimensional shape from the bytes past offset.
func NewArray(block Block, kind Kind, shape Shape, offset int) (*Array, error) {
	return exchange.NewArray(block, kind, shape, offset)
}

// Create writes a WA-1 header at the start of block and returns the view
// over the payload that follows it.
func Create(block Block, kind Kind, shape Shape) (*Array, error) {
	return exchange.Create(block, kind, shape)
}

// Load decodes the WA-1 header at the start of block and returns the
// view it describes.
func Load(block Block) (*Array, error) {
	return exchange.Load(block)
}

// NewArrayFromDecoder builds a view using a caller-supplied layout
// decoder, validating its output before any address arithmetic.
func NewArrayFromDecoder(block Block, dec Decoder) (*Array, error) {
	return exchange.NewArrayFromDecoder(block, dec)
}

// Slice returns a zero-copy []T over the payload of a view whose kind
// matches T.
func Slice[T Elem](a *Array) ([]T, error) {
	return exchange.Slice[T](a)
}

// CopyFrom copies src into the view's payload.
func CopyFrom[T Elem](a *Array, src []T) error {
	return exchange.CopyFrom(a, src)
}

// CopyTo copies the view's payload out into a fresh []T. Works on
// read-only views.
func CopyTo[T Elem](a *Array) ([]T, error) {
	return exchange.CopyTo[T](a)
}
