package exchange

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// WA-1 header layout, little-endian:
//
//	offset 0  : magic       "WA-1" (4 bytes)
//	offset 4  : etype id    (uint16)
//	offset 6  : ndims       (uint16, >= 1)
//	offset 8  : header size (uint64) = roundup(16 + 8*ndims, 64)
//	offset 16 : ndims int64 dimensions, each >= 1
//	padding up to the stored header size, then the first payload element
//
// The stored header size doubles as the payload offset; rounding it to 64
// bytes keeps the payload safely aligned for vectorized access. A decoder
// recomputes the size from ndims and rejects any block whose stored value
// disagrees, which catches truncated or foreign data early.
const (
	headerFixedSize = 16

	// HeaderAlign is the boundary the header+dims block is rounded up to,
	// and therefore the guaranteed alignment of the payload base relative
	// to the block base.
	HeaderAlign = 64
)

var headerMagic = [4]byte{'W', 'A', '-', '1'}

// HeaderSize returns the total byte size of the header plus the dimension
// list for an ndims-dimensional array, rounded up to HeaderAlign. Encoder
// and decoder compute this identically.
func HeaderSize(ndims int) int {
	raw := headerFixedSize + 8*ndims
	return (raw + HeaderAlign - 1) &^ (HeaderAlign - 1)
}

// EncodeHeader writes a WA-1 header for an array of the given kind and
// shape at the start of b, and returns the payload offset. The block must
// have room for the header and the full payload.
func EncodeHeader(b []byte, kind Kind, shape Shape) (int, error) {
	id, err := kind.ID()
	if err != nil {
		return 0, err
	}
	if err := shape.Validate(); err != nil {
		return 0, err
	}
	if len(shape) > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d dimensions", ErrBadDimensions, len(shape))
	}

	offset := HeaderSize(len(shape))
	count := shape.NumElements()
	if count > (math.MaxInt-offset)/kind.Size() {
		return 0, fmt.Errorf("%w: %v of %s", ErrDimensionOverflow, shape, kind)
	}
	total := offset + count*kind.Size()
	if len(b) < total {
		return 0, fmt.Errorf("%w: need %d bytes for header and %s payload %v, have %d",
			ErrInsufficientCapacity, total, kind, shape, len(b))
	}

	copy(b[0:4], headerMagic[:])
	binary.LittleEndian.PutUint16(b[4:6], id)
	binary.LittleEndian.PutUint16(b[6:8], uint16(len(shape)))
	binary.LittleEndian.PutUint64(b[8:16], uint64(offset))
	for i, dim := range shape {
		binary.LittleEndian.PutUint64(b[headerFixedSize+8*i:], uint64(dim))
	}
	// Zero the padding between the dimension list and the payload so a
	// byte-exact copy of the block round-trips deterministically.
	for i := headerFixedSize + 8*len(shape); i < offset; i++ {
		b[i] = 0
	}
	return offset, nil
}

// DecodeHeader reads and validates a WA-1 header from the start of b,
// returning the element kind, shape, and payload offset. It performs pure
// validation against the bytes already present and never allocates beyond
// the returned shape.
func DecodeHeader(b []byte) (Kind, Shape, int, error) {
	if len(b) < headerFixedSize {
		return 0, nil, 0, fmt.Errorf("%w: %d bytes, need at least %d for header",
			ErrInsufficientCapacity, len(b), headerFixedSize)
	}
	if !bytes.Equal(b[0:4], headerMagic[:]) {
		return 0, nil, 0, fmt.Errorf("%w: % x", ErrBadMagic, b[0:4])
	}

	kind, err := KindOf(binary.LittleEndian.Uint16(b[4:6]))
	if err != nil {
		return 0, nil, 0, err
	}

	ndims := int(binary.LittleEndian.Uint16(b[6:8]))
	if ndims < 1 {
		return 0, nil, 0, fmt.Errorf("%w: ndims is 0", ErrBadDimensions)
	}

	offset := HeaderSize(ndims)
	stored := binary.LittleEndian.Uint64(b[8:16])
	if stored != uint64(offset) {
		return 0, nil, 0, fmt.Errorf("%w: stored %d, recomputed %d for %d dims",
			ErrBadOffset, stored, offset, ndims)
	}
	if len(b) < headerFixedSize+8*ndims {
		return 0, nil, 0, fmt.Errorf("%w: %d bytes, need %d for %d dims",
			ErrInsufficientCapacity, len(b), headerFixedSize+8*ndims, ndims)
	}

	shape := make(Shape, ndims)
	for i := range shape {
		dim := int64(binary.LittleEndian.Uint64(b[headerFixedSize+8*i:]))
		if dim < 1 {
			return 0, nil, 0, fmt.Errorf("%w: dimension %d is %d", ErrBadDimensions, i, dim)
		}
		if uint64(dim) > math.MaxInt {
			return 0, nil, 0, fmt.Errorf("%w: dimension %d is %d", ErrDimensionOverflow, i, dim)
		}
		shape[i] = int(dim)
	}
	if err := shape.Validate(); err != nil {
		return 0, nil, 0, err
	}

	count := shape.NumElements()
	if count > (math.MaxInt-offset)/kind.Size() {
		return 0, nil, 0, fmt.Errorf("%w: %v of %s", ErrDimensionOverflow, shape, kind)
	}
	if len(b) < offset+count*kind.Size() {
		return 0, nil, 0, fmt.Errorf("%w: %d bytes, header declares %s payload %v needing %d",
			ErrInsufficientCapacity, len(b), kind, shape, offset+count*kind.Size())
	}
	return kind, shape, offset, nil
}
