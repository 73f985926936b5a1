package exchange

import (
	"fmt"
	"math"
	"unsafe"
)

// Array is a typed, shaped, zero-copy view over a region of a Block.
// Shape, kind, and offset are fixed at construction; element values are
// mutable in place unless the block is read-only. A successfully
// constructed Array is guaranteed index-safe and layout-consistent for
// its whole lifetime: all validation happens eagerly here.
type Array struct {
	handle  *blockHandle
	kind    Kind
	shape   Shape
	strides []int
	offset  int
	count   int
	data    []byte // payload region, exactly count*kind.Size() bytes
}

// Decoder recovers an array layout from a block that does not carry a
// WA-1 header. Implementations return the element kind, the shape, and
// the byte offset of the first element. The output is validated
// structurally before any pointer arithmetic happens.
type Decoder interface {
	DecodeLayout(block Block) (Kind, Shape, int, error)
}

// NewArray wraps block with an explicit layout. If shape is nil, the
// maximal one-dimensional shape is derived from the bytes remaining past
// offset, which must fit at least one element.
//
// Validation, in order: offset >= 0, kind registered, dimensions >= 1,
// overflow-safe element count, payload capacity, and alignment of
// base+offset to the kind's requirement.
func NewArray(block Block, kind Kind, shape Shape, offset int) (*Array, error) {
	a, err := makeView(block, kind, shape, offset)
	if err != nil {
		return nil, err
	}
	a.handle = newBlockHandle(block)
	return a, nil
}

// Create writes a WA-1 header for (kind, shape) at the start of block and
// returns the view over the payload that follows it. The block must be
// writable and at least HeaderSize(len(shape)) plus the payload size.
func Create(block Block, kind Kind, shape Shape) (*Array, error) {
	if block.ReadOnly() {
		return nil, fmt.Errorf("%w: cannot write header", ErrReadOnly)
	}
	offset, err := EncodeHeader(block.Bytes(), kind, shape)
	if err != nil {
		return nil, err
	}
	return NewArray(block, kind, shape, offset)
}

// Load decodes the WA-1 header at the start of block and returns the view
// it describes.
func Load(block Block) (*Array, error) {
	kind, shape, offset, err := DecodeHeader(block.Bytes())
	if err != nil {
		return nil, err
	}
	return NewArray(block, kind, shape, offset)
}

// NewArrayFromDecoder builds a view using a caller-supplied layout
// decoder. Malformed decoder output fails with ErrInvalidDecoderResult
// before any address arithmetic.
func NewArrayFromDecoder(block Block, dec Decoder) (*Array, error) {
	kind, shape, offset, err := dec.DecodeLayout(block)
	if err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: kind %d is not registered", ErrInvalidDecoderResult, int(kind))
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: empty shape", ErrInvalidDecoderResult)
	}
	for i, dim := range shape {
		if dim < 1 {
			return nil, fmt.Errorf("%w: dimension %d is %d", ErrInvalidDecoderResult, i, dim)
		}
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset %d", ErrInvalidDecoderResult, offset)
	}
	return NewArray(block, kind, shape, offset)
}

// makeView performs the validation chain shared by every construction
// mode and fills in everything except the block handle.
func makeView(block Block, kind Kind, shape Shape, offset int) (*Array, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeOffset, offset)
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedKind, int(kind))
	}

	raw := block.Bytes()
	if offset > len(raw) {
		return nil, fmt.Errorf("%w: offset %d past block of %d bytes",
			ErrInsufficientCapacity, offset, len(raw))
	}

	if shape == nil {
		n := (len(raw) - offset) / kind.Size()
		if n < 1 {
			return nil, fmt.Errorf("%w: %d bytes past offset %d fit no %s element",
				ErrInsufficientCapacity, len(raw)-offset, offset, kind)
		}
		shape = Shape{n}
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	count := shape.NumElements()
	if count > math.MaxInt/kind.Size() {
		return nil, fmt.Errorf("%w: %v of %s", ErrDimensionOverflow, shape, kind)
	}
	size := count * kind.Size()
	if len(raw)-offset < size {
		return nil, fmt.Errorf("%w: %s payload %v needs %d bytes at offset %d, block has %d",
			ErrInsufficientCapacity, kind, shape, size, offset, len(raw))
	}

	if (baseAddress(raw)+uintptr(offset))%uintptr(kind.Alignment()) != 0 {
		return nil, fmt.Errorf("%w: base+%d is not %d-byte aligned for %s",
			ErrMisalignedBase, offset, kind.Alignment(), kind)
	}

	return &Array{
		kind:    kind,
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		offset:  offset,
		count:   count,
		data:    raw[offset : offset+size : offset+size],
	}, nil
}

// Kind returns the element kind.
func (a *Array) Kind() Kind {
	return a.kind
}

// Shape returns the view's shape.
func (a *Array) Shape() Shape {
	return a.shape
}

// Strides returns the row-major element strides implied by the shape.
func (a *Array) Strides() []int {
	return a.strides
}

// Offset returns the byte offset of the first element within the block.
func (a *Array) Offset() int {
	return a.offset
}

// Len returns the total number of elements, the product of the shape.
func (a *Array) Len() int {
	return a.count
}

// ByteSize returns the payload size in bytes.
func (a *Array) ByteSize() int {
	return a.count * a.kind.Size()
}

// ReadOnly reports whether the backing block refuses mutation.
func (a *Array) ReadOnly() bool {
	return a.handle.block.ReadOnly()
}

// Block returns the backing block. Adapters use this to recover their
// own handle type from a view.
func (a *Array) Block() Block {
	return a.handle.block
}

// Bytes returns the payload region without copying. The slice aliases
// the block's memory; callers must not write through it when the view is
// read-only — use Set, Fill, or the As accessors, which enforce that.
func (a *Array) Bytes() []byte {
	return a.data
}

// Retain adds a reference to the backing block, keeping it mapped past
// this view's Release. Every Retain needs a matching Release.
func (a *Array) Retain() {
	a.handle.retain()
}

// Release drops this view's reference to the backing block. The last
// release triggers the block's close hook (for a shared segment, the
// unmap). Releasing never removes a named segment; that is the adapter's
// explicit unlink operation.
func (a *Array) Release() error {
	return a.handle.release()
}

// Get returns the element at linear index i. The dynamic type of the
// result matches the view's kind (int8 for Int8, complex128 for
// Complex128, and so on).
func (a *Array) Get(i int) (any, error) {
	if i < 0 || i >= a.count {
		return nil, fmt.Errorf("%w: %d with %d elements", ErrIndexOutOfRange, i, a.count)
	}
	p := unsafe.Pointer(&a.data[i*a.kind.Size()])
	switch a.kind {
	case Int8:
		return *(*int8)(p), nil
	case Uint8:
		return *(*uint8)(p), nil
	case Int16:
		return *(*int16)(p), nil
	case Uint16:
		return *(*uint16)(p), nil
	case Int32:
		return *(*int32)(p), nil
	case Uint32:
		return *(*uint32)(p), nil
	case Int64:
		return *(*int64)(p), nil
	case Uint64:
		return *(*uint64)(p), nil
	case Float32:
		return *(*float32)(p), nil
	case Float64:
		return *(*float64)(p), nil
	case Complex64:
		return *(*complex64)(p), nil
	case Complex128:
		return *(*complex128)(p), nil
	}
	panic("exchange: unreachable kind in Get")
}

// Set stores v at linear index i. The dynamic type of v must match the
// view's kind exactly; no implicit numeric conversion happens, since a
// silent conversion would not reproduce the caller's bytes.
func (a *Array) Set(i int, v any) error {
	if a.ReadOnly() {
		return fmt.Errorf("%w: set at %d", ErrReadOnly, i)
	}
	if i < 0 || i >= a.count {
		return fmt.Errorf("%w: %d with %d elements", ErrIndexOutOfRange, i, a.count)
	}
	p := unsafe.Pointer(&a.data[i*a.kind.Size()])
	switch a.kind {
	case Int8:
		x, ok := v.(int8)
		if !ok {
			return setTypeError(a.kind, v)
		}
		*(*int8)(p) = x
	case Uint8:
		x, ok := v.(uint8)
		if !ok {
			return setTypeError(a.kind, v)
		}
		*(*uint8)(p) = x
	case Int16:
		x, ok := v.(int16)
		if !ok {
			return setTypeError(a.kind, v)
		}
		*(*int16)(p) = x
	case Uint16:
		x, ok := v.(uint16)
		if !ok {
			return setTypeError(a.kind, v)
		}
		*(*uint16)(p) = x
	case Int32:
		x, ok := v.(int32)
		if !ok {
			return setTypeError(a.kind, v)
		}
		*(*int32)(p) = x
	case Uint32:
		x, ok := v.(uint32)
		if !ok {
			return setTypeError(a.kind, v)
		}
		*(*uint32)(p) = x
	case Int64:
		x, ok := v.(int64)
		if !ok {
			return setTypeError(a.kind, v)
		}
		*(*int64)(p) = x
	case Uint64:
		x, ok := v.(uint64)
		if !ok {
			return setTypeError(a.kind, v)
		}
		*(*uint64)(p) = x
	case Float32:
		x, ok := v.(float32)
		if !ok {
			return setTypeError(a.kind, v)
		}
		*(*float32)(p) = x
	case Float64:
		x, ok := v.(float64)
		if !ok {
			return setTypeError(a.kind, v)
		}
		*(*float64)(p) = x
	case Complex64:
		x, ok := v.(complex64)
		if !ok {
			return setTypeError(a.kind, v)
		}
		*(*complex64)(p) = x
	case Complex128:
		x, ok := v.(complex128)
		if !ok {
			return setTypeError(a.kind, v)
		}
		*(*complex128)(p) = x
	}
	return nil
}

func setTypeError(kind Kind, v any) error {
	return fmt.Errorf("%w: %s view cannot store %T", ErrArgument, kind, v)
}

// Fill stores v into every element of the view. Same typing rule as Set.
func (a *Array) Fill(v any) error {
	if a.count == 0 {
		return nil
	}
	if err := a.Set(0, v); err != nil {
		return err
	}
	// Doubling copy over the payload bytes.
	size := a.kind.Size()
	for filled := size; filled < len(a.data); filled *= 2 {
		copy(a.data[filled:], a.data[:filled])
	}
	return nil
}

// Reinterpret reproduces the same payload bytes as a one-dimensional view
// of a different kind. The payload byte length must divide evenly by the
// new kind's element size, and the payload base must satisfy the new
// kind's alignment.
func (a *Array) Reinterpret(kind Kind) (*Array, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedKind, int(kind))
	}
	size := len(a.data)
	if size%kind.Size() != 0 {
		return nil, fmt.Errorf("%w: %d bytes as %s", ErrIncompatibleKinds, size, kind)
	}
	if (baseAddress(a.data))%uintptr(kind.Alignment()) != 0 {
		return nil, fmt.Errorf("%w: payload base is not %d-byte aligned for %s",
			ErrMisalignedBase, kind.Alignment(), kind)
	}
	a.handle.retain()
	return &Array{
		handle:  a.handle,
		kind:    kind,
		shape:   Shape{size / kind.Size()},
		strides: []int{1},
		offset:  a.offset,
		count:   size / kind.Size(),
		data:    a.data,
	}, nil
}
