package exchange

import (
	"fmt"
	"unsafe"
)

// Elem is the constraint covering every supported element kind.
type Elem interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 |
		~int64 | ~uint64 | ~float32 | ~float64 | ~complex64 | ~complex128
}

// asSlice reinterprets the payload as []T without copying. The caller
// guarantees T matches want's layout.
func asSlice[T Elem](a *Array, want Kind) ([]T, error) {
	if a.kind != want {
		return nil, fmt.Errorf("%w: view is %s, not %s", ErrUnsupportedKind, a.kind, want)
	}
	if a.ReadOnly() {
		return nil, fmt.Errorf("%w: typed slice over %s would permit writes", ErrReadOnly, a.kind)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(a.data))), a.count), nil
}

// AsInt8 interprets the payload as []int8 without copying.
// Fails when the view's kind differs or the block is read-only.
func (a *Array) AsInt8() ([]int8, error) { return asSlice[int8](a, Int8) }

// AsUint8 interprets the payload as []uint8 without copying.
func (a *Array) AsUint8() ([]uint8, error) { return asSlice[uint8](a, Uint8) }

// AsInt16 interprets the payload as []int16 without copying.
func (a *Array) AsInt16() ([]int16, error) { return asSlice[int16](a, Int16) }

// AsUint16 interprets the payload as []uint16 without copying.
func (a *Array) AsUint16() ([]uint16, error) { return asSlice[uint16](a, Uint16) }

// AsInt32 interprets the payload as []int32 without copying.
func (a *Array) AsInt32() ([]int32, error) { return asSlice[int32](a, Int32) }

// AsUint32 interprets the payload as []uint32 without copying.
func (a *Array) AsUint32() ([]uint32, error) { return asSlice[uint32](a, Uint32) }

// AsInt64 interprets the payload as []int64 without copying.
func (a *Array) AsInt64() ([]int64, error) { return asSlice[int64](a, Int64) }

// AsUint64 interprets the payload as []uint64 without copying.
func (a *Array) AsUint64() ([]uint64, error) { return asSlice[uint64](a, Uint64) }

// AsFloat32 interprets the payload as []float32 without copying.
func (a *Array) AsFloat32() ([]float32, error) { return asSlice[float32](a, Float32) }

// AsFloat64 interprets the payload as []float64 without copying.
func (a *Array) AsFloat64() ([]float64, error) { return asSlice[float64](a, Float64) }

// AsComplex64 interprets the payload as []complex64 without copying.
func (a *Array) AsComplex64() ([]complex64, error) { return asSlice[complex64](a, Complex64) }

// AsComplex128 interprets the payload as []complex128 without copying.
func (a *Array) AsComplex128() ([]complex128, error) { return asSlice[complex128](a, Complex128) }

// KindFor maps a Go element type to its registered kind.
func KindFor[T Elem]() Kind {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case uint8:
		return Uint8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case int32:
		return Int32
	case uint32:
		return Uint32
	case int64:
		return Int64
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	}
	panic("exchange: unsupported element type")
}

// Slice is the generic counterpart of the As accessors: a zero-copy []T
// over the payload of a view whose kind matches T.
func Slice[T Elem](a *Array) ([]T, error) {
	return asSlice[T](a, KindFor[T]())
}

// CopyFrom copies src into the view's payload. The view's kind must match
// T and src must have exactly Len elements.
func CopyFrom[T Elem](a *Array, src []T) error {
	dst, err := Slice[T](a)
	if err != nil {
		return err
	}
	if len(src) != len(dst) {
		return fmt.Errorf("%w: %d elements into view of %d", ErrIncompatibleShape, len(src), len(dst))
	}
	copy(dst, src)
	return nil
}

// CopyTo copies the view's payload out into a fresh []T. Unlike the As
// accessors this works on read-only views, since the caller receives a
// private copy.
func CopyTo[T Elem](a *Array) ([]T, error) {
	if a.kind != KindFor[T]() {
		return nil, fmt.Errorf("%w: view is %s, not %s", ErrUnsupportedKind, a.kind, KindFor[T]())
	}
	src := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(a.data))), a.count)
	out := make([]T, a.count)
	copy(out, src)
	return out, nil
}
