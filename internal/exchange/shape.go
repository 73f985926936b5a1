package exchange

import (
	"fmt"
	"math"
	"strings"
)

// Shape represents the dimensions of an array view, outermost first.
// Layout is dense row-major: the last dimension varies fastest.
type Shape []int

// Validate checks that the shape has at least one dimension, that every
// dimension is >= 1, and that the element count does not overflow int.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty shape", ErrBadDimensions)
	}
	n := 1
	for i, dim := range s {
		if dim < 1 {
			return fmt.Errorf("%w: dimension %d is %d", ErrBadDimensions, i, dim)
		}
		if n > math.MaxInt/dim {
			return fmt.Errorf("%w: %v", ErrDimensionOverflow, s)
		}
		n *= dim
	}
	return nil
}

// NumElements returns the total number of elements, the product of all
// dimensions. Only meaningful for shapes that pass Validate.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major element strides for the shape:
// stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// String formats the shape as "(d0, d1, ...)".
func (s Shape) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, dim := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", dim)
	}
	b.WriteByte(')')
	return b.String()
}
