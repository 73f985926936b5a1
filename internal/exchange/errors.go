package exchange

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package wraps exactly one
// category, so callers can distinguish bad usage from corrupt data with
// errors.Is without matching individual failures.
var (
	// ErrArgument marks bad caller input: negative offsets, zero
	// dimensions, unsupported kinds. Never retried.
	ErrArgument = errors.New("invalid argument")

	// ErrFormat marks corrupt or foreign header bytes: bad magic,
	// inconsistent offsets, unknown identifiers.
	ErrFormat = errors.New("malformed header")

	// ErrCapacity marks a block too small for the declared shape and
	// offset. Never silently truncates.
	ErrCapacity = errors.New("insufficient capacity")

	// ErrAccess marks per-operation failures on a constructed view:
	// out-of-range indices, writes through a read-only block.
	ErrAccess = errors.New("access violation")
)

// Specific failures, each wrapping its category.
var (
	ErrUnsupportedKind      = fmt.Errorf("%w: unsupported element kind", ErrArgument)
	ErrBadDimensions        = fmt.Errorf("%w: dimensions must be >= 1", ErrArgument)
	ErrNegativeOffset       = fmt.Errorf("%w: negative byte offset", ErrArgument)
	ErrDimensionOverflow    = fmt.Errorf("%w: shape product overflows", ErrArgument)
	ErrMisalignedBase       = fmt.Errorf("%w: payload base is misaligned", ErrArgument)
	ErrIncompatibleShape    = fmt.Errorf("%w: shape does not match buffer", ErrArgument)
	ErrInvalidDecoderResult = fmt.Errorf("%w: decoder returned invalid layout", ErrArgument)
	ErrIncompatibleKinds    = fmt.Errorf("%w: byte length not divisible by target element size", ErrArgument)
	ErrUnsupportedStore     = fmt.Errorf("%w: view is not backed by this store", ErrArgument)

	ErrUnknownKindID = fmt.Errorf("%w: unknown element kind identifier", ErrFormat)
	ErrBadMagic      = fmt.Errorf("%w: bad magic", ErrFormat)
	ErrBadOffset     = fmt.Errorf("%w: stored offset disagrees with recomputed offset", ErrFormat)

	ErrInsufficientCapacity = fmt.Errorf("%w: block too small", ErrCapacity)

	ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrAccess)
	ErrReadOnly        = fmt.Errorf("%w: block is read-only", ErrAccess)
)
