// Copyright 2026 The warray Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package buffer binds exchange arrays to private in-process byte
// buffers. The buffer doubles as the exchange payload: the same bytes
// Create fills can be handed to a transport and reopened on the other
// side with Load.
//
//	a, buf, err := buffer.Create(exchange.Float64, exchange.Shape{10, 2})
//	...
//	send(buf.Bytes())
//
//	b, err := buffer.Load(received)
package buffer

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/warray-io/warray/internal/exchange"
)

// Buffer is a private byte region backing an exchange array. Buffers
// allocated by this package are aligned so the payload past the WA-1
// header satisfies every kind's alignment; wrapped caller slices keep
// whatever alignment they came with.
type Buffer struct {
	raw  []byte // allocation including alignment headroom
	data []byte // the usable, exchange-format region
}

// NewAligned allocates a zero-filled buffer of exactly size bytes whose
// base address is aligned to the header boundary.
func NewAligned(size int) *Buffer {
	raw := make([]byte, size+exchange.HeaderAlign-1)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	pad := 0
	if rem := base % exchange.HeaderAlign; rem != 0 {
		pad = exchange.HeaderAlign - int(rem)
	}
	return &Buffer{raw: raw, data: raw[pad : pad+size : pad+size]}
}

// Wrap makes a Buffer over a caller-supplied slice without copying. The
// slice must stay valid while views over it exist.
func Wrap(p []byte) *Buffer {
	return &Buffer{data: p}
}

// Bytes returns the buffer's region: the exchange payload, header
// included.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// ReadOnly always reports false; private buffers are writable.
func (b *Buffer) ReadOnly() bool {
	return false
}

// Len returns the buffer's size in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Create allocates a zero-filled aligned buffer of exactly the
// header-driven size for (kind, shape), writes the WA-1 header, and
// returns the view together with the buffer.
func Create(kind exchange.Kind, shape exchange.Shape) (*exchange.Array, *Buffer, error) {
	if !kind.IsValid() {
		return nil, nil, fmt.Errorf("%w: kind %d", exchange.ErrUnsupportedKind, int(kind))
	}
	if err := shape.Validate(); err != nil {
		return nil, nil, err
	}
	header := exchange.HeaderSize(len(shape))
	count := shape.NumElements()
	if count > (math.MaxInt-header)/kind.Size() {
		return nil, nil, fmt.Errorf("%w: %v of %s", exchange.ErrDimensionOverflow, shape, kind)
	}

	buf := NewAligned(header + count*kind.Size())
	a, err := exchange.Create(buf, kind, shape)
	if err != nil {
		return nil, nil, err
	}
	return a, buf, nil
}

// Load decodes the WA-1 header at the start of p and returns the view
// over its payload, without copying. The payload must land on an address
// satisfying the decoded kind's alignment; transport buffers with
// arbitrary alignment can go through LoadCopy instead.
func Load(p []byte) (*exchange.Array, error) {
	return exchange.Load(Wrap(p))
}

// LoadCopy copies p into a fresh aligned buffer and decodes it there.
// One copy, in exchange for working with any source alignment.
func LoadCopy(p []byte) (*exchange.Array, *Buffer, error) {
	buf := NewAligned(len(p))
	copy(buf.data, p)
	a, err := exchange.Load(buf)
	if err != nil {
		return nil, nil, err
	}
	return a, buf, nil
}

// GetBuffer returns the buffer backing a, header included — the bytes to
// hand to a transport. Fails when the view is not buffer-backed.
func GetBuffer(a *exchange.Array) ([]byte, error) {
	b, ok := a.Block().(*Buffer)
	if !ok {
		return nil, fmt.Errorf("%w: backed by %T, not a buffer", exchange.ErrUnsupportedStore, a.Block())
	}
	return b.data, nil
}
