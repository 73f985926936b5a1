package exchange

import (
	"sync/atomic"
	"unsafe"
)

// Block is the memory capability the core consumes: a contiguous byte
// region with a stable base address. Adapters own acquisition and
// lifecycle; the core only borrows the region for the lifetime of the
// views built over it.
type Block interface {
	// Bytes returns the whole region. The slice must stay valid and its
	// base address stable for as long as views over the block exist.
	Bytes() []byte

	// ReadOnly reports whether mutation through views must be refused.
	ReadOnly() bool
}

// BlockCloser is implemented by blocks whose release has a side effect,
// such as unmapping a shared segment. The last view reference to drop
// triggers Close.
type BlockCloser interface {
	Block
	Close() error
}

// blockHandle is a reference-counted holder for a Block, shared by every
// view built over the same block. It keeps the block alive while views
// exist and invokes the block's close hook when the last reference drops.
type blockHandle struct {
	block Block
	refs  atomic.Int32
}

func newBlockHandle(block Block) *blockHandle {
	h := &blockHandle{block: block}
	h.refs.Store(1)
	return h
}

func (h *blockHandle) retain() {
	h.refs.Add(1)
}

// release decrements the reference count. At zero the block's Close hook
// runs, if it has one; the error is returned to the caller of the final
// Release.
func (h *blockHandle) release() error {
	if h.refs.Add(-1) != 0 {
		return nil
	}
	if c, ok := h.block.(BlockCloser); ok {
		return c.Close()
	}
	return nil
}

// baseAddress returns the address of the first byte of b, or 0 for an
// empty slice.
func baseAddress(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
