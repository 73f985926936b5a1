package exchange

import "unsafe"

// testBlock is an in-memory Block with a 64-byte-aligned base, so tests
// exercise the same alignment guarantees a mapped segment provides.
type testBlock struct {
	data   []byte
	ro     bool
	closes int
}

func newTestBlock(size int) *testBlock {
	raw := make([]byte, size+HeaderAlign-1)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	pad := 0
	if rem := base % HeaderAlign; rem != 0 {
		pad = HeaderAlign - int(rem)
	}
	return &testBlock{data: raw[pad : pad+size : pad+size]}
}

func (b *testBlock) Bytes() []byte { return b.data }

func (b *testBlock) ReadOnly() bool { return b.ro }

func (b *testBlock) Close() error {
	b.closes++
	return nil
}
