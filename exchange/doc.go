// Copyright 2026 The warray Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package exchange provides typed, zero-copy N-dimensional array views
// over raw memory blocks, with an optional self-describing binary header
// (the WA-1 format) so a receiver can reconstruct element kind, shape,
// and payload offset without prior agreement.
//
// # Overview
//
// An Array is a shaped, typed window into a Block — anything exposing a
// stable contiguous byte region. Construction validates everything up
// front (kind, dimensions, capacity, alignment, overflow), so a view
// that exists is index-safe for its whole lifetime. Element access is
// in place; no bytes are copied.
//
// # Construction modes
//
// Explicit layout over any block:
//
//	a, err := exchange.NewArray(block, exchange.Float32, exchange.Shape{5, 6}, 0)
//
// Header-driven, for self-describing payloads:
//
//	a, err := exchange.Create(block, exchange.Float64, exchange.Shape{10, 2})
//	b, err := exchange.Load(block) // recovers kind, shape, offset
//
// Custom layouts via a caller-supplied Decoder:
//
//	a, err := exchange.NewArrayFromDecoder(block, myDecoder)
//
// The adapters in the shm and buffer packages supply blocks backed by
// OS shared-memory segments and private byte buffers.
//
// # Supported element kinds
//
// Signed and unsigned integers of 8, 16, 32, and 64 bits, float32,
// float64, complex64, and complex128. Wire identifiers are stable and
// append-only.
//
// # The WA-1 header
//
// A fixed 16-byte prologue (magic "WA-1", kind identifier, dimension
// count, payload offset) followed by the dimension list, rounded up to a
// 64-byte boundary so the payload stays aligned for vectorized access.
// The stored offset is recomputed and verified on decode, which rejects
// truncated or foreign data.
//
// # Concurrency
//
// Views perform no locking. Get and Set are single-element operations
// with no transactional semantics; concurrent writers coordinate
// externally.
package exchange
