// Copyright 2026 The warray Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package shm binds exchange arrays to named OS shared-memory segments,
// so independent processes can share a typed N-dimensional array with no
// copying and no prior agreement on its layout.
//
// Create allocates a segment sized for the header plus payload, writes
// the WA-1 header, and returns the view. Another process recovers the
// same array with Attach using only the segment name:
//
//	a, err := shm.Create("/sensor-frame", exchange.Float32, exchange.Shape{480, 640})
//	...
//	b, err := shm.Attach("/sensor-frame")
//
// No locking is provided; readers and writers coordinate externally.
// Releasing views never removes the segment — removal is the explicit
// Unlink.
package shm

import (
	"fmt"
	"io/fs"
	"math"

	"go.uber.org/zap"

	"github.com/warray-io/warray/internal/exchange"
	ishm "github.com/warray-io/warray/internal/shm"
)

// ErrUnsupportedPlatform is returned on platforms without a shared-memory
// implementation.
var ErrUnsupportedPlatform = ishm.ErrUnsupportedPlatform

// Options control segment creation and attachment.
type Options struct {
	perm       fs.FileMode
	persistent bool
	readonly   bool
}

// Option configures segment creation or attachment.
type Option func(*Options)

// WithPermissions sets the access mode of a created segment.
// The default is 0600.
func WithPermissions(perm fs.FileMode) Option {
	return func(o *Options) { o.perm = perm }
}

// WithPersistent controls whether the segment survives after every
// process has detached. The default is true: the segment stays until an
// explicit Unlink. With false, the creator's final Release removes it.
func WithPersistent(persistent bool) Option {
	return func(o *Options) { o.persistent = persistent }
}

// WithReadOnly attaches with a read-only mapping. Writes through the view
// fail with an access error.
func WithReadOnly() Option {
	return func(o *Options) { o.readonly = true }
}

func applyOptions(opts []Option) Options {
	o := Options{perm: 0o600, persistent: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Create allocates a shared segment named name, exactly large enough for
// the WA-1 header and a (kind, shape) payload, writes the header, and
// returns the view over the payload. The segment starts zero-filled.
//
// Fails if a segment with that name already exists.
func Create(name string, kind exchange.Kind, shape exchange.Shape, opts ...Option) (*exchange.Array, error) {
	o := applyOptions(opts)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: kind %d", exchange.ErrUnsupportedKind, int(kind))
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	header := exchange.HeaderSize(len(shape))
	count := shape.NumElements()
	if count > (math.MaxInt-header)/kind.Size() {
		return nil, fmt.Errorf("%w: %v of %s", exchange.ErrDimensionOverflow, shape, kind)
	}
	total := header + count*kind.Size()

	seg, err := ishm.Create(name, total, o.perm, o.persistent)
	if err != nil {
		return nil, err
	}
	a, err := exchange.Create(seg, kind, shape)
	if err != nil {
		seg.Close()
		ishm.Unlink(name)
		return nil, err
	}
	logger().Debug("created segment",
		zap.String("name", name),
		zap.Stringer("kind", kind),
		zap.Stringer("shape", shape),
		zap.Int("bytes", total))
	return a, nil
}

// Attach maps the existing segment named name, decodes its WA-1 header,
// and returns the view it describes.
func Attach(name string, opts ...Option) (*exchange.Array, error) {
	o := applyOptions(opts)
	seg, err := ishm.Attach(name, o.readonly)
	if err != nil {
		return nil, err
	}
	a, err := exchange.Load(seg)
	if err != nil {
		seg.Close()
		return nil, err
	}
	logger().Debug("attached segment",
		zap.String("name", name),
		zap.Stringer("kind", a.Kind()),
		zap.Stringer("shape", a.Shape()),
		zap.Bool("readonly", o.readonly))
	return a, nil
}

// SegmentName returns the identifying name of the segment backing a, the
// token to hand to another process for Attach. Fails when the view is not
// segment-backed.
func SegmentName(a *exchange.Array) (string, error) {
	seg, ok := a.Block().(*ishm.Segment)
	if !ok {
		return "", fmt.Errorf("%w: backed by %T, not a shared segment", exchange.ErrUnsupportedStore, a.Block())
	}
	return seg.Name(), nil
}

// Unlink removes the named segment. Processes already attached keep
// their mappings until they release their views.
func Unlink(name string) error {
	err := ishm.Unlink(name)
	if err == nil {
		logger().Debug("unlinked segment", zap.String("name", name))
	}
	return err
}
