// Package shm contains the platform-specific code for named shared-memory
// segments. The exported surface lives in the top-level shm package; this
// package only maps, unmaps, and removes segments.
package shm

import "errors"

// ErrUnsupportedPlatform is returned on platforms without a shared-memory
// implementation.
var ErrUnsupportedPlatform = errors.New("shared memory segments are not supported on this platform")

// Segment is a mapped named shared-memory region. It satisfies the
// exchange Block capability: a stable byte region plus a read-only flag.
type Segment struct {
	name       string
	data       []byte
	fd         int
	readonly   bool
	created    bool
	persistent bool
}

// Name returns the segment's identifying name, the token another process
// uses to attach.
func (s *Segment) Name() string {
	return s.name
}

// Bytes returns the mapped region.
func (s *Segment) Bytes() []byte {
	return s.data
}

// ReadOnly reports whether the segment was attached for read-only access.
func (s *Segment) ReadOnly() bool {
	return s.readonly
}

// Size returns the mapped length in bytes.
func (s *Segment) Size() int {
	return len(s.data)
}

// Close unmaps the segment and closes its descriptor. A segment created
// as non-persistent is also unlinked, so it disappears once every
// attached process has closed it. Persistent segments survive until an
// explicit Unlink.
func (s *Segment) Close() error {
	err := s.unmap()
	if s.created && !s.persistent {
		if uerr := Unlink(s.name); uerr != nil && err == nil {
			err = uerr
		}
	}
	return err
}
