//go:build !linux

package shm

import "io/fs"

// Create is unavailable on this platform.
func Create(name string, size int, perm fs.FileMode, persistent bool) (*Segment, error) {
	return nil, ErrUnsupportedPlatform
}

// Attach is unavailable on this platform.
func Attach(name string, readonly bool) (*Segment, error) {
	return nil, ErrUnsupportedPlatform
}

// Unlink is unavailable on this platform.
func Unlink(name string) error {
	return ErrUnsupportedPlatform
}

func (s *Segment) unmap() error {
	return ErrUnsupportedPlatform
}
