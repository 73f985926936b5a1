//go:build linux

package shm

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Segments live under /dev/shm, the tmpfs mount POSIX shm_open uses on
// Linux. Going through the filesystem path keeps this cgo-free.
const shmDir = "/dev/shm"

func segmentPath(name string) string {
	return shmDir + "/" + strings.TrimPrefix(name, "/")
}

// Create allocates a new named segment of exactly size bytes and maps it
// read-write. Fails if a segment with the same name already exists.
func Create(name string, size int, perm fs.FileMode, persistent bool) (*Segment, error) {
	if size <= 0 {
		return nil, fmt.Errorf("shm: non-positive segment size %d", size)
	}
	fd, err := unix.Open(segmentPath(name), unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, uint32(perm.Perm()))
	if err != nil {
		return nil, fmt.Errorf("shm: create %q: %w", name, err)
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		unix.Close(fd)
		unix.Unlink(segmentPath(name))
		return nil, fmt.Errorf("shm: size %q to %d bytes: %w", name, size, err)
	}
	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		unix.Unlink(segmentPath(name))
		return nil, fmt.Errorf("shm: map %q: %w", name, err)
	}
	return &Segment{
		name:       name,
		data:       data,
		fd:         fd,
		created:    true,
		persistent: persistent,
	}, nil
}

// Attach maps the existing segment with the given name. Under readonly
// the mapping is PROT_READ only; writes are additionally refused at the
// view layer, never left to the OS trap alone.
func Attach(name string, readonly bool) (*Segment, error) {
	flags := unix.O_RDWR
	prot := unix.PROT_READ | unix.PROT_WRITE
	if readonly {
		flags = unix.O_RDONLY
		prot = unix.PROT_READ
	}
	fd, err := unix.Open(segmentPath(name), flags|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("shm: attach %q: %w", name, err)
	}
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("shm: stat %q: %w", name, err)
	}
	if st.Size <= 0 {
		unix.Close(fd)
		return nil, fmt.Errorf("shm: segment %q is empty", name)
	}
	data, err := unix.Mmap(fd, 0, int(st.Size), prot, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("shm: map %q: %w", name, err)
	}
	return &Segment{
		name:       name,
		data:       data,
		fd:         fd,
		readonly:   readonly,
		persistent: true,
	}, nil
}

// Unlink removes the named segment. Processes already attached keep their
// mappings until they close them.
func Unlink(name string) error {
	if err := unix.Unlink(segmentPath(name)); err != nil {
		if err == unix.ENOENT {
			return fmt.Errorf("shm: unlink %q: %w", name, os.ErrNotExist)
		}
		return fmt.Errorf("shm: unlink %q: %w", name, err)
	}
	return nil
}

func (s *Segment) unmap() error {
	if s.data == nil {
		return nil
	}
	err := unix.Munmap(s.data)
	s.data = nil
	if cerr := unix.Close(s.fd); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("shm: close %q: %w", s.name, err)
	}
	return nil
}
