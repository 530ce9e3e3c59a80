package pointfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/achilleasa/voxtrace/scene"
)

// Source is a read-only, memory-mapped view over a point file written by a
// Sink. It mirrors pointset's mmap-on-open, munmap-on-close lifecycle: the
// whole file is paged in lazily by the kernel rather than read eagerly.
type Source struct {
	f    *os.File
	data []byte
}

// Open memory-maps path for reading. The file size must be a multiple of
// scene.PointByteSize.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pointfile: open %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pointfile: stat %s: %w", path, err)
	}
	size := fi.Size()
	if size%scene.PointByteSize != 0 {
		f.Close()
		return nil, fmt.Errorf("pointfile: %s size %d is not a multiple of %d", path, size, scene.PointByteSize)
	}
	if size == 0 {
		return &Source{f: f}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pointfile: mmap %s: %w", path, err)
	}
	return &Source{f: f, data: data}, nil
}

// Len returns the number of points in the file.
func (s *Source) Len() int {
	return len(s.data) / scene.PointByteSize
}

// At decodes the point at index i, 0 <= i < Len().
func (s *Source) At(i int) scene.Point {
	off := i * scene.PointByteSize
	return decode(s.data[off : off+scene.PointByteSize])
}

// Close unmaps the file and closes the descriptor.
func (s *Source) Close() error {
	var err error
	if s.data != nil {
		err = unix.Munmap(s.data)
	}
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}
