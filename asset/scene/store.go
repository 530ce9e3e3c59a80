// Package scene provides a memory-mapped, read-only scene.SceneStore backed
// by a flat file of fixed-size octree node records, as described by the
// scene file external interface: node 0 is the root; each record is
// child_presence (1 byte), children (8 x 4-byte ids), avgcolor (4 bytes).
package scene

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	voxscene "github.com/achilleasa/voxtrace/scene"
)

// recordSize is the on-disk size of one octree node record.
const recordSize = 1 + 8*4 + 4

// Store is a memory-mapped scene.SceneStore. The backing file is paged in on
// demand by the kernel; Store never copies the whole scene into the heap.
type Store struct {
	f    *os.File
	data []byte

	// decoded caches nodes already decoded from data, keyed by id, so
	// that repeated Node(id) calls within a frame (the traversal visits
	// many nodes more than once across the recursion) don't re-parse the
	// same bytes. It is populated lazily and never invalidated: the
	// underlying file is immutable for the lifetime of a Store.
	decoded map[uint32]*voxscene.Node
}

// Open memory-maps path and returns a Store over it.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("scene: stat %s: %w", path, err)
	}
	size := fi.Size()
	if size == 0 || size%recordSize != 0 {
		f.Close()
		return nil, fmt.Errorf("scene: %s size %d is not a positive multiple of the %d-byte node record", path, size, recordSize)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("scene: mmap %s: %w", path, err)
	}
	return &Store{
		f:       f,
		data:    data,
		decoded: make(map[uint32]*voxscene.Node, size/recordSize),
	}, nil
}

// Len implements scene.SceneStore.
func (s *Store) Len() int {
	return len(s.data) / recordSize
}

// Node implements scene.SceneStore. The returned pointer is owned by the
// Store and must not be mutated.
func (s *Store) Node(id uint32) *voxscene.Node {
	if n, ok := s.decoded[id]; ok {
		return n
	}
	off := int(id) * recordSize
	rec := s.data[off : off+recordSize]

	var n voxscene.Node
	n.Presence = rec[0]
	for j := 0; j < 8; j++ {
		base := 1 + j*4
		n.Children[j] = le32(rec[base : base+4])
	}
	n.AvgColor = le32(rec[33:37])

	s.decoded[id] = &n
	return &n
}

// Close unmaps the backing file.
func (s *Store) Close() error {
	if err := unix.Munmap(s.data); err != nil {
		s.f.Close()
		return fmt.Errorf("scene: munmap: %w", err)
	}
	return s.f.Close()
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
