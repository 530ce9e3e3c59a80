// Package occlusion implements the screen-space occlusion quadtree used by
// the traversal core to track, per frame, which parts of the image are still
// unresolved. It has no notion of the scene being rendered; it only knows
// which subquadrants of the image are open (unpainted) and which pixel
// colors have been written.
package occlusion

import "fmt"

// Quadtree is a complete 4-ary tree over a SIZE x SIZE screen tile, rooted
// at index 0. Indices [0, M) address internal nodes; indices
// [M, M+SIZE*SIZE) address pixel leaves in depth-first (Morton) order, while
// the color buffer behind them is row-major (see Draw). For an internal
// index q, its four children live at 4q+1 .. 4q+4 — the traversal still
// names subquadrants by their natural bit position (4..7) when testing the
// open-mask, but offsets by -3 when computing the child's node index, which
// is what keeps internal and leaf indices contiguous with a real (rather
// than virtual, off-array) root.
type Quadtree struct {
	level int
	size  int
	m     int

	// children[q] holds the open-mask of internal node q: bit i (i in 4..7) is
	// set iff subquadrant i of node q is still open (not fully rendered). Bits
	// 0-3 are always zero; the traversal addresses subquadrants by their
	// natural index (4..7), so the mask is kept in the same bit positions
	// rather than being shifted down to 0..3.
	children []uint8

	// colors holds one 32-bit color per pixel leaf, row-major.
	colors []uint32
}

// New creates a quadtree of the given depth. SIZE = 2^level.
func New(level int) *Quadtree {
	if level < 0 {
		panic("occlusion: level must be >= 0")
	}
	size := 1 << uint(level)
	m := internalNodeCount(level)
	return &Quadtree{
		level:    level,
		size:     size,
		m:        m,
		children: make([]uint8, m),
		colors:   make([]uint32, size*size),
	}
}

// internalNodeCount computes M = (4^L - 1) / 3, the number of internal nodes
// in a complete quadtree of depth L.
func internalNodeCount(level int) int {
	m := 0
	levelSize := 1
	for i := 0; i < level; i++ {
		m += levelSize
		levelSize *= 4
	}
	return m
}

// Level returns the tree depth L.
func (q *Quadtree) Level() int { return q.level }

// Size returns SIZE = 2^L, the side length of the screen tile in pixels.
func (q *Quadtree) Size() int { return q.size }

// M returns the number of internal (non-leaf) node indices.
func (q *Quadtree) M() int { return q.m }

// openMask has the four subquadrant bits (4, 5, 6, 7) set; every internal
// node starts a frame with all four subquadrants open.
const openMask uint8 = 1<<4 | 1<<5 | 1<<6 | 1<<7

// Build resets every internal node's open-mask to "all four subquadrants
// open" and clears the pixel buffer to the background color (0). A pixel
// leaf that the traversal never visits (e.g. because the frustum misses the
// scene entirely) keeps this background value; the core never reads an
// "undefined" pixel.
func (q *Quadtree) Build() {
	for i := range q.children {
		q.children[i] = openMask
	}
	for i := range q.colors {
		q.colors[i] = 0
	}
}

// Children returns the open-mask of internal node q.
func (q *Quadtree) Children(node int) uint8 {
	return q.children[node]
}

// SetChildren overwrites the open-mask of internal node q. The traversal
// calls this once per visited internal node, after clearing the bits of the
// subquadrants it has fully resolved.
func (q *Quadtree) SetChildren(node int, mask uint8) {
	q.children[node] = mask
}

// Draw paints color into the pixel leaf identified by leaf (leaf must be in
// [M, M+SIZE*SIZE)). It does not touch any ancestor's mask; the caller is
// responsible for clearing the corresponding bit in the immediate parent,
// mirroring the write-only fan-in performed by the traversal itself.
//
// leaf is a quadtree node index, not a row-major pixel offset: the
// recursive 4*parent+offset numbering visits subquadrants in depth-first
// (Morton) order, not raster order, so Draw decodes leaf's path back into
// (x, y) before writing into the row-major color buffer.
func (q *Quadtree) Draw(leaf int, color uint32) {
	x, y := q.decode(leaf)
	q.colors[y*q.size+x] = color
}

// decode walks leaf's ancestry back to the root, reconstructing the pixel
// coordinate one subquadrant bit at a time. At each step leaf's position
// among its three siblings (0=top-left, 1=top-right, 2=bottom-left,
// 3=bottom-right) contributes one bit of x and/or y, least significant
// first, since the step closest to the leaf itself is the finest split.
func (q *Quadtree) decode(leaf int) (x, y int) {
	idx := leaf
	for l := 0; l < q.level; l++ {
		if idx <= 0 {
			panic(fmt.Sprintf("occlusion: leaf index %d does not resolve to a depth-%d pixel", leaf, q.level))
		}
		offset := (idx - 1) % 4
		idx = (idx - 1) / 4
		switch offset {
		case 1:
			x |= 1 << uint(l)
		case 2:
			y |= 1 << uint(l)
		case 3:
			x |= 1 << uint(l)
			y |= 1 << uint(l)
		}
	}
	if idx != 0 || x >= q.size || y >= q.size {
		panic(fmt.Sprintf("occlusion: leaf index %d out of range", leaf))
	}
	return x, y
}

// IsComplete reports whether the whole frame has been rendered, i.e. whether
// the root's open-mask is zero.
func (q *Quadtree) IsComplete() bool {
	return q.children[0] == 0
}

// Colors returns the row-major pixel buffer. The slice aliases the
// quadtree's internal storage and is only valid until the next Build call.
func (q *Quadtree) Colors() []uint32 {
	return q.colors
}

// At returns the color of pixel (x, y), 0 <= x,y < Size().
func (q *Quadtree) At(x, y int) uint32 {
	return q.colors[y*q.size+x]
}
