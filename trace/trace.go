// Package trace implements the coupled octree/quadtree traversal that forms
// the rendering core: a single recursive walk that alternates between
// refining the scene octree and refining the screen-space occlusion
// quadtree, front-to-back, until every pixel is resolved or the octree is
// exhausted.
package trace

import (
	"github.com/achilleasa/voxtrace/occlusion"
	"github.com/achilleasa/voxtrace/scene"
	"github.com/achilleasa/voxtrace/types"
)

// Axis bits used to index DELTA and to decide which of dx/dy/dz applies
// when descending to octant i relative to the far corner C.
const (
	DZ = 1
	DY = 2
	DX = 4
)

// DefaultSceneDepth is the spec's tuning default: the octree root spans
// [-2^26, 2^26) integer scene units along each axis. Tests use a much
// smaller depth to keep the octree/quadtree compact.
const DefaultSceneDepth = 26

// Stats accumulates per-frame diagnostic counters, mirroring the `count`,
// `count_oct` and `count_quad` globals of the original renderer.
type Stats struct {
	// Count is incremented once per traverse call (octree or quadtree).
	Count int
	// CountOct is incremented once per octree child that passes the
	// frustum test and is recursed into.
	CountOct int
	// CountQuad is incremented once per quadtree child that is recursed
	// into (i.e. the child index is < M); pixel-leaf paints are not counted
	// here.
	CountQuad int
}

// Frame owns the per-frame mutable state touched by a single traversal: the
// occlusion quadtree being painted, the scene being read, and the
// diagnostic counters. A Frame is constructed once and reused across many
// frames; Render resets Stats but the caller is responsible for calling
// Quad.Build() before each frame.
type Frame struct {
	Quad  *occlusion.Quadtree
	Store scene.SceneStore

	// SceneDepth is the number of remaining octree subdivision levels
	// below the root; the root's half-extent is 1<<SceneDepth integer
	// scene units.
	SceneDepth int

	// C is the octree corner farthest from the camera, chosen once per
	// frame by Render and held constant for the whole traversal (octree
	// corners are nested, so one corner choice is correct at every
	// depth).
	C int

	Stats Stats
}

// NewFrame creates a Frame that paints into quad and reads nodes from store.
func NewFrame(quad *occlusion.Quadtree, store scene.SceneStore, sceneDepth int) *Frame {
	return &Frame{Quad: quad, Store: store, SceneDepth: sceneDepth}
}

// delta returns the unit octant-corner vector for logical octant i: +1 along
// an axis when the corresponding bit of i is set, -1 otherwise.
func delta(i int) types.Vec4i {
	sign := func(bit int) int32 {
		if i&bit != 0 {
			return 1
		}
		return -1
	}
	return types.Vec4i{sign(DX), sign(DY), sign(DZ), 0}
}

// frustumFrom computes the worst-corner correction vector described in §3:
// -max(dx,0) - max(dy,0) - max(dz,0), lane-wise.
func frustumFrom(dx, dy, dz types.Vec4i) types.Vec4i {
	return dx.MaxZero().Add(dy.MaxZero()).Add(dz.MaxZero()).Neg()
}

// furthestOctant returns the 3-bit index of the octant containing the
// viewer, given pos (the current octree node's center, viewer-relative): bit
// DX/DY/DZ is set when the corresponding coordinate of pos is negative.
func furthestOctant(pos types.Vec4i) int {
	o := 0
	if pos[0] < 0 {
		o |= DX
	}
	if pos[1] < 0 {
		o |= DY
	}
	if pos[2] < 0 {
		o |= DZ
	}
	return o
}

// traverse implements the recursive coupled walk of §4.3. It returns true
// iff quadnode (and everything below it) is now fully rendered.
func (f *Frame) traverse(quadnode int, octnode uint32, bound, dx, dy, dz, frustum, pos types.Vec4i, depth int) bool {
	f.Stats.Count++

	va, vb := bound[0], bound[1]
	if depth >= 0 && vb+va < int32(2)<<uint(f.SceneDepth) {
		return f.descendOctree(quadnode, octnode, bound, dx, dy, dz, frustum, pos, depth)
	}
	return f.descendQuad(quadnode, octnode, bound, dx, dy, dz, frustum, pos, depth)
}

// descendOctree implements §4.3.3 (interior nodes) and §4.3.4 (leaf
// replication), visiting children front-to-back relative to the viewer.
func (f *Frame) descendOctree(quadnode int, octnode uint32, bound, dx, dy, dz, frustum, pos types.Vec4i, depth int) bool {
	furthest := furthestOctant(pos)
	c := f.C

	step := func(i int) (types.Vec4i, bool) {
		newBound := bound.Shl(1)
		if (c^i)&DX != 0 {
			newBound = newBound.Add(dx)
		}
		if (c^i)&DY != 0 {
			newBound = newBound.Add(dy)
		}
		if (c^i)&DZ != 0 {
			newBound = newBound.Add(dz)
		}
		return newBound, newBound.AnyLess(frustum)
	}

	if !scene.IsColor(octnode) {
		node := f.Store.Node(octnode)
		for k := 0; k < 8; k++ {
			i := furthest ^ k
			if !node.HasChild(i) {
				continue
			}
			newBound, rejected := step(i)
			if rejected {
				continue
			}
			f.Stats.CountOct++
			newPos := pos.Add(delta(i).Shl(uint(depth)))
			child := node.Child(node.Position(i))
			if f.traverse(quadnode, child, newBound, dx, dy, dz, frustum, newPos, depth-1) {
				return true
			}
		}
		return false
	}

	// octnode is a direct color: duplicate it down to subpixel
	// resolution. The 8th (nearest) virtual child is skipped because it
	// coincides with the parent's extent at corner C and would not
	// shrink the bound.
	for k := 0; k < 7; k++ {
		i := furthest ^ k
		newBound, rejected := step(i)
		if rejected {
			continue
		}
		f.Stats.CountOct++
		newPos := pos.Add(delta(i).Shl(uint(depth)))
		if f.traverse(quadnode, octnode, newBound, dx, dy, dz, frustum, newPos, depth-1) {
			return true
		}
	}
	return false
}

// descendQuad implements §4.3.5, refining the current quadnode's four
// subquadrants without advancing the octree.
func (f *Frame) descendQuad(quadnode int, octnode uint32, bound, dx, dy, dz, frustum, pos types.Vec4i, depth int) bool {
	mask := f.Quad.Children(quadnode)
	for i := 4; i < 8; i++ {
		bit := uint8(1 << uint(i))
		if mask&bit == 0 {
			continue
		}

		newBound := bound.Midpoint(i)
		newDx := dx.Midpoint(i)
		newDy := dy.Midpoint(i)
		newDz := dz.Midpoint(i)
		newFrustum := frustumFrom(newDx, newDy, newDz)
		if newBound.AnyLess(newFrustum) {
			continue
		}

		// Child node indices are packed as 4*quadnode+1 .. 4*quadnode+4
		// (i runs 4..7 for the mask-bit position, so the array offset is
		// i-3); this keeps [0, M) exactly the internal nodes and
		// [M, M+SIZE*SIZE) exactly the leaves with no gaps, unlike a
		// literal 4*quadnode+i which only holds for a virtual root
		// addressed at index -1.
		child := quadnode*4 + (i - 3)
		switch {
		case child < f.Quad.M():
			f.Stats.CountQuad++
			if f.traverse(child, octnode, newBound, newDx, newDy, newDz, newFrustum, pos, depth) {
				mask &^= bit
			}
		case !scene.IsColor(octnode):
			f.Quad.Draw(child, f.Store.Node(octnode).AvgColor)
			mask &^= bit
		default:
			f.Quad.Draw(child, octnode)
			mask &^= bit
		}
	}
	f.Quad.SetChildren(quadnode, mask)
	return mask == 0
}
