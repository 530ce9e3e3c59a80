package trace

import (
	"testing"

	"github.com/achilleasa/voxtrace/occlusion"
	"github.com/achilleasa/voxtrace/scene"
	"github.com/achilleasa/voxtrace/types"
)

// uniform builds a Vec4i with the same value in every lane. Midpoint (and
// hence the quadtree descent) leaves a uniform vector unchanged, which is
// used below to force full, unconditional coverage of a subtree without
// having to hand-derive the exact projection arithmetic a real camera would
// produce.
func uniform(v int32) types.Vec4i { return types.Vec4i{v, v, v, v} }

// Scenario 1 (spec end-to-end test #1): a scene that is a single color-leaf.
// Using a uniform, always-accepted bound means the traversal never needs to
// touch the octree: it is routed straight into quadtree descent on the very
// first call, so count_oct stays at zero while every pixel still ends up
// painted with the leaf's color.
func TestTraverseSingleColorRoot(t *testing.T) {
	quad := occlusion.New(3) // SIZE=8
	quad.Build()
	f := NewFrame(quad, nil, 4)

	const color = uint32(0xFFAABBCC)
	bound := uniform(100000) // vb+va = 200000 >= 2<<SceneDepth(4) = 32, so quadtree descent is selected immediately.
	zero := types.Vec4i{}

	done := f.traverse(0, color, bound, zero, zero, zero, zero, zero, f.SceneDepth-1)
	if !done {
		t.Fatal("expected traversal to report the frame fully rendered")
	}
	if f.Stats.CountOct != 0 {
		t.Fatalf("expected count_oct == 0, got %d", f.Stats.CountOct)
	}
	if !quad.IsComplete() {
		t.Fatal("expected root mask to end at 0")
	}
	for y := 0; y < quad.Size(); y++ {
		for x := 0; x < quad.Size(); x++ {
			if got := quad.At(x, y); got != color {
				t.Fatalf("pixel (%d,%d): expected %#08x, got %#08x", x, y, color, got)
			}
		}
	}
}

// Scenario 2 (spec end-to-end test #2): two stacked slabs along Z. The nearer
// slab (child 0) is a direct color that, once reached, fills the whole
// quadnode and reports completion, so the farther slab (child 1) is never
// visited: count_oct stops at 1.
func TestTraverseTwoStackedSlabs(t *testing.T) {
	const (
		red  = uint32(0xFFFF0000)
		blue = uint32(0xFF0000FF)
	)
	store := scene.SliceStore{
		{
			Presence: 1<<0 | 1<<1,
			Children: [8]uint32{0: red, 1: blue},
		},
	}

	quad := occlusion.New(3)
	quad.Build()
	f := NewFrame(quad, store, 4)

	bound := uniform(10) // vb+va=20 < threshold(32): the root still needs octree refinement.
	zero := types.Vec4i{}
	// pos with every lane >= 0 selects furthest=0, visiting child 0 first.
	pos := types.Vec4i{0, 0, 10, 0}

	done := f.traverse(0, 0, bound, zero, zero, zero, zero, pos, f.SceneDepth-1)
	if !done {
		t.Fatal("expected traversal to report the frame fully rendered")
	}
	if f.Stats.CountOct != 1 {
		t.Fatalf("expected count_oct == 1 (only the near slab visited), got %d", f.Stats.CountOct)
	}
	for y := 0; y < quad.Size(); y++ {
		for x := 0; x < quad.Size(); x++ {
			if got := quad.At(x, y); got != red {
				t.Fatalf("pixel (%d,%d): expected the near slab's color %#08x, got %#08x", x, y, red, got)
			}
		}
	}
}

// Scenario 3 (spec end-to-end test #3): the near slab is only present over
// half the screen, so the far slab shows through on the other half. This
// drives descendQuad directly (rather than the full coupled traverse) with a
// bound whose X lanes straddle zero, which the quad_permutation blend
// resolves into "left column accepted, right column rejected" for exactly
// the reason checked in the types package: lanes 0/1 (X) and lanes
// 2/3 (Y) never mix under the blend, so a lopsided X pair affects both rows
// identically.
func TestDescendQuadHalfOccludedFarObject(t *testing.T) {
	const (
		red  = uint32(0xFFFF0000)
		blue = uint32(0xFF0000FF)
	)
	quad := occlusion.New(1) // SIZE=2, M=1: children 1..4 are the four pixel leaves TL,TR,BL,BR.
	quad.Build()
	f := NewFrame(quad, nil, 4)
	zero := types.Vec4i{}

	// Near slab: X lanes (200, -50) accept the left column (TL, BL) and
	// reject the right column (TR, BR); Y lanes are pinned large and
	// uniform so they never contribute a rejection.
	nearBound := types.Vec4i{200, -50, 1000, 1000}
	f.descendQuad(0, red, nearBound, zero, zero, zero, zero, zero, 0)

	if got := quad.At(0, 0); got != red {
		t.Fatalf("pixel (0,0): expected near slab color, got %#08x", got)
	}
	if got := quad.At(0, 1); got != red {
		t.Fatalf("pixel (0,1): expected near slab color, got %#08x", got)
	}

	// Far slab: a uniform bound is trivially accepted everywhere; since
	// the mask already has the left column's bits cleared, only the
	// still-open right column gets painted.
	farBound := uniform(1000)
	done := f.descendQuad(0, blue, farBound, zero, zero, zero, zero, zero, 0)
	if !done {
		t.Fatal("expected the quadnode to report completion once the far slab fills the remaining column")
	}

	if got := quad.At(1, 0); got != blue {
		t.Fatalf("pixel (1,0): expected far slab color, got %#08x", got)
	}
	if got := quad.At(1, 1); got != blue {
		t.Fatalf("pixel (1,1): expected far slab color, got %#08x", got)
	}
}

// Scenario 4 (spec end-to-end test #4): a view frustum that misses the scene
// entirely. A bound that is negative in every lane is rejected in every
// subquadrant on the very first call, so the octree is never touched
// (count_oct == 0) and no pixel is painted; the quadtree's root mask is left
// exactly as Build() set it, reflecting that the single pass over the root
// quadnode never found anything to resolve.
func TestDescendQuadFrustumMiss(t *testing.T) {
	quad := occlusion.New(3)
	quad.Build()
	f := NewFrame(quad, nil, 4)
	zero := types.Vec4i{}

	bound := uniform(-10)
	done := f.descendQuad(0, 0xFF112233, bound, zero, zero, zero, zero, zero, 0)
	if done {
		t.Fatal("a fully rejected quadnode must not report completion")
	}
	if f.Stats.CountOct != 0 {
		t.Fatalf("expected count_oct == 0, got %d", f.Stats.CountOct)
	}
	if quad.Children(0) != openMaskForTest() {
		t.Fatalf("expected the root mask to remain fully open, got %#04x", quad.Children(0))
	}
	for y := 0; y < quad.Size(); y++ {
		for x := 0; x < quad.Size(); x++ {
			if got := quad.At(x, y); got != 0 {
				t.Fatalf("pixel (%d,%d): expected untouched background, got %#08x", x, y, got)
			}
		}
	}
}

func openMaskForTest() uint8 { return 1<<4 | 1<<5 | 1<<6 | 1<<7 }

// Scenario 5 (spec end-to-end test #5): LOD collapse. Once the traversal
// decides a node's projection is small enough to resolve at the current
// quadnode, it paints that node's avgcolor rather than refining the octree
// any further — regardless of what (unvisited) finer structure the node
// might contain.
func TestDescendQuadLODCollapse(t *testing.T) {
	const avg = uint32(0x11223344)
	store := scene.SliceStore{
		{AvgColor: avg}, // id 0, unused
		{AvgColor: avg}, // id 1: the "deepest ancestor" resolved at this quadnode
	}

	quad := occlusion.New(3)
	quad.Build()
	f := NewFrame(quad, store, 4)
	zero := types.Vec4i{}

	done := f.descendQuad(0, 1, uniform(1000), zero, zero, zero, zero, zero, 0)
	if !done {
		t.Fatal("expected the quadnode to report completion")
	}
	for y := 0; y < quad.Size(); y++ {
		for x := 0; x < quad.Size(); x++ {
			if got := quad.At(x, y); got != avg {
				t.Fatalf("pixel (%d,%d): expected avgcolor %#08x, got %#08x", x, y, avg, got)
			}
		}
	}
}

// Scenario 6 (spec end-to-end test #6): corner-choice stability. C must
// equal argmax_i (orientation . (DELTA[i]*S - position)).z. These two cases
// use a deliberately non-axis-aligned forward row so the argmax is unique
// (the spec explicitly only guarantees uniqueness away from an axis-aligned
// principal plane).
func TestCornerSelection(t *testing.T) {
	store := scene.SliceStore{{}} // empty root: traverse is a no-op once C is picked.
	view := scene.View{Left: -1, Right: 1, Top: -1, Bottom: 1}

	specs := []struct {
		forward [3]float32
		wantC   int
	}{
		{[3]float32{1, 2, 4}, 7},
		{[3]float32{-1, -2, -4}, 0},
	}

	for _, s := range specs {
		quad := occlusion.New(2)
		f := NewFrame(quad, store, 4)
		cam := &scene.Camera{
			Position: types.Vec3{0, 0, 0},
			Orientation: types.Mat3{
				1, 0, 0,
				0, 1, 0,
				s.forward[0], s.forward[1], s.forward[2],
			},
		}
		quad.Build()
		f.Render(cam, view, quad.Size(), quad.Size())
		if f.C != s.wantC {
			t.Fatalf("forward %v: expected C=%d, got %d", s.forward, s.wantC, f.C)
		}
	}
}

// Round-trip / idempotence: rebuilding and re-traversing with identical
// inputs must produce identical pixel buffers.
func TestBuildTraverseIdempotent(t *testing.T) {
	quad := occlusion.New(3)
	f := NewFrame(quad, nil, 4)
	zero := types.Vec4i{}
	bound := uniform(100000)
	const color = uint32(0xFFAABBCC)

	quad.Build()
	f.traverse(0, color, bound, zero, zero, zero, zero, zero, f.SceneDepth-1)
	first := append([]uint32(nil), quad.Colors()...)

	quad.Build()
	f.traverse(0, color, bound, zero, zero, zero, zero, zero, f.SceneDepth-1)
	second := quad.Colors()

	if len(first) != len(second) {
		t.Fatalf("pixel buffer length changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pixel %d changed between identical runs: %#08x vs %#08x", i, first[i], second[i])
		}
	}
}

// Mask monotonicity: once a subquadrant bit is cleared it must never be set
// again by a later call within the same frame.
func TestMaskMonotonicity(t *testing.T) {
	const (
		red  = uint32(0xFFFF0000)
		blue = uint32(0xFF0000FF)
	)
	quad := occlusion.New(1)
	quad.Build()
	f := NewFrame(quad, nil, 4)
	zero := types.Vec4i{}

	before := quad.Children(0)
	f.descendQuad(0, red, types.Vec4i{200, -50, 1000, 1000}, zero, zero, zero, zero, zero, 0)
	afterFirst := quad.Children(0)
	if afterFirst&^before != 0 {
		t.Fatalf("first call set bits outside the initial mask: before=%#04x after=%#04x", before, afterFirst)
	}

	f.descendQuad(0, blue, uniform(1000), zero, zero, zero, zero, zero, 0)
	afterSecond := quad.Children(0)
	if afterSecond&^afterFirst != 0 {
		t.Fatalf("second call re-set a bit the first call had cleared: afterFirst=%#04x afterSecond=%#04x", afterFirst, afterSecond)
	}
}
