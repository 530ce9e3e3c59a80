package renderer

import "time"

// FrameStats reports the diagnostic counters and timings for the most
// recently rendered frame.
type FrameStats struct {
	// Count is the total number of traverse invocations (octree or
	// quadtree descent).
	Count int

	// CountOct is the number of octree children that passed the frustum
	// test and were recursed into.
	CountOct int

	// CountQuad is the number of quadtree internal children recursed
	// into (pixel-leaf paints are not counted here).
	CountQuad int

	// PrepareTime covers resetting the occlusion quadtree for the frame
	// (Quadtree.Build).
	PrepareTime time.Duration

	// QueryTime covers the driver (corner projection, far-corner
	// selection) and the traversal itself.
	QueryTime time.Duration

	// RenderTime is PrepareTime + QueryTime.
	RenderTime time.Duration
}
