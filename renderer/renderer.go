// Package renderer assembles the occlusion quadtree, the scene store and the
// coupled traversal into the single entry point a caller drives once per
// frame: construct a Renderer, point it at a scene and a camera, and call
// Render into a caller-owned Surface.
package renderer

import (
	"fmt"
	"time"

	"github.com/achilleasa/voxtrace/log"
	"github.com/achilleasa/voxtrace/occlusion"
	"github.com/achilleasa/voxtrace/scene"
	"github.com/achilleasa/voxtrace/trace"
)

var logger = log.New("renderer")

// Renderer owns the occlusion quadtree and per-frame counters and renders a
// scene, as seen from a camera, into a caller-supplied Surface.
type Renderer interface {
	// SetScene attaches the node store the traversal reads from.
	SetScene(store scene.SceneStore)

	// SetCamera attaches the eye position/orientation and view frustum
	// used by the next Render call.
	SetCamera(cam *scene.Camera, view scene.View)

	// Render paints one frame into surf.
	Render(surf Surface) error

	// Close releases any resources held by the attached scene store.
	Close() error

	// Stats reports the most recently rendered frame's counters.
	Stats() FrameStats

	// FrameSize returns the side, in pixels, of the square surface Render
	// requires. It is the smallest power of two covering both
	// Options.FrameW and Options.FrameH, since the occlusion quadtree (and
	// therefore the region Render writes into) is always square.
	FrameSize() int
}

// voxelRenderer is the sole implementation of Renderer.
type voxelRenderer struct {
	opts Options

	quad  *occlusion.Quadtree
	frame *trace.Frame

	store scene.SceneStore
	cam   *scene.Camera
	view  scene.View

	stats FrameStats
}

// New creates a Renderer sized for opts.FrameW x opts.FrameH. SetScene and
// SetCamera must be called before the first Render.
func New(opts Options) Renderer {
	if opts.SceneDepth == 0 {
		opts.SceneDepth = trace.DefaultSceneDepth
	}
	level := quadtreeLevel(opts.FrameW, opts.FrameH)
	quad := occlusion.New(level)
	r := &voxelRenderer{
		opts:  opts,
		quad:  quad,
		frame: trace.NewFrame(quad, nil, int(opts.SceneDepth)),
	}
	return r
}

// quadtreeLevel returns the smallest L such that 2^L >= max(w, h).
func quadtreeLevel(w, h uint32) int {
	side := w
	if h > side {
		side = h
	}
	level := 0
	for uint32(1)<<uint(level) < side {
		level++
	}
	return level
}

// SetScene attaches the node store the traversal reads from.
func (r *voxelRenderer) SetScene(store scene.SceneStore) {
	r.store = store
	r.frame.Store = store
}

// SetCamera attaches the eye position/orientation and view frustum used by
// the next Render call.
func (r *voxelRenderer) SetCamera(cam *scene.Camera, view scene.View) {
	r.cam = cam
	r.view = view
}

func (r *voxelRenderer) Render(surf Surface) error {
	if r.store == nil {
		return ErrSceneNotDefined
	}
	if r.cam == nil {
		return ErrCameraNotDefined
	}
	size := r.quad.Size()
	if surf.Width < size || surf.Height < size {
		return ErrSurfaceTooSmall
	}

	start := time.Now()
	r.quad.Build()
	prepared := time.Now()

	r.frame.Render(r.cam, r.view, size, size)
	done := time.Now()

	blit(r.quad, surf)

	r.stats = FrameStats{
		Count:       r.frame.Stats.Count,
		CountOct:    r.frame.Stats.CountOct,
		CountQuad:   r.frame.Stats.CountQuad,
		PrepareTime: prepared.Sub(start),
		QueryTime:   done.Sub(prepared),
		RenderTime:  done.Sub(start),
	}
	if r.opts.Diagnostics {
		logger.Infof("count=%d count_oct=%d count_quad=%d prepare=%s query=%s",
			r.stats.Count, r.stats.CountOct, r.stats.CountQuad, r.stats.PrepareTime, r.stats.QueryTime)
	}
	return nil
}

// blit copies the quadtree's SIZE x SIZE color buffer into the top-left
// corner of surf, leaving any extra margin untouched.
func blit(quad *occlusion.Quadtree, surf Surface) {
	size := quad.Size()
	colors := quad.Colors()
	for y := 0; y < size; y++ {
		srcRow := colors[y*size : y*size+size]
		dstRow := surf.Pixels[y*surf.Width : y*surf.Width+size]
		copy(dstRow, srcRow)
	}
}

func (r *voxelRenderer) Close() error {
	if closer, ok := r.store.(interface{ Close() error }); ok && closer != nil {
		return closer.Close()
	}
	return nil
}

func (r *voxelRenderer) Stats() FrameStats {
	return r.stats
}

func (r *voxelRenderer) FrameSize() int {
	return r.quad.Size()
}

var _ fmt.Stringer = (*voxelRenderer)(nil)

func (r *voxelRenderer) String() string {
	return fmt.Sprintf("Renderer{quad: %dx%d, sceneDepth: %d}", r.quad.Size(), r.quad.Size(), r.opts.SceneDepth)
}
