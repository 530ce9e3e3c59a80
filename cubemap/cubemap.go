// Package cubemap renders a scene to all six axis-aligned faces of a cube
// and reprojects them into an arbitrary camera-facing surface, generalizing
// the single near-plane renderer to the omnidirectional case. It is grounded
// on the original renderer's prepare_cubemap/draw_cubemap/FaceRenderer: that
// code renders each face with a specialized world-space traversal and then,
// per screen pixel, picks the face whose axis best matches the camera ray
// and samples it. This package reaches the same result by reusing the
// existing single-face Driver six times with fixed axis-aligned camera
// orientations, rather than re-deriving the original's per-face traversal
// parameterization.
package cubemap

import (
	"fmt"
	"math"

	"github.com/achilleasa/voxtrace/occlusion"
	"github.com/achilleasa/voxtrace/scene"
	"github.com/achilleasa/voxtrace/trace"
	"github.com/achilleasa/voxtrace/types"
)

// Face identifies one of the six faces of a CubeMap.
type Face int

const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

func (f Face) String() string {
	switch f {
	case PosX:
		return "+X"
	case NegX:
		return "-X"
	case PosY:
		return "+Y"
	case NegY:
		return "-Y"
	case PosZ:
		return "+Z"
	case NegZ:
		return "-Z"
	default:
		return fmt.Sprintf("Face(%d)", int(f))
	}
}

// faceBasis returns the world-space direction a face looks towards and an up
// hint used only to disambiguate roll (never colinear with direction).
func faceBasis(f Face) (direction, up types.Vec3) {
	switch f {
	case PosX:
		return types.Vec3{1, 0, 0}, types.Vec3{0, 1, 0}
	case NegX:
		return types.Vec3{-1, 0, 0}, types.Vec3{0, 1, 0}
	case PosY:
		return types.Vec3{0, 1, 0}, types.Vec3{0, 0, -1}
	case NegY:
		return types.Vec3{0, -1, 0}, types.Vec3{0, 0, 1}
	case PosZ:
		return types.Vec3{0, 0, 1}, types.Vec3{0, 1, 0}
	case NegZ:
		return types.Vec3{0, 0, -1}, types.Vec3{0, 1, 0}
	default:
		panic(fmt.Sprintf("cubemap: invalid face %d", int(f)))
	}
}

// faceOrientation returns the camera orientation that looks straight down
// face's axis, built with the same LookAt used by scene.NewCamera.
func faceOrientation(f Face) types.Mat3 {
	direction, up := faceBasis(f)
	return types.LookAt(types.Vec3{0, 0, 0}, direction, up)
}

// CubeMap owns six independent occlusion quadtrees, one per face, and a
// single reusable Frame that renders into them one at a time (a frame is a
// single traversal; rendering six faces is six sequential frames, not one
// traversal fanned out, matching the core's single-threaded-per-frame
// model).
type CubeMap struct {
	level int
	faces [6]*occlusion.Quadtree
	frame *trace.Frame
}

// New creates a CubeMap whose faces are quadtrees of the given level,
// SIZE = 2^level per face.
func New(level, sceneDepth int) *CubeMap {
	if sceneDepth <= 0 {
		sceneDepth = trace.DefaultSceneDepth
	}
	cm := &CubeMap{level: level}
	for i := range cm.faces {
		cm.faces[i] = occlusion.New(level)
	}
	cm.frame = trace.NewFrame(cm.faces[0], nil, sceneDepth)
	return cm
}

// Size returns SIZE, the side length of one cube face in pixels.
func (cm *CubeMap) Size() int { return cm.faces[0].Size() }

// Render re-renders all six faces as seen from position. Unlike the
// single-face Driver, a CubeMap render has no camera orientation of its own:
// every face independently covers its whole [-1, 1] x [-1, 1] extent along
// its fixed axis.
func (cm *CubeMap) Render(store scene.SceneStore, position types.Vec3) {
	cm.frame.Store = store
	view := scene.View{Left: -1, Right: 1, Top: -1, Bottom: 1}
	size := cm.Size()
	for f := Face(0); f < 6; f++ {
		quad := cm.faces[f]
		quad.Build()
		cm.frame.Quad = quad
		cam := &scene.Camera{Position: position, Orientation: faceOrientation(f)}
		cm.frame.Render(cam, view, size, size)
	}
}

// Sample returns the color visible along world-space direction dir,
// mirroring prepare_cubemap/draw_cubemap's dominant-axis face selection:
// whichever axis has the largest magnitude names the face, and the other two
// (normalized by that magnitude) give the face-local coordinate.
func (cm *CubeMap) Sample(dir types.Vec3) uint32 {
	ax, ay, az := abs32(dir[0]), abs32(dir[1]), abs32(dir[2])

	var f Face
	var u, v float32
	switch {
	case ax >= ay && ax >= az:
		if dir[0] > 0 {
			f, u, v = PosX, -dir[2]/ax, -dir[1]/ax
		} else {
			f, u, v = NegX, dir[2]/ax, -dir[1]/ax
		}
	case ay >= ax && ay >= az:
		if dir[1] > 0 {
			f, u, v = PosY, dir[0]/ay, dir[2]/ay
		} else {
			f, u, v = NegY, dir[0]/ay, -dir[2]/ay
		}
	default:
		if dir[2] > 0 {
			f, u, v = PosZ, dir[0]/az, dir[1]/az
		} else {
			f, u, v = NegZ, -dir[0]/az, dir[1]/az
		}
	}

	size := cm.Size()
	x := clampInt(int(float32(size)*(u/2+0.5)), 0, size-1)
	y := clampInt(int(float32(size)*(v/2+0.5)), 0, size-1)
	return cm.faces[f].At(x, y)
}

// Project fills pixels (row-major, width x height) by casting one ray per
// pixel from a camera with the given orientation and angular step (radians
// per pixel, the same step on both screen axes), sampling the cube map along
// each ray. orientation rotates
// world space into camera space, as elsewhere in this module; Project
// inverts it by transposition, exactly as prepare_cubemap/draw_cubemap do
// for the (assumed orthonormal) view matrix.
func (cm *CubeMap) Project(width, height int, pixels []uint32, orientation types.Mat3, radiansPerPixel float64) {
	inv := orientation.Transpose()
	for y := 0; y < height; y++ {
		py := float32((float64(height)/2 - float64(y)) * radiansPerPixel)
		for x := 0; x < width; x++ {
			px := float32((float64(x) - float64(width)/2) * radiansPerPixel)
			dir := inv.Mul3x1(types.Vec3{px, py, 1})
			pixels[y*width+x] = cm.Sample(dir)
		}
	}
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
