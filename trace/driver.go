package trace

import (
	"github.com/achilleasa/voxtrace/scene"
	"github.com/achilleasa/voxtrace/types"
)

// Render performs the per-frame driver setup of §4.4: it computes the eight
// world-space octree corners in camera space, derives the quadtree's tangent
// bounds, picks the far corner C and invokes the coupled traversal over the
// whole frame. The caller must call Frame.Quad.Build() first.
//
// width and height are the surface dimensions actually being rendered into;
// they must not exceed Frame.Quad.Size().
func (f *Frame) Render(cam *scene.Camera, view scene.View, width, height int) {
	size := f.Quad.Size()
	if size < width || size < height {
		panic("trace: occlusion quadtree is smaller than the render surface")
	}

	qb := [4]float64{
		view.Left,
		view.Left + (view.Right-view.Left)*float64(size)/float64(width),
		view.Top + (view.Bottom-view.Top)*float64(size)/float64(height),
		view.Top,
	}

	f.Stats = Stats{}

	sceneHalfExtent := float32(int64(1) << uint(f.SceneDepth))

	var bounds [8]types.Vec4i
	maxZ := float32(-(1 << 30))
	c := 0
	for i := 0; i < 8; i++ {
		d := delta(i)
		corner := types.Vec3{
			float32(d[0]) * sceneHalfExtent,
			float32(d[1]) * sceneHalfExtent,
			float32(d[2]) * sceneHalfExtent,
		}
		camSpace := cam.Orientation.Mul3x1(corner.Sub(cam.Position))
		bounds[i] = types.Vec4i{
			int32(float64(camSpace[2])*qb[0] - float64(camSpace[0])),
			int32(float64(camSpace[2])*qb[1] - float64(camSpace[0])),
			int32(float64(camSpace[2])*qb[2] - float64(camSpace[1])),
			int32(float64(camSpace[2])*qb[3] - float64(camSpace[1])),
		}
		if camSpace[2] > maxZ {
			maxZ = camSpace[2]
			c = i
		}
	}
	f.C = c

	pos := types.Vec4i{
		-int32(cam.Position[0]),
		-int32(cam.Position[1]),
		-int32(cam.Position[2]),
		0,
	}

	dx := bounds[c^DX].Sub(bounds[c])
	dy := bounds[c^DY].Sub(bounds[c])
	dz := bounds[c^DZ].Sub(bounds[c])
	frustum := frustumFrom(dx, dy, dz)

	f.traverse(0, 0, bounds[c], dx, dy, dz, frustum, pos, f.SceneDepth-1)
}
