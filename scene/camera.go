package scene

import (
	"fmt"

	"github.com/achilleasa/voxtrace/types"
)

// View describes the near-plane rectangle (z=1) of the camera frustum, in
// the same units as Camera.Position. Right must be greater than Left and
// Bottom must be greater than Top.
type View struct {
	Left, Right, Top, Bottom float64
}

func (v View) String() string {
	return fmt.Sprintf("View{left: %.4f, right: %.4f, top: %.4f, bottom: %.4f}", v.Left, v.Right, v.Top, v.Bottom)
}

// Camera holds the renderer's eye position and orientation. Unlike the
// path-tracer camera this type generalizes, it carries no pitch/yaw mouse
// state and no projection matrix: interactive camera control is an outer
// concern the core does not implement, and the view frustum is supplied
// directly via View rather than derived from an FOV/aspect pair.
type Camera struct {
	Position types.Vec3

	// Orientation rotates a world-space direction into camera space. It
	// is assumed orthonormal: the cube-map driver inverts it by
	// transposition rather than a general matrix inverse.
	Orientation types.Mat3
}

// NewCamera builds a camera looking from eye towards center, with up used
// to disambiguate roll.
func NewCamera(eye, center, up types.Vec3) *Camera {
	return &Camera{
		Position:    eye,
		Orientation: types.LookAt(eye, center, up),
	}
}

func (c *Camera) String() string {
	return fmt.Sprintf("Camera{position: (%.3f, %.3f, %.3f)}", c.Position[0], c.Position[1], c.Position[2])
}
