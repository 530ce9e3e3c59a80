package types

// floatCmpEpsilon is the tolerance used when comparing lengths against zero.
const floatCmpEpsilon = 1e-6

// Mat3 is a row-major 3x3 matrix, typically used to hold a camera orientation.
type Mat3 [9]float32

// Mul3x1 rotates/transforms a 3 component vector by this matrix.
func (m Mat3) Mul3x1(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Transpose returns the transpose of this matrix. For an orthonormal rotation
// matrix this is equivalent to its inverse.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// LookAt builds a row-major rotation matrix whose rows are the camera's
// right/up/forward basis vectors expressed in world space, i.e. the matrix
// that rotates a world-space direction into camera space.
func LookAt(eye, center, up Vec3) Mat3 {
	forward := center.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)
	return Mat3{
		right[0], right[1], right[2],
		trueUp[0], trueUp[1], trueUp[2],
		forward[0], forward[1], forward[2],
	}
}
