package types

// Vec4i is a 4-lane signed 32-bit integer vector. The renderer's projection
// arithmetic keeps the octree/quadtree traversal bound in this representation
// instead of floating point: the original C++ renderer packs it into a
// 128-bit SSE register (`v4si`) and uses packed add/sub/shift, a lane shuffle
// for the quadtree midpoint split and movemask for the frustum test. This
// type is the portable, scalar stand-in for that register; lane order always
// matches the spec's (-l, r, -t, b) convention.
type Vec4i [4]int32

// Add returns the lane-wise sum of the two vectors.
func (v Vec4i) Add(o Vec4i) Vec4i {
	return Vec4i{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}

// Sub returns the lane-wise difference of the two vectors.
func (v Vec4i) Sub(o Vec4i) Vec4i {
	return Vec4i{v[0] - o[0], v[1] - o[1], v[2] - o[2], v[3] - o[3]}
}

// Shl returns v with every lane shifted left by n bits (v << n).
func (v Vec4i) Shl(n uint) Vec4i {
	return Vec4i{v[0] << n, v[1] << n, v[2] << n, v[3] << n}
}

// Shr returns v with every lane shifted right by n bits (v >> n), sign-extending.
func (v Vec4i) Shr(n uint) Vec4i {
	return Vec4i{v[0] >> n, v[1] >> n, v[2] >> n, v[3] >> n}
}

// MaxZero returns v with every lane clamped to be >= 0 (lane-wise max(v, 0)).
func (v Vec4i) MaxZero() Vec4i {
	out := v
	for i := range out {
		if out[i] < 0 {
			out[i] = 0
		}
	}
	return out
}

// Neg returns the lane-wise negation of v.
func (v Vec4i) Neg() Vec4i {
	return Vec4i{-v[0], -v[1], -v[2], -v[3]}
}

// Less returns true iff v[i] < o[i] for every lane i. The frustum test uses
// AnyLess instead: a node is rejected when bound < frustum in any lane.
func (v Vec4i) Less(o Vec4i) bool {
	return v[0] < o[0] && v[1] < o[1] && v[2] < o[2] && v[3] < o[3]
}

// AnyLess returns true iff v[i] < o[i] for at least one lane i.
func (v Vec4i) AnyLess(o Vec4i) bool {
	return v[0] < o[0] || v[1] < o[1] || v[2] < o[2] || v[3] < o[3]
}

// quadShuffle mirrors the quad_permutation table of the original traversal's
// __builtin_shuffle(bound, quad_permutation[i]): for a given subquadrant bit
// (4..7) it returns, per lane, either the lane itself (so averaging leaves
// it unchanged) or the lane of the opposite edge (so averaging produces the
// shared midline value), such that (v + v.QuadShuffle(i)) >> 1 computes the
// correctly blended bound for that subquadrant split.
var quadShufflePermutation = [8][4]int{
	4: {0, 0, 3, 3},
	5: {1, 1, 3, 3},
	6: {0, 0, 2, 2},
	7: {1, 1, 2, 2},
}

// QuadShuffle permutes v's lanes according to subquadrant bit i (4..7).
func (v Vec4i) QuadShuffle(i int) Vec4i {
	p := quadShufflePermutation[i]
	return Vec4i{v[p[0]], v[p[1]], v[p[2]], v[p[3]]}
}

// Midpoint returns the bound/derivative vector that results from halving the
// distance across the axis shared with subquadrant i, i.e. (v + shuffle(v,i)) >> 1.
func (v Vec4i) Midpoint(i int) Vec4i {
	return v.Add(v.QuadShuffle(i)).Shr(1)
}
