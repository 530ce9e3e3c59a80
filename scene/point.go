package scene

// Point is a single sample written by an offline scene builder: a 3D
// position in integer scene units plus a packed 32-bit color. The point
// file itself carries no header; it is simply a flat array of Point
// records, read and written via asset/pointfile.
type Point struct {
	X, Y, Z int32
	Color   uint32
}

// PointByteSize is the on-disk size of a single Point record.
const PointByteSize = 16
