package scene

import "math/bits"

// LeafThreshold is the sentinel described by the spec: any node id at or
// above this value is not a storage index into a SceneStore but a literal
// packed color, standing in for the whole subtree it replaces. No valid
// node id reaches this high, since a scene is expected to stay well under
// 2^32-2^24 nodes.
const LeafThreshold uint32 = 0xFF000000

// IsColor reports whether id is a direct color rather than a SceneStore index.
func IsColor(id uint32) bool { return id >= LeafThreshold }

// Node is one octree record: an 8-bit presence mask over the logical
// octants, a packed list of child ids (only the slots for set presence bits
// are meaningful) and an average color summarizing the node's subtree.
//
// A child id is either a storage index (< LeafThreshold) into the owning
// SceneStore, or a direct color (>= LeafThreshold).
type Node struct {
	Presence uint8
	Children [8]uint32
	AvgColor uint32
}

// HasChild reports whether logical child i (0..7) is present.
func (n *Node) HasChild(i int) bool {
	return n.Presence&(1<<uint(i)) != 0
}

// Position returns the storage slot for logical child i: the number of
// presence bits set below i.
func (n *Node) Position(i int) int {
	return bits.OnesCount8(n.Presence & (1<<uint(i) - 1))
}

// Child returns the node id (or direct color) stored at storage slot j.
func (n *Node) Child(j int) uint32 {
	return n.Children[j]
}
