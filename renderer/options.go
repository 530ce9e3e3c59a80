package renderer

// Options configures a Renderer at construction time.
type Options struct {
	// Frame dims. The occlusion quadtree is sized to the smallest power
	// of two that covers both.
	FrameW uint32
	FrameH uint32

	// SceneDepth is the octree's root half-extent, log2. Use
	// trace.DefaultSceneDepth unless testing with a deliberately small
	// scene.
	SceneDepth uint32

	// Diagnostics enables a per-frame count/count_oct/count_quad and
	// phase-timer log line, written at Info level (shown only when the log
	// verbosity is Info or higher).
	Diagnostics bool
}
