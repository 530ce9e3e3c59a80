package renderer

import "errors"

var (
	ErrSceneNotDefined  = errors.New("renderer: no scene defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrSurfaceTooSmall  = errors.New("renderer: occlusion quadtree is smaller than the render surface")
)
