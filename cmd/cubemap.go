package cmd

import (
	"errors"
	"math"
	"time"

	mmapscene "github.com/achilleasa/voxtrace/asset/scene"
	"github.com/achilleasa/voxtrace/cubemap"
	"github.com/achilleasa/voxtrace/types"
	"github.com/urfave/cli"
)

// RenderCubeMap renders all six faces of a cube map from a single eye
// position and reprojects them into a perspective PNG, exercising the
// omnidirectional path that the single-face render command cannot.
func RenderCubeMap(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	store, err := mmapscene.Open(ctx.Args().First())
	if err != nil {
		return err
	}
	defer store.Close()

	level := ctx.Int("face-level")
	sceneDepth := ctx.Int("scene-depth")
	cm := cubemap.New(level, sceneDepth)

	eye := types.Vec3{float32(ctx.Float64("eye-x")), float32(ctx.Float64("eye-y")), float32(ctx.Float64("eye-z"))}

	logger.Notice("rendering cube map faces")
	start := time.Now()
	cm.Render(store, eye)
	logger.Noticef("rendered cube map in %s", time.Since(start))

	center := types.Vec3{float32(ctx.Float64("at-x")), float32(ctx.Float64("at-y")), float32(ctx.Float64("at-z"))}
	up := types.Vec3{0, 1, 0}
	orientation := types.LookAt(eye, center, up)

	width := ctx.Int("width")
	height := ctx.Int("height")
	fovDegrees := ctx.Float64("fov")
	radiansPerPixel := (fovDegrees * math.Pi / 180) / float64(height)

	pixels := make([]uint32, width*height)
	cm.Project(width, height, pixels, orientation, radiansPerPixel)

	return writePNGFromPixels(ctx.String("out"), width, height, pixels)
}
