package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	mmapscene "github.com/achilleasa/voxtrace/asset/scene"
	"github.com/achilleasa/voxtrace/renderer"
	"github.com/achilleasa/voxtrace/scene"
	"github.com/achilleasa/voxtrace/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderFrame loads a compiled octree scene and renders a single frame to a
// PNG file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	store, err := mmapscene.Open(ctx.Args().First())
	if err != nil {
		return err
	}

	opts := renderer.Options{
		FrameW:      uint32(ctx.Int("width")),
		FrameH:      uint32(ctx.Int("height")),
		SceneDepth:  uint32(ctx.Int("scene-depth")),
		Diagnostics: ctx.Bool("diagnostics"),
	}

	r := renderer.New(opts)
	r.SetScene(store)
	defer r.Close()

	eye := types.Vec3{float32(ctx.Float64("eye-x")), float32(ctx.Float64("eye-y")), float32(ctx.Float64("eye-z"))}
	center := types.Vec3{float32(ctx.Float64("at-x")), float32(ctx.Float64("at-y")), float32(ctx.Float64("at-z"))}
	up := types.Vec3{0, 1, 0}
	cam := scene.NewCamera(eye, center, up)

	view := scene.View{
		Left:   ctx.Float64("left"),
		Right:  ctx.Float64("right"),
		Top:    ctx.Float64("top"),
		Bottom: ctx.Float64("bottom"),
	}
	r.SetCamera(cam, view)

	// The occlusion quadtree driving the render is square, sized to the
	// smallest power of two covering both requested dimensions; the
	// surface must be at least that big, not the raw requested width and
	// height (see renderer.Renderer.FrameSize).
	size := r.FrameSize()
	surf := renderer.Surface{
		Width:  size,
		Height: size,
		Pixels: make([]uint32, size*size),
	}

	logger.Notice("rendering frame")
	start := time.Now()
	if err := r.Render(surf); err != nil {
		return err
	}
	logger.Noticef("rendered frame in %s", time.Since(start))

	if ctx.Bool("diagnostics") {
		displayFrameStats(r.Stats())
	}

	return writePNG(ctx.String("out"), surf)
}

func writePNG(path string, surf renderer.Surface) error {
	return writePNGFromPixels(path, surf.Width, surf.Height, surf.Pixels)
}

// writePNGFromPixels encodes a row-major 32-bit color buffer (top byte
// alpha, per the LeafThreshold color convention) as a PNG file.
func writePNGFromPixels(path string, width, height int, pixels []uint32) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: byte(c >> 16),
				G: byte(c >> 8),
				B: byte(c),
				A: byte(c >> 24),
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", path)
	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"count", "count_oct", "count_quad", "prepare", "query", "total"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Count),
		fmt.Sprintf("%d", stats.CountOct),
		fmt.Sprintf("%d", stats.CountQuad),
		stats.PrepareTime.String(),
		stats.QueryTime.String(),
		stats.RenderTime.String(),
	})
	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
