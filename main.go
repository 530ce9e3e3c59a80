package main

import (
	"os"

	"github.com/achilleasa/voxtrace/cmd"
	"github.com/achilleasa/voxtrace/trace"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "voxtrace"
	app.Usage = "render sparse voxel octree scenes"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "render",
			Usage:     "render a single frame of a compiled octree scene",
			ArgsUsage: "scene.oct",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "width", Value: 512, Usage: "frame width (rounded up to the nearest power of two covering width and height)"},
				cli.IntFlag{Name: "height", Value: 512, Usage: "frame height (rounded up to the nearest power of two covering width and height)"},
				cli.IntFlag{Name: "scene-depth", Value: trace.DefaultSceneDepth, Usage: "octree root half-extent, log2"},
				cli.Float64Flag{Name: "eye-x", Value: 0},
				cli.Float64Flag{Name: "eye-y", Value: 0},
				cli.Float64Flag{Name: "eye-z", Value: -3 << trace.DefaultSceneDepth},
				cli.Float64Flag{Name: "at-x", Value: 0},
				cli.Float64Flag{Name: "at-y", Value: 0},
				cli.Float64Flag{Name: "at-z", Value: 0},
				cli.Float64Flag{Name: "left", Value: -1},
				cli.Float64Flag{Name: "right", Value: 1},
				cli.Float64Flag{Name: "top", Value: -1},
				cli.Float64Flag{Name: "bottom", Value: 1},
				cli.BoolFlag{Name: "diagnostics", Usage: "print per-frame traversal counters"},
				cli.StringFlag{Name: "out, o", Value: "frame.png", Usage: "image filename for the rendered frame"},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:      "scene-info",
			Usage:     "print summary information about a compiled octree scene",
			ArgsUsage: "scene.oct",
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:      "cubemap",
			Usage:     "render all six cube map faces from an eye position and reproject them into a perspective frame",
			ArgsUsage: "scene.oct",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "width", Value: 512, Usage: "output frame width"},
				cli.IntFlag{Name: "height", Value: 512, Usage: "output frame height"},
				cli.IntFlag{Name: "face-level", Value: 8, Usage: "quadtree depth per cube face, log2 of face side length"},
				cli.IntFlag{Name: "scene-depth", Value: trace.DefaultSceneDepth, Usage: "octree root half-extent, log2"},
				cli.Float64Flag{Name: "fov", Value: 90, Usage: "vertical field of view, degrees"},
				cli.Float64Flag{Name: "eye-x", Value: 0},
				cli.Float64Flag{Name: "eye-y", Value: 0},
				cli.Float64Flag{Name: "eye-z", Value: 0},
				cli.Float64Flag{Name: "at-x", Value: 0},
				cli.Float64Flag{Name: "at-y", Value: 0},
				cli.Float64Flag{Name: "at-z", Value: 1},
				cli.StringFlag{Name: "out, o", Value: "cubemap.png", Usage: "image filename for the reprojected frame"},
			},
			Action: cmd.RenderCubeMap,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
