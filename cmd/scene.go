package cmd

import (
	"errors"

	mmapscene "github.com/achilleasa/voxtrace/asset/scene"
	"github.com/urfave/cli"
)

// ShowSceneInfo memory-maps a compiled octree file and reports its node
// count and root summary.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	store, err := mmapscene.Open(ctx.Args().First())
	if err != nil {
		return err
	}
	defer store.Close()

	root := store.Node(0)
	logger.Noticef("scene information: %d nodes, root presence=%#02x avgcolor=%#08x", store.Len(), root.Presence, root.AvgColor)

	return nil
}
