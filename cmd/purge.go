package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/docker/docker/api/types/image"
	"github.com/spf13/cobra"

	"github.com/schemadock/schemadock/pkg/clients/images"
	"github.com/schemadock/schemadock/pkg/utils"
)

func newPurgeCmd(cf clientsFunc) *cobra.Command {
	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Purge the Docker images and topologies cached by schemadock",
		Long:  "Purge the Docker images and topologies cached by schemadock",
		Example: `
  schemadock purge
	`,
		Args:         cobra.NoArgs,
		RunE:         newPurgeCmdFunc(cf),
		SilenceUsage: true,
	}

	return purgeCmd
}

func newPurgeCmdFunc(cf clientsFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := cf()
		if err != nil {
			return err
		}

		bHasError := false

		imgs, _ := c.ImageLog.Read(images.ImageTypeDocker)

		for _, i := range imgs {
			c.Logger.Info("Removing image", "image", i)

			_, err := c.Docker.ImageRemove(context.Background(), i, image.RemoveOptions{Force: true, PruneChildren: true})
			if err != nil {
				c.Logger.Error("Unable to delete the image", "image", i, "error", err)
				bHasError = true
			}
		}

		c.ImageLog.Clear()

		tcp := utils.TopologiesFolder()
		c.Logger.Info("Removing cached topologies", "path", tcp)

		err = os.RemoveAll(tcp)
		if err != nil {
			c.Logger.Error("Unable to remove the cached topologies", "error", err)
			bHasError = true
		}

		if bHasError {
			return fmt.Errorf("an error occurred when purging data")
		}

		return nil
	}
}
