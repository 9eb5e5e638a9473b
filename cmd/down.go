package cmd

import (
	"github.com/spf13/cobra"

	"github.com/schemadock/schemadock/pkg/schemadock"
)

func newDownCmd(cf clientsFunc) *cobra.Command {
	var network string
	var force bool

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Stop and remove the cluster",
		Long:  `Stop and remove the cluster containers and the network they are attached to`,
		Example: `
  # Remove the cluster on the default network
  schemadock down

  # Remove a cluster without a graceful stop
  schemadock down --network kafka --force
	`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf()
			if err != nil {
				return err
			}

			e := schemadock.New(c)

			return e.Destroy(cmd.Context(), network, force)
		},
		SilenceUsage: true,
	}

	downCmd.Flags().StringVarP(&network, "network", "", schemadock.DefaultNetwork, "Name of the Docker network the cluster is running on")
	downCmd.Flags().BoolVarP(&force, "force", "", false, "Remove the node containers without a graceful stop")

	return downCmd
}
