package cmd

import (
	"fmt"

	"github.com/moby/term"
	"github.com/spf13/cobra"

	"github.com/schemadock/schemadock/pkg/schemadock"
	"github.com/schemadock/schemadock/pkg/utils"
)

func newShellCmd(cf clientsFunc) *cobra.Command {
	var network string

	shellCmd := &cobra.Command{
		Use:   "shell <node> -- <command>",
		Short: "Open an interactive shell on a cluster node",
		Long:  `Open an interactive shell on a cluster node, or run a one off command in its place`,
		Example: `
  # Open a shell on a node
  schemadock shell registry-1

  # Run a command on a node
  schemadock shell registry-1 -- cat /kafka.properties
	`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			node := args[0]

			command := args[1:]
			if len(command) == 0 {
				command = []string{"bash"}
			}

			c, err := cf()
			if err != nil {
				return err
			}

			ids, err := c.ContainerTasks.FindContainerIDs(utils.FQDN(node, network))
			if err != nil || len(ids) == 0 {
				return fmt.Errorf("unable to find the node %s on the network %s", node, network)
			}

			in, stdout, _ := term.StdStreams()
			err = c.ContainerTasks.CreateShell(ids[0], command, in, stdout, stdout)
			if err != nil {
				return fmt.Errorf("unable to execute the command on the node %s: %w", node, err)
			}

			return nil
		},
	}

	shellCmd.Flags().StringVarP(&network, "network", "", schemadock.DefaultNetwork, "Name of the Docker network the cluster is running on")

	return shellCmd
}
