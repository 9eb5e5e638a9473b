package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/docker/docker/api/types/container"
	"github.com/spf13/cobra"

	"github.com/schemadock/schemadock/pkg/clients/streams"
	"github.com/schemadock/schemadock/pkg/cluster"
	"github.com/schemadock/schemadock/pkg/schemadock"
	"github.com/schemadock/schemadock/pkg/utils"
)

func newLogsCmd(cf clientsFunc) *cobra.Command {
	var network string
	var tail string

	logsCmd := &cobra.Command{
		Use:   "logs [node...]",
		Short: "Tail the logs of the cluster nodes",
		Long:  `Tail the logs of the cluster nodes, every line is prefixed with the name of the node it was read from`,
		Example: `
  # Tail the logs of every node in the cluster
  schemadock logs

  # Tail the logs of a single node
  schemadock logs registry-1
	`,
		SilenceUsage: true,
		RunE:         newLogsCmdFunc(cf, &network, &tail),
	}

	logsCmd.Flags().StringVarP(&network, "network", "", schemadock.DefaultNetwork, "Name of the Docker network the cluster is running on")
	logsCmd.Flags().StringVarP(&tail, "tail", "", "40", "Number of lines to show from the end of each node log")

	return logsCmd
}

func newLogsCmdFunc(cf clientsFunc, network, tail *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := cf()
		if err != nil {
			return err
		}

		// map node hostnames to the ids of their containers
		nodes := map[string]string{}

		if len(args) == 0 {
			containers, err := c.ContainerTasks.FindContainersByLabels(cluster.SelectorLabels(*network))
			if err != nil {
				return fmt.Errorf("unable to find the cluster containers: %w", err)
			}

			for _, cc := range containers {
				nodes[cc.Labels[cluster.LabelHostname]] = cc.ID
			}
		} else {
			for _, node := range args {
				ids, err := c.ContainerTasks.FindContainerIDs(utils.FQDN(node, *network))
				if err != nil || len(ids) == 0 {
					return fmt.Errorf("unable to find the node %s on the network %s", node, *network)
				}

				nodes[node] = ids[0]
			}
		}

		if len(nodes) == 0 {
			return fmt.Errorf("no cluster nodes found on the network %s", *network)
		}

		ls := streams.NewLogStream()

		attached := 0
		for node, id := range nodes {
			rc, err := c.Docker.ContainerLogs(cmd.Context(), id, container.LogsOptions{
				ShowStdout: true,
				ShowStderr: true,
				Follow:     true,
				Tail:       *tail,
			})
			if err != nil {
				c.Logger.Error("Unable to get the logs for the node", "node", node, "error", err)
				continue
			}

			ls.AddStream(node, rc)
			attached++
		}

		if attached == 0 {
			return fmt.Errorf("unable to read the logs of the cluster nodes")
		}

		s := ls.Start()
		defer s.Cancel()

		// stream until interrupted
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt)

		for {
			select {
			case line := <-s.OutputStream:
				cmd.Println(string(line))
			case err := <-s.Err:
				c.Logger.Error("Unable to read from the log stream", "error", err)
			case <-sigs:
				return nil
			case <-cmd.Context().Done():
				return nil
			}
		}
	}
}
