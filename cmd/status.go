package cmd

import (
	"fmt"

	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"

	"github.com/schemadock/schemadock/pkg/schemadock"
)

/*
[ RUNNING ] registry-1 (green)
[ STOPPED ] registry-2 (red)
[ PENDING ] registry-3 (white)
*/

const (
	Black   = "\033[1;30m%s\033[0m"
	Red     = "\033[1;31m%s\033[0m"
	Green   = "\033[1;32m%s\033[0m"
	Yellow  = "\033[1;33m%s\033[0m"
	Purple  = "\033[1;34m%s\033[0m"
	Magenta = "\033[1;35m%s\033[0m"
	Teal    = "\033[1;36m%s\033[0m"
	White   = "\033[1;37m%s\033[0m"
)

func newStatusCmd(cf clientsFunc) *cobra.Command {
	var network string
	var group string
	var jsonFlag bool

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the status of the cluster nodes",
		Long:  `Show the status of the cluster nodes`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf()
			if err != nil {
				return err
			}

			e := schemadock.New(c)

			nodes, err := e.Status(network)
			if err != nil {
				return err
			}

			if jsonFlag {
				s, err := prettyjson.Marshal(nodes)
				if err != nil {
					return err
				}

				cmd.Println(string(s))
				return nil
			}

			cmd.Println("")
			cmd.Printf("%-13s %-20s %-15s %s\n", "STATUS", "NODE", "GROUP", "IMAGE")

			runningCount := 0
			stoppedCount := 0
			pendingCount := 0

			for _, n := range nodes {
				if group != "" && n.Group != group {
					continue
				}

				status := fmt.Sprintf(White, "[ PENDING ]  ")
				switch n.State {
				case "running":
					status = fmt.Sprintf(Green, "[ RUNNING ]  ")
					runningCount++
				case "exited", "dead":
					status = fmt.Sprintf(Red, "[ STOPPED ]  ")
					stoppedCount++
				default:
					pendingCount++
				}

				cmd.Printf("%-13s %-20s %-15s %s\n", status, n.Hostname, n.Group, n.Image)
			}

			cmd.Println("")
			cmd.Printf("Running: %d Stopped: %d Pending: %d\n", runningCount, stoppedCount, pendingCount)

			return nil
		},
		SilenceUsage: true,
	}

	statusCmd.Flags().StringVarP(&network, "network", "", schemadock.DefaultNetwork, "Name of the Docker network the cluster is running on")
	statusCmd.Flags().StringVarP(&group, "group", "", "", "Node group used to filter the status list")
	statusCmd.Flags().BoolVarP(&jsonFlag, "json", "", false, "Output the status as JSON")

	return statusCmd
}
