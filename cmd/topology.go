package cmd

import (
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"

	"github.com/schemadock/schemadock/pkg/clients/getter"
	"github.com/schemadock/schemadock/pkg/utils"
)

func newTopologyCmd(g getter.Getter) *cobra.Command {
	var o overrideFlags
	var jsonFlag bool

	topologyCmd := &cobra.Command{
		Use:   "topology [topology]",
		Short: "Resolve a topology and show the node assignments",
		Long:  `Resolve a topology and show the node to image assignments without creating any containers`,
		Example: `
  # Show the built in Schema Registry topology
  schemadock topology

  # Show the assignments for a three node cluster as JSON
  schemadock topology --nodes registry-1,registry-2,registry-3 --json
	`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			utils.CreateFolders()

			dst := ""
			if len(args) == 1 {
				dst = args[0]
			}

			t, err := loadTopology(dst, g)
			if err != nil {
				return err
			}

			ov, err := o.overrides(cmd, t)
			if err != nil {
				return err
			}

			r, err := t.Resolve(ov)
			if err != nil {
				return err
			}

			if jsonFlag {
				s, err := prettyjson.Marshal(r)
				if err != nil {
					return err
				}

				cmd.Println(string(s))
				return nil
			}

			cmd.Println("")
			cmd.Printf("Topology %s, version %s\n", r.Name, r.Version)
			cmd.Println("")
			cmd.Printf("%-20s %-15s %s\n", "NODE", "GROUP", "IMAGE")

			for _, n := range r.Nodes {
				cmd.Printf("%-20s %-15s %s\n", n.Hostname, n.Group, n.Image)
			}

			return nil
		},
		SilenceUsage: true,
	}

	addOverrideFlags(topologyCmd, &o)
	topologyCmd.Flags().BoolVarP(&jsonFlag, "json", "", false, "Output the resolved topology as JSON")

	return topologyCmd
}
