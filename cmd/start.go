package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schemadock/schemadock/pkg/clients/getter"
	"github.com/schemadock/schemadock/pkg/schemadock"
	"github.com/schemadock/schemadock/pkg/topology"
	"github.com/schemadock/schemadock/pkg/utils"
)

func newStartCmd(cf clientsFunc) *cobra.Command {
	var o overrideFlags
	var network string
	var alwaysPull bool

	startCmd := &cobra.Command{
		Use:   "start [topology]",
		Short: "Start a cluster from a topology",
		Long:  `Start a cluster from a topology, the built in Confluent Schema Registry topology is used when no topology is given`,
		Example: `
  # Start a single node Schema Registry cluster
  schemadock start

  # Start a three node cluster running version 5.2.1 of the platform
  schemadock start --nodes registry-1,registry-2,registry-3 --confluent-version 5.2.1

  # Start a cluster from a topology on disk
  schemadock start ./topologies/schema-registry

  # Start a cluster from a topology in GitHub
  schemadock start github.com/schemadock/topologies//schema-registry
	`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         newStartCmdFunc(cf, &o, &network, &alwaysPull),
		SilenceUsage: true,
	}

	addOverrideFlags(startCmd, &o)
	startCmd.Flags().StringVarP(&network, "network", "", schemadock.DefaultNetwork, "Name of the Docker network the cluster is created on")
	startCmd.Flags().BoolVarP(&alwaysPull, "always-pull", "", false, "Pull node images and remote topologies even when they are cached locally")

	return startCmd
}

func newStartCmdFunc(cf clientsFunc, o *overrideFlags, network *string, alwaysPull *bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		// create the schemadock folders in the users home directory
		utils.CreateFolders()

		c, err := cf()
		if err != nil {
			return err
		}

		if *alwaysPull {
			c.Getter.SetForce(true)
		}

		dst := ""
		if len(args) == 1 {
			dst = args[0]
		}

		t, err := loadTopology(dst, c.Getter)
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

		e := schemadock.New(c)

		res, err := e.Start(cmd.Context(), r, schemadock.StartOptions{
			Network:    *network,
			AlwaysPull: *alwaysPull,
		})
		if err != nil {
			return err
		}

		cmd.Println("")
		cmd.Printf("Started cluster %s with %d nodes\n", res.Name, len(res.Nodes))

		// the first node of a group publishes its ports to the host,
		// print those endpoints
		published := map[string]bool{}
		for _, n := range res.Nodes {
			if published[n.Group] || len(n.Ports) == 0 {
				continue
			}
			published[n.Group] = true

			for _, p := range n.Ports {
				cmd.Printf("  %s: http://%s:%s\n", n.Hostname, utils.GetDockerIP(), p)
			}
		}

		return nil
	}
}

// overrideFlags are the flags which change how a topology resolves,
// shared by the start and topology commands
type overrideFlags struct {
	version   string
	nodes     []string
	registry  string
	namespace string
	params    []string
	members   []string
}

func addOverrideFlags(cmd *cobra.Command, o *overrideFlags) {
	cmd.Flags().StringVarP(&o.version, "confluent-version", "", "4.0.0", "Version of the Confluent platform to run, sets the confluent-version parameter")
	cmd.Flags().StringSliceVarP(&o.nodes, "nodes", "", []string{"registry-1"}, "Hostnames of the nodes in the primary node group")
	cmd.Flags().StringVarP(&o.registry, "registry", "", "", "Docker registry host to pull node images from")
	cmd.Flags().StringVarP(&o.namespace, "namespace", "", "", "Image namespace overriding the topology default")
	cmd.Flags().StringArrayVarP(&o.params, "param", "", nil, "Set a topology parameter, e.g --param confluent-version=5.2.1. Can be specified multiple times")
	cmd.Flags().StringArrayVarP(&o.members, "members", "", nil, "Set the nodes in a group, e.g --members registry=registry-1,registry-2. Can be specified multiple times")
}

// overrides merges the override flags into the values passed to topology
// resolution, shorthand flags which were not set on the command line
// leave the topology defaults untouched
func (o *overrideFlags) overrides(cmd *cobra.Command, t *topology.Topology) (topology.Overrides, error) {
	out := topology.Overrides{
		Params: map[string]string{},
		Groups: map[string][]string{},
	}

	for _, v := range o.params {
		parts := strings.SplitN(v, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return out, fmt.Errorf("malformed parameter %q, parameters are set as name=value", v)
		}

		out.Params[parts[0]] = parts[1]
	}

	for _, v := range o.members {
		parts := strings.SplitN(v, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return out, fmt.Errorf("malformed group members %q, members are set as group=host-1,host-2", v)
		}

		out.Groups[parts[0]] = strings.Split(parts[1], ",")
	}

	if cmd.Flags().Changed("confluent-version") {
		out.Params[topology.DefaultVersionParameter] = o.version
	}

	if cmd.Flags().Changed("registry") {
		out.Params[topology.ParamRegistry] = o.registry
	}

	if cmd.Flags().Changed("namespace") {
		out.Params[topology.ParamNamespace] = o.namespace
	}

	if cmd.Flags().Changed("nodes") {
		out.Groups[t.PrimaryGroup().Name] = o.nodes
	}

	return out, nil
}

// loadTopology returns the topology the cluster is started from, remote
// topologies are fetched to the local topology cache first
func loadTopology(dst string, g getter.Getter) (*topology.Topology, error) {
	if dst == "" {
		return topology.SchemaRegistry(), nil
	}

	if !utils.IsLocalFolder(dst) {
		local := utils.TopologyLocalFolder(dst)

		if err := g.Get(dst, local); err != nil {
			return nil, fmt.Errorf("unable to retrieve the topology from %s: %w", dst, err)
		}

		dst = local
	}

	return topology.Load(dst)
}
