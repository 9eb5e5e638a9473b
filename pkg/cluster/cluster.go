// Package cluster models a running schemadock cluster, the materialized
// form of a resolved topology. A Cluster holds one Node per assignment in
// topology order and the nodes expose the operations the startup phases
// need, executing commands and reading or writing files inside the node
// container.
package cluster

import (
	"bytes"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"github.com/schemadock/schemadock/pkg/clients/container"
	"github.com/schemadock/schemadock/pkg/topology"
	"github.com/schemadock/schemadock/pkg/utils"
)

// Container labels applied to every node, running containers and their
// labels are the only state schemadock keeps
const (
	LabelCluster  = "schemadock.cluster"
	LabelTopology = "schemadock.topology"
	LabelNetwork  = "schemadock.network"
	LabelGroup    = "schemadock.group"
	LabelHostname = "schemadock.hostname"
)

// defaultExecTimeout bounds the execution of a single node command, seconds
const defaultExecTimeout = 300

// Node is a single cluster member backed by a container
type Node struct {
	// Hostname of the node inside the cluster network
	Hostname string

	// Group the node belongs to
	Group string

	// Image the node container runs
	Image string

	// Ports exposed by the node, container ports
	Ports []string

	// ContainerName is the fully qualified container name for the node
	ContainerName string

	// ContainerID is set once the node container has been created
	ContainerID string

	tasks container.ContainerTasks
}

// Execute runs a command on the node and blocks until it completes, any
// output is written to writer when given, returns the commands exit code
func (n *Node) Execute(command []string, writer io.Writer) (int, error) {
	return n.tasks.ExecuteCommand(n.ContainerID, command, nil, "", "", "", defaultExecTimeout, writer)
}

// ExecuteDetached starts a command on the node and returns immediately,
// used to launch the long running service processes
func (n *Node) ExecuteDetached(command []string) error {
	return n.tasks.ExecuteDetached(n.ContainerID, command, nil)
}

// WriteFile writes contents to the file at the given path on the node
func (n *Node) WriteFile(p, contents string) error {
	err := n.tasks.CreateFileInContainer(n.ContainerID, contents, path.Base(p), path.Dir(p))
	if err != nil {
		return fmt.Errorf("unable to write file %s to node %s: %w", p, n.Hostname, err)
	}

	return nil
}

// ReadFile returns the contents of the file at the given path on the node
func (n *Node) ReadFile(p string) (string, error) {
	output := bytes.NewBufferString("")

	_, err := n.Execute([]string{"cat", p}, output)
	if err != nil {
		return "", fmt.Errorf("unable to read file %s from node %s: %w", p, n.Hostname, err)
	}

	return output.String(), nil
}

// Cluster is the set of nodes materialized from a resolved topology
type Cluster struct {
	// ID uniquely identifies this cluster instance
	ID string

	// Name of the topology the cluster was created from
	Name string

	// Network the node containers are attached to
	Network string

	// Nodes in topology declaration order
	Nodes []*Node
}

// FromResolved builds the cluster model for a resolved topology, one node
// per assignment in declaration order. No containers are created, the
// engine materializes the nodes.
func FromResolved(r *topology.Resolved, network string, t container.ContainerTasks) *Cluster {
	c := &Cluster{
		ID:      uuid.New().String(),
		Name:    r.Name,
		Network: network,
	}

	for _, a := range r.Nodes {
		c.Nodes = append(c.Nodes, &Node{
			Hostname:      a.Hostname,
			Group:         a.Group,
			Image:         a.Image,
			Ports:         a.Ports,
			ContainerName: utils.FQDN(a.Hostname, network),
			tasks:         t,
		})
	}

	return c
}

// Node returns the node with the given hostname
func (c *Cluster) Node(hostname string) *Node {
	for _, n := range c.Nodes {
		if n.Hostname == hostname {
			return n
		}
	}

	return nil
}

// Group returns the nodes belonging to the named group in order
func (c *Cluster) Group(name string) []*Node {
	nodes := []*Node{}
	for _, n := range c.Nodes {
		if n.Group == name {
			nodes = append(nodes, n)
		}
	}

	return nodes
}

// Labels returns the container labels for a node, used to find the
// cluster containers after the cluster has been created
func (c *Cluster) Labels(n *Node) map[string]string {
	return map[string]string{
		LabelCluster:  c.ID,
		LabelTopology: c.Name,
		LabelNetwork:  c.Network,
		LabelGroup:    n.Group,
		LabelHostname: n.Hostname,
	}
}

// SelectorLabels returns the labels identifying every schemadock
// container on the given network
func SelectorLabels(network string) map[string]string {
	return map[string]string{
		LabelNetwork: network,
	}
}
