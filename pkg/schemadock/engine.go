// Package schemadock implements the cluster engine. The engine
// materializes a resolved topology into node containers on a docker
// network and drives the staged service startup, ZooKeeper first, then
// Kafka, then the Schema Registry. Running containers and their labels
// are the only state the engine keeps, destroying a cluster discovers the
// containers by label.
package schemadock

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/schemadock/schemadock/pkg/clients"
	"github.com/schemadock/schemadock/pkg/clients/container"
	ctypes "github.com/schemadock/schemadock/pkg/clients/container/types"
	"github.com/schemadock/schemadock/pkg/clients/http"
	"github.com/schemadock/schemadock/pkg/clients/logger"
	"github.com/schemadock/schemadock/pkg/cluster"
	"github.com/schemadock/schemadock/pkg/topology"
)

// DefaultNetwork is the docker network clusters are created on unless a
// network is given
const DefaultNetwork = "schemadock"

// the startup gates poll the services every startupInterval for up to
// startupTimeout before failing the start
var startupInterval = 3 * time.Second
var startupTimeout = 60 * time.Second

// Engine creates, destroys and inspects schemadock clusters
type Engine interface {
	// Start materializes the resolved topology into a running cluster
	Start(ctx context.Context, r *topology.Resolved, opts StartOptions) (*cluster.Cluster, error)

	// Destroy removes the cluster containers on the given network and the
	// network itself, when force is true containers are removed without a
	// graceful stop
	Destroy(ctx context.Context, network string, force bool) error

	// Status returns the observed state of the node containers on the
	// given network
	Status(network string) ([]NodeStatus, error)
}

// StartOptions are the host side options for a cluster start
type StartOptions struct {
	// Network is the name of the docker network the cluster attaches to,
	// created when it does not exist
	Network string

	// AlwaysPull forces node images to be pulled from the remote registry
	// even when they exist in the local image cache
	AlwaysPull bool
}

// NodeStatus is the observed state of a single node container
type NodeStatus struct {
	Name     string        `json:"name"`
	Hostname string        `json:"hostname"`
	Group    string        `json:"group"`
	Topology string        `json:"topology"`
	State    string        `json:"state"`
	Status   string        `json:"status"`
	Image    string        `json:"image"`
	Ports    []ctypes.Port `json:"ports,omitempty"`
}

// EngineImpl is the docker backed implementation of Engine
type EngineImpl struct {
	tasks container.ContainerTasks
	http  http.HTTP
	log   logger.Logger
}

// New creates a cluster engine using the given clients
func New(c *clients.Clients) Engine {
	return &EngineImpl{
		tasks: c.ContainerTasks,
		http:  c.HTTP,
		log:   c.Logger,
	}
}

// Start creates a container for every node in the resolved topology and
// starts the clustered services in order. The returned cluster lists the
// nodes with the ids of their containers.
func (e *EngineImpl) Start(ctx context.Context, r *topology.Resolved, opts StartOptions) (*cluster.Cluster, error) {
	if opts.Network == "" {
		opts.Network = DefaultNetwork
	}

	c := cluster.FromResolved(r, opts.Network, e.tasks)

	e.log.Info("Starting cluster", "ref", c.Name, "network", c.Network, "nodes", len(c.Nodes))

	// nodes left over from a previous start must be removed first
	for _, n := range c.Nodes {
		ids, err := e.tasks.FindContainerIDs(n.ContainerName)
		if err != nil {
			return nil, fmt.Errorf("unable to lookup existing containers: %w", err)
		}

		if len(ids) > 0 {
			return nil, fmt.Errorf(`node %s already exists on the network %s, remove the running cluster with "schemadock down"`, n.Hostname, c.Network)
		}
	}

	if opts.AlwaysPull {
		e.tasks.SetForcePull(true)
	}

	if _, err := e.tasks.CreateNetwork(c.Network); err != nil {
		return nil, fmt.Errorf("unable to create the cluster network: %w", err)
	}

	pulled := map[string]bool{}
	for _, n := range c.Nodes {
		if pulled[n.Image] {
			continue
		}

		if err := e.tasks.PullImage(ctypes.Image{Name: n.Image}, false); err != nil {
			return nil, fmt.Errorf("unable to pull the image %s: %w", n.Image, err)
		}

		pulled[n.Image] = true
	}

	published := map[string]bool{}
	for _, n := range c.Nodes {
		e.log.Info("Creating node", "ref", c.Name, "node", n.Hostname, "image", n.Image)

		id, err := e.createNode(c, n, !published[n.Group])
		if err != nil {
			return nil, fmt.Errorf("unable to create the node %s: %w", n.Hostname, err)
		}

		n.ContainerID = id
		published[n.Group] = true
	}

	if err := e.startZooKeeper(ctx, c); err != nil {
		return nil, err
	}

	if err := e.startKafka(ctx, c); err != nil {
		return nil, err
	}

	if err := e.startSchemaRegistry(ctx, c); err != nil {
		return nil, err
	}

	e.log.Info("Cluster ready", "ref", c.Name, "network", c.Network)

	return c, nil
}

// createNode creates and starts the container for a node. The first node
// of a group publishes its ports to the identical host ports, the
// remaining nodes of the group are published to ephemeral host ports.
func (e *EngineImpl) createNode(c *cluster.Cluster, n *cluster.Node, publishHostPorts bool) (string, error) {
	cc := &ctypes.Container{
		Name:     n.ContainerName,
		Hostname: n.Hostname,
		Image:    &ctypes.Image{Name: n.Image},
		Networks: []ctypes.NetworkAttachment{
			{
				Name:    c.Network,
				Aliases: []string{n.Hostname},
			},
		},
		Labels: c.Labels(n),

		// nodes run an init process which supervises the services
		Privileged: true,
	}

	// give the nodes the host clock, skipped when the host has no
	// localtime file
	if _, err := os.Stat("/etc/localtime"); err == nil {
		cc.Volumes = append(cc.Volumes, ctypes.Volume{
			Source:      "/etc/localtime",
			Destination: "/etc/localtime",
			Type:        "bind",
			ReadOnly:    true,
		})
	}

	for _, p := range n.Ports {
		port := ctypes.Port{
			Local:    p,
			Protocol: "tcp",
		}

		if publishHostPorts {
			port.Host = p
		}

		cc.Ports = append(cc.Ports, port)
	}

	return e.tasks.CreateContainer(cc)
}

// Destroy removes every cluster container on the given network and then
// the network itself, networks not created by schemadock are left in
// place
func (e *EngineImpl) Destroy(ctx context.Context, network string, force bool) error {
	if ctx.Err() != nil {
		e.log.Debug("Context cancelled, skipping destroy", "network", network)
		return nil
	}

	if network == "" {
		network = DefaultNetwork
	}

	e.log.Info("Destroying cluster", "network", network)

	containers, err := e.tasks.FindContainersByLabels(cluster.SelectorLabels(network))
	if err != nil {
		return fmt.Errorf("unable to find the cluster containers: %w", err)
	}

	for _, cc := range containers {
		e.log.Debug("Removing node container", "name", cc.Name, "id", cc.ID)

		if err := e.tasks.RemoveContainer(cc.ID, force); err != nil {
			return fmt.Errorf("unable to remove the container %s: %w", cc.Name, err)
		}
	}

	if err := e.tasks.RemoveNetwork(network); err != nil {
		return fmt.Errorf("unable to remove the network %s: %w", network, err)
	}

	return nil
}

// Status returns the observed state of the node containers on the given
// network, stopped containers are included
func (e *EngineImpl) Status(network string) ([]NodeStatus, error) {
	if network == "" {
		network = DefaultNetwork
	}

	containers, err := e.tasks.FindContainersByLabels(cluster.SelectorLabels(network))
	if err != nil {
		return nil, fmt.Errorf("unable to find the cluster containers: %w", err)
	}

	status := []NodeStatus{}
	for _, cc := range containers {
		status = append(status, NodeStatus{
			Name:     cc.Name,
			Hostname: cc.Labels[cluster.LabelHostname],
			Group:    cc.Labels[cluster.LabelGroup],
			Topology: cc.Labels[cluster.LabelTopology],
			State:    cc.State,
			Status:   cc.Status,
			Image:    cc.Image,
			Ports:    cc.Ports,
		})
	}

	return status, nil
}

// waitForCondition polls f until it succeeds or the startup timeout
// passes, the gate used by every service phase
func (e *EngineImpl) waitForCondition(ctx context.Context, f retry.RetryFunc) error {
	return retry.Do(ctx, retry.WithMaxDuration(startupTimeout, retry.NewConstant(startupInterval)), f)
}
