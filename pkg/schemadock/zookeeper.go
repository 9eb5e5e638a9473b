package schemadock

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-retry"

	"github.com/schemadock/schemadock/pkg/cluster"
)

const (
	zookeeperDataDir  = "/zookeeper"
	zookeeperConfPath = "/zookeeper.properties"
	zookeeperShell    = "/confluent/bin/zookeeper-shell"
	zookeeperAddress  = "localhost:2181"
)

// the base quorum settings written to every node, the server list is
// appended per cluster
var zookeeperConfig = []string{
	"tickTime=2000",
	"dataDir=/zookeeper",
	"clientPort=2181",
	"initLimit=5",
	"syncLimit=2",
}

// startZooKeeper writes the quorum configuration and a unique id to every
// node, launches the service and waits until each node accepts shell
// connections
func (e *EngineImpl) startZooKeeper(ctx context.Context, c *cluster.Cluster) error {
	config := append([]string{}, zookeeperConfig...)
	for i, n := range c.Nodes {
		config = append(config, fmt.Sprintf("server.%d=%s:2888:3888", i, n.Hostname))
	}

	for i, n := range c.Nodes {
		e.log.Info("Starting ZooKeeper", "ref", c.Name, "node", n.Hostname)

		if _, err := n.Execute([]string{"mkdir", "-p", zookeeperDataDir}, nil); err != nil {
			return fmt.Errorf("unable to create the ZooKeeper data directory on node %s: %w", n.Hostname, err)
		}

		// the id in the data directory has to match this nodes entry in
		// the server list
		if err := n.WriteFile(zookeeperDataDir+"/myid", fmt.Sprintf("%d", i)); err != nil {
			return err
		}

		if err := n.WriteFile(zookeeperConfPath, strings.Join(config, "\n")); err != nil {
			return err
		}

		if err := n.ExecuteDetached([]string{"/start_zookeeper"}); err != nil {
			return fmt.Errorf("unable to start ZooKeeper on node %s: %w", n.Hostname, err)
		}
	}

	for _, n := range c.Nodes {
		e.log.Info("Waiting for ZooKeeper", "ref", c.Name, "node", n.Hostname)

		err := e.waitForCondition(ctx, func(ctx context.Context) error {
			if _, err := n.Execute([]string{zookeeperShell, zookeeperAddress, "ls", "/"}, e.log.StandardWriter()); err != nil {
				return retry.RetryableError(fmt.Errorf("ZooKeeper is not ready on node %s: %w", n.Hostname, err))
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("ZooKeeper did not become ready: %w", err)
		}
	}

	return nil
}
