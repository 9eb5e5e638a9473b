package schemadock

import (
	"context"
	"fmt"

	"github.com/schemadock/schemadock/pkg/cluster"
	"github.com/schemadock/schemadock/pkg/utils"
)

// startSchemaRegistry launches the registry service on every node and
// waits until the REST API answers on the published host port
func (e *EngineImpl) startSchemaRegistry(ctx context.Context, c *cluster.Cluster) error {
	for _, n := range c.Nodes {
		e.log.Info("Starting Schema Registry", "ref", c.Name, "node", n.Hostname)

		if err := n.ExecuteDetached([]string{"/start_schema_registry"}); err != nil {
			return fmt.Errorf("unable to start the Schema Registry on node %s: %w", n.Hostname, err)
		}
	}

	node := registryEndpointNode(c)
	if node == nil {
		e.log.Debug("No node publishes a port, skipping the API check", "ref", c.Name)
		return nil
	}

	uri := fmt.Sprintf("http://%s:%s/subjects", utils.GetDockerIP(), node.Ports[0])

	e.log.Info("Waiting for the Schema Registry API", "ref", c.Name, "uri", uri)

	if err := e.http.HealthCheckHTTP(uri, "GET", nil, "", []int{200}, startupTimeout); err != nil {
		return fmt.Errorf("the Schema Registry API did not become ready: %w", err)
	}

	return nil
}

// registryEndpointNode returns the first node which exposes a port, the
// node the engine publishes to the host and checks the API against
func registryEndpointNode(c *cluster.Cluster) *cluster.Node {
	for _, n := range c.Nodes {
		if len(n.Ports) > 0 {
			return n
		}
	}

	return nil
}
