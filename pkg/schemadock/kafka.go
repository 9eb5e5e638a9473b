package schemadock

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sethvargo/go-retry"

	"github.com/schemadock/schemadock/pkg/cluster"
)

const (
	kafkaServerProperties = "/confluent/etc/kafka/server.properties"
	kafkaConfPath         = "/kafka.properties"
)

// startKafka writes a unique broker id into the Kafka configuration of
// every node, launches the brokers and waits until all of them have
// registered with ZooKeeper
func (e *EngineImpl) startKafka(ctx context.Context, c *cluster.Cluster) error {
	for i, n := range c.Nodes {
		e.log.Info("Starting Kafka", "ref", c.Name, "node", n.Hostname)

		config, err := n.ReadFile(kafkaServerProperties)
		if err != nil {
			return err
		}

		config = strings.Replace(config, "broker.id=0", fmt.Sprintf("broker.id=%d", i), 1)

		if err := n.WriteFile(kafkaConfPath, config); err != nil {
			return err
		}

		if err := n.ExecuteDetached([]string{"/start_kafka"}); err != nil {
			return fmt.Errorf("unable to start Kafka on node %s: %w", n.Hostname, err)
		}
	}

	e.log.Info("Waiting for the brokers to register in ZooKeeper", "ref", c.Name)

	err := e.waitForCondition(ctx, func(ctx context.Context) error {
		registered, err := e.registeredBrokers(c.Nodes[0])
		if err != nil {
			return retry.RetryableError(err)
		}

		if registered != len(c.Nodes) {
			return retry.RetryableError(fmt.Errorf("%d of %d brokers registered in ZooKeeper", registered, len(c.Nodes)))
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("the Kafka brokers did not register in ZooKeeper: %w", err)
	}

	return nil
}

// registeredBrokers queries ZooKeeper for the registered broker ids, the
// query result is the last line of the shell output, a JSON array
func (e *EngineImpl) registeredBrokers(n *cluster.Node) (int, error) {
	output := bytes.NewBufferString("")

	if _, err := n.Execute([]string{zookeeperShell, zookeeperAddress, "ls", "/brokers/ids"}, output); err != nil {
		return 0, fmt.Errorf("unable to list the brokers in ZooKeeper: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])

	if !strings.HasPrefix(last, "[") {
		return 0, fmt.Errorf("unexpected broker list from ZooKeeper: %s", last)
	}

	ids := []int{}
	if err := json.Unmarshal([]byte(last), &ids); err != nil {
		return 0, fmt.Errorf("unable to parse the broker list %s: %w", last, err)
	}

	return len(ids), nil
}
