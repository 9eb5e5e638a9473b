package schemadock

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/schemadock/schemadock/pkg/clients/container/mocks"
	"github.com/schemadock/schemadock/pkg/cluster"
	"github.com/schemadock/schemadock/testutils"
)

func TestKafkaReadsTheNodeConfig(t *testing.T) {
	e, md, _, r := setupEngineTests(t)

	_, err := e.Start(context.Background(), r, StartOptions{})
	assert.NoError(t, err)

	count := 0
	for _, c := range testutils.GetCalls(&md.Mock, "ExecuteCommand") {
		command := c.Arguments[1].([]string)
		if command[0] == "cat" {
			assert.Equal(t, []string{"cat", "/confluent/etc/kafka/server.properties"}, command)
			count++
		}
	}

	assert.Equal(t, 2, count)
}

func TestKafkaWritesUniqueBrokerIDs(t *testing.T) {
	e, md, _, r := setupEngineTests(t)

	_, err := e.Start(context.Background(), r, StartOptions{})
	assert.NoError(t, err)

	configs := []string{}
	for _, c := range testutils.GetCalls(&md.Mock, "CreateFileInContainer") {
		if c.Arguments[2] == "kafka.properties" {
			assert.Equal(t, "/", c.Arguments[3])
			configs = append(configs, c.Arguments[1].(string))
		}
	}

	assert.Len(t, configs, 2)
	assert.Contains(t, configs[0], "broker.id=0")
	assert.Contains(t, configs[1], "broker.id=1")

	// the remaining settings are untouched
	assert.Contains(t, configs[1], "zookeeper.connect=localhost:2181/kafka")
}

func TestKafkaWaitsForAllBrokersToRegister(t *testing.T) {
	e, md, _, r := setupEngineTests(t)

	_, err := e.Start(context.Background(), r, StartOptions{})
	assert.NoError(t, err)

	queried := false
	for _, c := range testutils.GetCalls(&md.Mock, "ExecuteCommand") {
		command := c.Arguments[1].([]string)
		if command[len(command)-1] == "/brokers/ids" {
			assert.Equal(t, []string{zookeeperShell, zookeeperAddress, "ls", "/brokers/ids"}, command)
			queried = true
		}
	}

	assert.True(t, queried)
}

func TestStartFailsWhenBrokersDoNotRegister(t *testing.T) {
	e, md, _, r := setupEngineTests(t)
	testutils.RemoveOn(&md.Mock, "ExecuteCommand")
	md.On("ExecuteCommand", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			// only one of the two brokers ever registers
			writeCommandOutput(args, 1)
		}).
		Return(0, nil)

	_, err := e.Start(context.Background(), r, StartOptions{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "did not register in ZooKeeper")

	md.AssertNotCalled(t, "ExecuteDetached", mock.Anything, []string{"/start_schema_registry"}, mock.Anything)
}

func TestRegisteredBrokersParsesShellOutput(t *testing.T) {
	testCases := []struct {
		name    string
		output  string
		brokers int
		errored bool
	}{
		{"single broker", "[0]", 1, false},
		{"all brokers after the banner", "Welcome to ZooKeeper!\nWATCHER::\n[0, 1, 2]\n", 3, false},
		{"no brokers", "[]", 0, false},
		{"path missing", "Node does not exist: /brokers/ids", 0, true},
		{"malformed list", "[0, 1", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, _, _, r := setupEngineTests(t)

			md := &mocks.MockContainerTasks{}
			md.On("ExecuteCommand", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) {
					args.Get(7).(io.Writer).Write([]byte(tc.output))
				}).
				Return(0, nil)

			c := cluster.FromResolved(r, "schemadock", md)
			c.Nodes[0].ContainerID = "container1"

			brokers, err := e.(*EngineImpl).registeredBrokers(c.Nodes[0])
			if tc.errored {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.brokers, brokers)
		})
	}
}
