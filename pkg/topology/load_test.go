package topology

import (
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/require"
)

var testDescriptor = `
name: kafka-stack
description: Kafka cluster with a schema registry
node_groups:
  - name: brokers
    nodes: ["broker-1", "broker-2", "broker-3"]
    image: confluent/kafka
    ports: ["9092"]
  - name: registry
    nodes: ["registry-1"]
    image: confluent/schema-registry
    ports: ["8081"]
parameters:
  - name: confluent-version
    default: "4.0.0"
    description: version of the Confluent platform to run
`

func writeDescriptor(t *testing.T, contents string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	err := os.WriteFile(path, []byte(contents), 0644)
	assert.NoError(t, err)

	return path
}

func TestLoadParsesDescriptorFile(t *testing.T) {
	path := writeDescriptor(t, testDescriptor)

	top, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, "kafka-stack", top.Name)
	assert.Len(t, top.Groups, 2)
	assert.Equal(t, "brokers", top.Groups[0].Name)
	assert.Equal(t, []string{"broker-1", "broker-2", "broker-3"}, top.Groups[0].Nodes)
	assert.Equal(t, "confluent/kafka", top.Groups[0].Image)

	p, ok := top.Parameter("confluent-version")
	assert.True(t, ok)
	assert.Equal(t, "4.0.0", p.Default)
}

func TestLoadReadsWellKnownFileFromDirectory(t *testing.T) {
	path := writeDescriptor(t, testDescriptor)

	top, err := Load(filepath.Dir(path))

	assert.NoError(t, err)
	assert.Equal(t, "kafka-stack", top.Name)
}

func TestLoadWithMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "not-there.yaml"))

	assert.Error(t, err)
}

func TestParseWithInvalidYamlReturnsError(t *testing.T) {
	_, err := Parse([]byte("node_groups: [}"))

	ce := ConfigurationError{}
	assert.ErrorAs(t, err, &ce)
}

func TestParseWithInvalidTopologyReturnsError(t *testing.T) {
	_, err := Parse([]byte("name: empty-stack"))

	ce := ConfigurationError{}
	assert.ErrorAs(t, err, &ce)
}

func TestLoadedDescriptorResolves(t *testing.T) {
	path := writeDescriptor(t, testDescriptor)

	top, err := Load(path)
	assert.NoError(t, err)

	r, err := top.Resolve(Overrides{})
	assert.NoError(t, err)
	assert.Len(t, r.Nodes, 4)
}
