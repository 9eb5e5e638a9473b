package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	gmocks "github.com/schemadock/schemadock/pkg/clients/getter/mocks"
	"github.com/schemadock/schemadock/testutils"
)

func setupTopologyCommand(t *testing.T) (*cobra.Command, *gmocks.Getter, *bytes.Buffer) {
	testutils.SetupHome(t)

	mg := &gmocks.Getter{}
	mg.On("Get", mock.Anything, mock.Anything).Return(nil)

	tc := newTopologyCmd(mg)

	out := bytes.NewBufferString("")
	tc.SetOut(out)

	return tc, mg, out
}

func TestTopologyShowsTheBuiltInAssignments(t *testing.T) {
	tc, _, out := setupTopologyCommand(t)
	tc.SetArgs([]string{})

	err := tc.Execute()

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Topology confluent-schema-registry, version 4.0.0")
	assert.Contains(t, out.String(), "registry-1")
	assert.Contains(t, out.String(), "confluent/schema-registry:4.0.0")
}

func TestTopologyAppliesTheOverrideFlags(t *testing.T) {
	tc, _, out := setupTopologyCommand(t)
	tc.SetArgs([]string{"--nodes", "registry-1,registry-2", "--confluent-version", "5.2.1"})

	err := tc.Execute()

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "registry-2")
	assert.Contains(t, out.String(), "confluent/schema-registry:5.2.1")
}

func TestTopologyAppliesTheRegistryOverride(t *testing.T) {
	tc, _, out := setupTopologyCommand(t)
	tc.SetArgs([]string{"--registry", "registry.example.com"})

	err := tc.Execute()

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "registry.example.com/confluent/schema-registry:4.0.0")
}

func TestTopologyPrintsJSON(t *testing.T) {
	tc, _, out := setupTopologyCommand(t)
	tc.SetArgs([]string{"--json"})

	err := tc.Execute()

	assert.NoError(t, err)
	assert.Contains(t, out.String(), `"hostname"`)
	assert.Contains(t, out.String(), `"registry-1"`)
}

func TestTopologyLoadsFromDisk(t *testing.T) {
	tc, _, out := setupTopologyCommand(t)

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "topology.yaml"), []byte(diskTopology), 0644)
	assert.NoError(t, err)

	tc.SetArgs([]string{dir})

	err = tc.Execute()

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "kafka-1")
	assert.Contains(t, out.String(), "confluent/kafka:4.0.0")
}

func TestTopologyReturnsErrorForUnknownGroup(t *testing.T) {
	tc, _, _ := setupTopologyCommand(t)
	tc.SetArgs([]string{"--members", "nope=host-1"})

	err := tc.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no node group named")
}
