package container

import (
	"fmt"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/schemadock/schemadock/pkg/clients/container/mocks"
	"github.com/schemadock/schemadock/pkg/clients/logger"
	"github.com/schemadock/schemadock/testutils"
)

func setupNetworkTests(t *testing.T) (*DockerTasks, *mocks.MockDocker) {
	md := &mocks.MockDocker{}
	md.On("ServerVersion", mock.Anything).Return(types.Version{}, nil)
	md.On("Info", mock.Anything).Return(system.Info{Driver: StorageDriverOverlay2}, nil)

	dt, _ := NewDockerTasks(md, nil, logger.NewTestLogger(t))

	return dt, md
}

func TestNetworkCreatesWithBridgeDriver(t *testing.T) {
	dt, md := setupNetworkTests(t)
	md.On("NetworkList", mock.Anything, mock.Anything).Return([]network.Summary{}, nil)
	md.On("NetworkCreate", mock.Anything, "schemadock", mock.Anything).Return(network.CreateResponse{ID: "abc"}, nil)

	id, err := dt.CreateNetwork("schemadock")
	assert.NoError(t, err)
	assert.Equal(t, "abc", id)

	opts := testutils.GetCalls(&md.Mock, "NetworkCreate")[0].Arguments[2].(network.CreateOptions)
	assert.Equal(t, "bridge", opts.Driver)
	assert.Equal(t, "schemadock", opts.Labels["created_by"])
	assert.True(t, opts.Attachable)
}

func TestNetworkCreateFallsBackToNATDriver(t *testing.T) {
	dt, md := setupNetworkTests(t)
	md.On("NetworkList", mock.Anything, mock.Anything).Return([]network.Summary{}, nil)
	md.On("NetworkCreate", mock.Anything, "schemadock", mock.MatchedBy(func(o network.CreateOptions) bool {
		return o.Driver == "bridge"
	})).Return(nil, fmt.Errorf("bridge not supported"))
	md.On("NetworkCreate", mock.Anything, "schemadock", mock.MatchedBy(func(o network.CreateOptions) bool {
		return o.Driver == "nat"
	})).Return(network.CreateResponse{ID: "abc"}, nil)

	id, err := dt.CreateNetwork("schemadock")
	assert.NoError(t, err)
	assert.Equal(t, "abc", id)

	md.AssertNumberOfCalls(t, "NetworkCreate", 2)
}

func TestNetworkCreateReusesExisting(t *testing.T) {
	dt, md := setupNetworkTests(t)
	md.On("NetworkList", mock.Anything, mock.Anything).Return(
		[]network.Summary{{ID: "abc", Name: "schemadock"}}, nil)

	id, err := dt.CreateNetwork("schemadock")
	assert.NoError(t, err)
	assert.Equal(t, "abc", id)

	md.AssertNotCalled(t, "NetworkCreate", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindNetworkReturnsExactMatch(t *testing.T) {
	dt, md := setupNetworkTests(t)
	md.On("NetworkList", mock.Anything, mock.Anything).Return(
		[]network.Summary{
			{ID: "123", Name: "schemadock2"},
			{ID: "abc", Name: "schemadock"},
		}, nil)

	n, err := dt.FindNetwork("schemadock")
	assert.NoError(t, err)
	assert.Equal(t, "abc", n.ID)
	assert.Equal(t, "schemadock", n.Name)
}

func TestFindNetworkReturnsErrorWhenNotFound(t *testing.T) {
	dt, md := setupNetworkTests(t)
	md.On("NetworkList", mock.Anything, mock.Anything).Return([]network.Summary{}, nil)

	_, err := dt.FindNetwork("schemadock")
	assert.Error(t, err)
}

func TestNetworkRemoveDisconnectsContainersAndRemoves(t *testing.T) {
	dt, md := setupNetworkTests(t)
	md.On("NetworkList", mock.Anything, mock.Anything).Return(
		[]network.Summary{{ID: "abc", Name: "schemadock", Labels: map[string]string{"created_by": "schemadock"}}}, nil)
	md.On("NetworkInspect", mock.Anything, "abc", mock.Anything).Return(
		network.Summary{
			ID:   "abc",
			Name: "schemadock",
			Containers: map[string]network.EndpointResource{
				"container1": {},
			},
		}, nil)
	md.On("NetworkDisconnect", mock.Anything, "abc", "container1", true).Return(nil)
	md.On("NetworkRemove", mock.Anything, "abc").Return(nil)

	err := dt.RemoveNetwork("schemadock")
	assert.NoError(t, err)

	md.AssertCalled(t, "NetworkDisconnect", mock.Anything, "abc", "container1", true)
	md.AssertCalled(t, "NetworkRemove", mock.Anything, "abc")
}

func TestNetworkRemoveIgnoresUnmanagedNetworks(t *testing.T) {
	dt, md := setupNetworkTests(t)
	md.On("NetworkList", mock.Anything, mock.Anything).Return(
		[]network.Summary{{ID: "abc", Name: "schemadock", Labels: map[string]string{}}}, nil)

	err := dt.RemoveNetwork("schemadock")
	assert.NoError(t, err)

	md.AssertNotCalled(t, "NetworkRemove", mock.Anything, mock.Anything)
}

func TestNetworkRemoveIgnoresMissingNetworks(t *testing.T) {
	dt, md := setupNetworkTests(t)
	md.On("NetworkList", mock.Anything, mock.Anything).Return([]network.Summary{}, nil)

	err := dt.RemoveNetwork("schemadock")
	assert.NoError(t, err)

	md.AssertNotCalled(t, "NetworkRemove", mock.Anything, mock.Anything)
}
