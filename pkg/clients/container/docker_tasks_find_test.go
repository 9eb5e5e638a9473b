package container

import (
	"fmt"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/schemadock/schemadock/pkg/clients/container/mocks"
	"github.com/schemadock/schemadock/pkg/clients/logger"
	"github.com/schemadock/schemadock/testutils"
)

func setupFindTests(t *testing.T) (*DockerTasks, *mocks.MockDocker) {
	md := &mocks.MockDocker{}
	md.On("ServerVersion", mock.Anything).Return(types.Version{}, nil)
	md.On("Info", mock.Anything).Return(system.Info{Driver: StorageDriverOverlay2}, nil)

	dt, _ := NewDockerTasks(md, nil, logger.NewTestLogger(t))

	return dt, md
}

func TestFindContainerIDsReturnsIDs(t *testing.T) {
	dt, md := setupFindTests(t)
	md.On("ContainerList", mock.Anything, mock.Anything).Return(
		[]container.Summary{
			{ID: "abc"},
			{ID: "123"},
		},
		nil,
	)

	ids, err := dt.FindContainerIDs("registry-1.schemadock.schemadock.run")
	assert.NoError(t, err)

	// assert that the docker api call was made
	md.AssertNumberOfCalls(t, "ContainerList", 1)

	// ensure that the FQDN was passed as an exact match filter
	args := testutils.GetCalls(&md.Mock, "ContainerList")[0].Arguments[1].(container.ListOptions)
	assert.Equal(t, "^registry-1.schemadock.schemadock.run$", args.Filters.Get("name")[0])
	assert.True(t, args.All)

	// ensure that the ids have been returned
	assert.Len(t, ids, 2)
	assert.Equal(t, "abc", ids[0])
	assert.Equal(t, "123", ids[1])
}

func TestFindContainerIDsReturnsErrorWhenDockerFail(t *testing.T) {
	dt, md := setupFindTests(t)
	md.On("ContainerList", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("boom"))

	_, err := dt.FindContainerIDs("registry-1.schemadock.schemadock.run")
	assert.Error(t, err)
}

func TestFindContainerIDsReturnsNilWhenNoIDs(t *testing.T) {
	dt, md := setupFindTests(t)
	md.On("ContainerList", mock.Anything, mock.Anything).Return(nil, nil)

	ids, err := dt.FindContainerIDs("registry-1.schemadock.schemadock.run")
	assert.NoError(t, err)
	assert.Nil(t, ids)
}

func TestFindContainerIDsReturnsNilWhenEmpty(t *testing.T) {
	dt, md := setupFindTests(t)
	md.On("ContainerList", mock.Anything, mock.Anything).Return([]container.Summary{}, nil)

	ids, err := dt.FindContainerIDs("registry-1.schemadock.schemadock.run")
	assert.NoError(t, err)
	assert.Nil(t, ids)
}

func TestFindContainersByLabelsBuildsFilters(t *testing.T) {
	dt, md := setupFindTests(t)
	md.On("ContainerList", mock.Anything, mock.Anything).Return([]container.Summary{}, nil)

	_, err := dt.FindContainersByLabels(map[string]string{"schemadock.network": "schemadock"})
	assert.NoError(t, err)

	args := testutils.GetCalls(&md.Mock, "ContainerList")[0].Arguments[1].(container.ListOptions)
	assert.Equal(t, "schemadock.network=schemadock", args.Filters.Get("label")[0])
	assert.True(t, args.All)
}

func TestFindContainersByLabelsReturnsDetails(t *testing.T) {
	dt, md := setupFindTests(t)
	md.On("ContainerList", mock.Anything, mock.Anything).Return(
		[]container.Summary{
			{
				ID:     "abc",
				Names:  []string{"/registry-1.schemadock.schemadock.run"},
				State:  "running",
				Status: "Up 2 minutes",
				Image:  "docker.io/confluent/schema-registry:4.0.0",
				Labels: map[string]string{"schemadock.group": "registry"},
				Ports: []container.Port{
					{PrivatePort: 8081, PublicPort: 32000, Type: "tcp"},
					{PrivatePort: 2181, Type: "tcp"},
				},
			},
		},
		nil,
	)

	containers, err := dt.FindContainersByLabels(map[string]string{"schemadock.group": "registry"})
	assert.NoError(t, err)
	assert.Len(t, containers, 1)

	// the leading slash docker adds to names is removed
	assert.Equal(t, "registry-1.schemadock.schemadock.run", containers[0].Name)
	assert.Equal(t, "running", containers[0].State)
	assert.Equal(t, "registry", containers[0].Labels["schemadock.group"])

	assert.Len(t, containers[0].Ports, 2)
	assert.Equal(t, "8081", containers[0].Ports[0].Local)
	assert.Equal(t, "32000", containers[0].Ports[0].Host)
	assert.Equal(t, "", containers[0].Ports[1].Host)
}

func TestFindContainersByLabelsReturnsErrorOnListFail(t *testing.T) {
	dt, md := setupFindTests(t)
	md.On("ContainerList", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("boom"))

	_, err := dt.FindContainersByLabels(map[string]string{"schemadock.network": "schemadock"})
	assert.Error(t, err)
}
