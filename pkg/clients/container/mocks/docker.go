package mocks

import (
	"context"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/system"
	specs "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/mock"
)

type MockDocker struct {
	mock.Mock
}

func (m *MockDocker) ImagePull(ctx context.Context, refStr string, options image.PullOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, refStr, options)

	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockDocker) ContainerCreate(
	ctx context.Context,
	config *container.Config,
	hostConfig *container.HostConfig,
	networkingConfig *network.NetworkingConfig,
	platform *specs.Platform,
	containerName string,
) (container.CreateResponse, error) {

	args := m.Called(ctx, config, hostConfig, networkingConfig, containerName)

	if c, ok := args.Get(0).(container.CreateResponse); ok {
		return c, args.Error(1)
	}

	return container.CreateResponse{}, args.Error(1)
}

func (m *MockDocker) ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error) {
	args := m.Called(ctx, options)

	if cl, ok := args.Get(0).([]container.Summary); ok {
		return cl, nil
	}

	return nil, args.Error(1)
}

func (m *MockDocker) ContainerStart(ctx context.Context, ID string, opts container.StartOptions) error {
	args := m.Called(ctx, ID, opts)

	return args.Error(0)
}

func (m *MockDocker) ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error {
	args := m.Called(ctx, containerID, options)

	return args.Error(0)
}

func (m *MockDocker) ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error {
	args := m.Called(ctx, containerID, options)

	return args.Error(0)
}

func (m *MockDocker) ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error) {
	args := m.Called(ctx, containerID)

	return args.Get(0).(container.InspectResponse), args.Error(1)
}

func (m *MockDocker) ContainerExecCreate(ctx context.Context, cont string, config container.ExecOptions) (container.ExecCreateResponse, error) {
	args := m.Called(ctx, cont, config)

	if idr, ok := args.Get(0).(container.ExecCreateResponse); ok {
		return idr, args.Error(1)
	}

	return container.ExecCreateResponse{}, args.Error(1)
}

func (m *MockDocker) ContainerExecStart(ctx context.Context, execID string, config container.ExecStartOptions) error {
	args := m.Called(ctx, execID, config)

	return args.Error(0)
}

func (m *MockDocker) ContainerExecAttach(ctx context.Context, execID string, config container.ExecAttachOptions) (types.HijackedResponse, error) {
	args := m.Called(ctx, execID, config)

	if hjr, ok := args.Get(0).(types.HijackedResponse); ok {
		return hjr, args.Error(1)
	}

	return types.HijackedResponse{}, args.Error(1)
}

func (m *MockDocker) ContainerExecInspect(ctx context.Context, execID string) (container.ExecInspect, error) {
	args := m.Called(ctx, execID)

	if idr, ok := args.Get(0).(container.ExecInspect); ok {
		return idr, args.Error(1)
	}

	return container.ExecInspect{}, args.Error(1)
}

func (m *MockDocker) ContainerExecResize(ctx context.Context, execID string, config container.ResizeOptions) error {
	args := m.Called(ctx, execID, config)

	return args.Error(0)
}

func (m *MockDocker) ContainerLogs(ctx context.Context, cont string, options container.LogsOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, cont, options)

	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockDocker) CopyToContainer(ctx context.Context, cont, path string, content io.Reader, options container.CopyToContainerOptions) error {
	args := m.Called(ctx, cont, path, content, options)

	return args.Error(0)
}

func (m *MockDocker) NetworkList(ctx context.Context, options network.ListOptions) ([]network.Summary, error) {
	args := m.Called(ctx, options)

	if n, ok := args.Get(0).([]network.Summary); ok {
		return n, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockDocker) NetworkInspect(ctx context.Context, networkID string, options network.InspectOptions) (network.Summary, error) {
	args := m.Called(ctx, networkID, options)

	if n, ok := args.Get(0).(network.Summary); ok {
		return n, args.Error(1)
	}

	return network.Summary{}, args.Error(1)
}

func (m *MockDocker) NetworkCreate(ctx context.Context, name string, options network.CreateOptions) (network.CreateResponse, error) {
	args := m.Called(ctx, name, options)

	if n, ok := args.Get(0).(network.CreateResponse); ok {
		return n, args.Error(1)
	}

	return network.CreateResponse{}, args.Error(1)
}

func (m *MockDocker) NetworkRemove(ctx context.Context, networkID string) error {
	args := m.Called(ctx, networkID)

	return args.Error(0)
}

func (m *MockDocker) NetworkConnect(ctx context.Context, networkID, containerID string, config *network.EndpointSettings) error {
	args := m.Called(ctx, networkID, containerID, config)

	return args.Error(0)
}

func (m *MockDocker) NetworkDisconnect(ctx context.Context, networkID, containerID string, force bool) error {
	args := m.Called(ctx, networkID, containerID, force)

	return args.Error(0)
}

func (m *MockDocker) ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error) {
	args := m.Called(ctx, options)

	if is, ok := args.Get(0).([]image.Summary); ok {
		return is, args.Error(1)
	}

	return []image.Summary{}, args.Error(1)
}

func (m *MockDocker) ImageRemove(ctx context.Context, imageID string, options image.RemoveOptions) ([]image.DeleteResponse, error) {
	args := m.Called(ctx, imageID, options)

	if is, ok := args.Get(0).([]image.DeleteResponse); ok {
		return is, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockDocker) ServerVersion(ctx context.Context) (types.Version, error) {
	args := m.Called(ctx)

	if ver, ok := args.Get(0).(types.Version); ok {
		return ver, args.Error(1)
	}

	return types.Version{}, args.Error(1)
}

func (m *MockDocker) Info(ctx context.Context) (system.Info, error) {
	args := m.Called(ctx)

	if i, ok := args.Get(0).(system.Info); ok {
		return i, args.Error(1)
	}

	return system.Info{}, args.Error(1)
}
