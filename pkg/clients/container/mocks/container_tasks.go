package mocks

import (
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/schemadock/schemadock/pkg/clients/container/types"
)

type MockContainerTasks struct {
	mock.Mock
}

func (m *MockContainerTasks) SetForcePull(f bool) {
	m.Called(f)
}

func (m *MockContainerTasks) EngineInfo() *types.EngineInfo {
	args := m.Called()

	if ei, ok := args.Get(0).(*types.EngineInfo); ok {
		return ei
	}

	return nil
}

func (m *MockContainerTasks) CreateContainer(c *types.Container) (id string, err error) {
	args := m.Called(c)

	return args.String(0), args.Error(1)
}

func (m *MockContainerTasks) FindContainerIDs(fqdn string) ([]string, error) {
	args := m.Called(fqdn)

	if sa, ok := args.Get(0).([]string); ok {
		return sa, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockContainerTasks) FindContainersByLabels(labels map[string]string) ([]types.ClusterContainer, error) {
	args := m.Called(labels)

	if cc, ok := args.Get(0).([]types.ClusterContainer); ok {
		return cc, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockContainerTasks) RemoveContainer(id string, force bool) error {
	args := m.Called(id, force)

	return args.Error(0)
}

func (m *MockContainerTasks) PullImage(i types.Image, f bool) error {
	args := m.Called(i, f)

	return args.Error(0)
}

func (m *MockContainerTasks) FindImageInLocalRegistry(i types.Image) (string, error) {
	args := m.Called(i)

	return args.String(0), args.Error(1)
}

func (m *MockContainerTasks) RemoveImage(id string) error {
	args := m.Called(id)

	return args.Error(0)
}

func (d *MockContainerTasks) CreateFileInContainer(id, contents, filename, path string) error {
	args := d.Called(id, contents, filename, path)

	return args.Error(0)
}

func (d *MockContainerTasks) CopyFileToContainer(id, src, dst string) error {
	args := d.Called(id, src, dst)

	return args.Error(0)
}

func (d *MockContainerTasks) ExecuteCommand(id string, command []string, env []string, workingDirectory string, user, group string, timeout int, writer io.Writer) (int, error) {
	args := d.Called(id, command, env, workingDirectory, user, group, timeout, writer)

	return args.Int(0), args.Error(1)
}

func (d *MockContainerTasks) ExecuteDetached(id string, command []string, env []string) error {
	args := d.Called(id, command, env)

	return args.Error(0)
}

func (d *MockContainerTasks) CreateShell(id string, command []string, stdin io.ReadCloser, stdout io.Writer, stderr io.Writer) error {
	args := d.Called(id, command, stdin, stdout, stderr)

	return args.Error(0)
}

func (d *MockContainerTasks) CreateNetwork(name string) (string, error) {
	args := d.Called(name)

	return args.String(0), args.Error(1)
}

func (d *MockContainerTasks) FindNetwork(name string) (types.NetworkAttachment, error) {
	args := d.Called(name)

	if n, ok := args.Get(0).(types.NetworkAttachment); ok {
		return n, args.Error(1)
	}

	return types.NetworkAttachment{}, args.Error(1)
}

func (d *MockContainerTasks) RemoveNetwork(name string) error {
	args := d.Called(name)

	return args.Error(0)
}
