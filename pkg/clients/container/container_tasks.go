package container

import (
	"io"

	dtypes "github.com/schemadock/schemadock/pkg/clients/container/types"
)

// ContainerTasks defines the tasks required by the cluster engine to
// manage node containers, images and networks
type ContainerTasks interface {
	// SetForcePull sets a global override, when true images are always
	// pulled from remote registries even when cached locally
	SetForcePull(force bool)

	// EngineInfo returns the type and storage driver of the container engine
	EngineInfo() *dtypes.EngineInfo

	// CreateContainer creates and starts a new container with the given
	// configuration, returns the id of the created container
	CreateContainer(c *dtypes.Container) (id string, err error)

	// FindContainerIDs returns the ids of containers exactly matching the
	// given name
	FindContainerIDs(fqdn string) ([]string, error)

	// FindContainersByLabels returns the containers matching all the
	// given labels, stopped containers are included
	FindContainersByLabels(labels map[string]string) ([]dtypes.ClusterContainer, error)

	// RemoveContainer stops and removes a running container, when force
	// is false a graceful stop is attempted first
	RemoveContainer(id string, force bool) error

	// PullImage pulls an image from a remote registry unless it exists in
	// the local cache, when force is true the image is always pulled
	PullImage(image dtypes.Image, force bool) error

	// FindImageInLocalRegistry returns the id for the image in the local
	// cache matching the given tag, an empty string when not found
	FindImageInLocalRegistry(image dtypes.Image) (string, error)

	// RemoveImage removes the image with the given id from the local cache
	RemoveImage(id string) error

	// CreateFileInContainer creates a file in the container with the given
	// contents at the directory path
	CreateFileInContainer(containerID, contents, filename, path string) error

	// CopyFileToContainer copies the local file at filename into the
	// container at the directory path
	CopyFileToContainer(containerID, filename, path string) error

	// ExecuteCommand runs a command in a running container and blocks
	// until it completes, output is written to writer when given,
	// returns the exit code of the command
	ExecuteCommand(id string, command []string, env []string, workingDir string, user, group string, timeout int, writer io.Writer) (int, error)

	// ExecuteDetached starts a command in a running container and returns
	// without waiting for it to complete
	ExecuteDetached(id string, command []string, env []string) error

	// CreateShell creates an interactive shell in a running container
	CreateShell(id string, command []string, stdin io.ReadCloser, stdout io.Writer, stderr io.Writer) error

	// CreateNetwork creates a bridge network with the given name unless a
	// network with that name exists, returns the network id
	CreateNetwork(name string) (string, error)

	// FindNetwork returns the network with the given name
	FindNetwork(name string) (dtypes.NetworkAttachment, error)

	// RemoveNetwork removes the named network, networks not created by
	// schemadock are left in place
	RemoveNetwork(name string) error
}
