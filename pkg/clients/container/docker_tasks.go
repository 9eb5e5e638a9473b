package container

import (
	"archive/tar"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	gosignal "os/signal"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/go-connections/nat"
	"github.com/moby/sys/signal"

	dtypes "github.com/schemadock/schemadock/pkg/clients/container/types"
	"github.com/schemadock/schemadock/pkg/clients/images"
	"github.com/schemadock/schemadock/pkg/clients/logger"
	"github.com/schemadock/schemadock/pkg/clients/streams"
)

const defaultExitCode = 254

// storage drivers reported by the container engine
const (
	StorageDriverOverlay2 string = "overlay2"
	StorageDriverVFS      string = "vfs"
)

// networks removed on down must carry this label, networks which exist
// before a cluster starts are reused and never removed
const createdByLabel = "created_by"
const createdByValue = "schemadock"

// DockerTasks is a concrete implementation of ContainerTasks which uses the Docker SDK
type DockerTasks struct {
	engineType    string
	storageDriver string
	c             Docker
	il            images.ImageLog
	l             logger.Logger
	force         bool
	defaultWait   time.Duration
}

// NewDockerTasks creates a DockerTasks with the given Docker client
func NewDockerTasks(c Docker, il images.ImageLog, l logger.Logger) (*DockerTasks, error) {
	// Set the engine type, Docker, Podman
	ver, err := c.ServerVersion(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error checking server version: %w", err)
	}

	t := dtypes.EngineNotFound

	for _, c := range ver.Components {
		switch c.Name {
		case "Engine":
			t = dtypes.EngineTypeDocker
		case "Podman Engine":
			t = dtypes.EngineTypePodman
		}
	}

	// Determine the storage driver
	info, err := c.Info(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error checking storage driver: %w", err)
	}

	return &DockerTasks{engineType: t, storageDriver: info.Driver, c: c, il: il, l: l, defaultWait: 1 * time.Second}, nil
}

func (d *DockerTasks) EngineInfo() *dtypes.EngineInfo {
	return &dtypes.EngineInfo{StorageDriver: d.storageDriver, EngineType: d.engineType}
}

// SetForcePull sets a global override for the DockerTasks, when set to true
// Images will always be pulled from remote registries
func (d *DockerTasks) SetForcePull(force bool) {
	d.force = force
}

// CreateContainer creates a new Docker container for the given configuration
func (d *DockerTasks) CreateContainer(c *dtypes.Container) (string, error) {
	d.l.Debug("Creating Docker Container", "ref", c.Name)

	// ensure the image name is the full canonical image as Podman does not use the
	// default docker.io registry
	c.Image.Name = makeImageCanonical(c.Image.Name)

	// convert the environment vars to a list of [key]=[value]
	env := make([]string, 0)
	for k, v := range c.Environment {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	// nodes are addressed by their short hostname inside the cluster
	// network, fall back to the container name when not set
	hostname := c.Hostname
	if hostname == "" {
		hostname = c.Name
	}

	// create the container config
	dc := &container.Config{
		Hostname:     hostname,
		Image:        c.Image.Name,
		Env:          env,
		Cmd:          c.Command,
		Entrypoint:   c.Entrypoint,
		Labels:       c.Labels,
		AttachStdin:  true,
		AttachStdout: true,
		AttachStderr: true,
	}

	// create the host and network configs
	hc := &container.HostConfig{}
	nc := &network.NetworkingConfig{}

	hc.Privileged = c.Privileged

	// by default the container should NOT be attached to a network
	nc.EndpointsConfig = make(map[string]*network.EndpointSettings)

	// create mounts
	mounts := make([]mount.Mount, 0)
	for _, vc := range c.Volumes {
		// default mount type to bind
		t := mount.TypeBind

		switch vc.Type {
		case "bind":
			t = mount.TypeBind
		case "volume":
			t = mount.TypeVolume
		case "tmpfs":
			t = mount.TypeTmpfs
		}

		// if we have a bind type mount then ensure that the local source exists or
		// an error will be raised when creating
		if t == mount.TypeBind {
			if _, err := os.Stat(vc.Source); err != nil {
				return "", fmt.Errorf("source %s for volume %s does not exist: %w", vc.Source, vc.Destination, err)
			}
		}

		mounts = append(mounts, mount.Mount{
			Type:     t,
			Source:   vc.Source,
			Target:   vc.Destination,
			ReadOnly: vc.ReadOnly,
		})
	}

	hc.Mounts = mounts

	// create the ports config
	ports := createPublishedPorts(c.Ports)
	dc.ExposedPorts = ports.ExposedPorts
	hc.PortBindings = ports.PortBindings

	cont, err := d.c.ContainerCreate(
		context.Background(),
		dc,
		hc,
		nc,
		nil,
		c.Name,
	)
	if err != nil {
		return "", err
	}

	// first remove the container from the default network if we are adding custom networks
	if len(c.Networks) > 0 {
		d.l.Debug("Remove container from default networks", "ref", c.Name)

		info, err := d.c.ContainerInspect(context.Background(), cont.ID)
		if err != nil {
			return "", fmt.Errorf("unable to remove container from the default network: %w", err)
		}

		// get all default attached networks, we will disconnect these later
		defaultNets := []string{}
		for k := range info.NetworkSettings.Networks {
			defaultNets = append(defaultNets, k)
		}

		// attach the custom networks
		for _, n := range c.Networks {
			net, err := d.FindNetwork(n.Name)
			if err != nil {
				// the network does not exist, roll back the container
				d.RemoveContainer(cont.ID, false)
				return "", err
			}

			err = d.AttachNetwork(net.ID, cont.ID, n.Aliases)
			if err != nil {
				// if we fail to connect to the network roll back the container
				errRemove := d.RemoveContainer(cont.ID, false)
				if errRemove != nil {
					return "", fmt.Errorf("failed to attach network %s to container %s, unable to roll back container: %w", n.Name, cont.ID, err)
				}

				return "", fmt.Errorf("unable to connect container to network %s, successfully rolled back container: %w", n.Name, err)
			}
		}

		// disconnect the default networks
		// for podman this needs to happen after we have attached to a network or it fails silently
		for _, n := range defaultNets {
			d.l.Debug("Disconnecting network", "name", n, "ref", c.Name)

			err := d.c.NetworkDisconnect(context.Background(), n, cont.ID, true)
			if err != nil {
				d.l.Warn("Unable to remove container from the network", "name", n, "ref", c.Name, "error", err)
			}
		}
	}

	err = d.c.ContainerStart(context.Background(), cont.ID, container.StartOptions{})
	if err != nil {
		return "", err
	}

	return cont.ID, nil
}

// FindImageInLocalRegistry returns the id for an image in the local registry that
// matches the given tag. If no image is found an empty string is returned.
func (d *DockerTasks) FindImageInLocalRegistry(img dtypes.Image) (string, error) {
	ids, err := d.findImagesInLocalRegistry(img.Name)
	if err != nil {
		return "", err
	}

	if len(ids) > 0 {
		return ids[0], nil
	}

	return "", nil
}

// findImagesInLocalRegistry returns the ids of images in the local registry
// matching the filter
func (d *DockerTasks) findImagesInLocalRegistry(filter string) ([]string, error) {
	ids := []string{}

	args := filters.NewArgs()
	args.Add("reference", filter)

	sum, err := d.c.ImageList(context.Background(), image.ListOptions{Filters: args})
	if err != nil {
		return nil, fmt.Errorf("unable to list images in local Docker cache: %w", err)
	}

	if len(sum) > 0 {
		for _, i := range sum {
			ids = append(ids, i.ID)
		}

		return ids, nil
	}

	// check the canonical name as this might be a podman docker server
	in := makeImageCanonical(filter)
	args = filters.NewArgs()
	args.Add("reference", in)

	sum, err = d.c.ImageList(context.Background(), image.ListOptions{Filters: args})
	if err != nil {
		return nil, fmt.Errorf("unable to list images in local Docker cache: %w", err)
	}

	if len(sum) > 0 {
		for _, i := range sum {
			ids = append(ids, i.ID)
		}

		return ids, nil
	}

	return nil, nil
}

// PullImage pulls a Docker image from a remote repo
func (d *DockerTasks) PullImage(img dtypes.Image, force bool) error {
	in := makeImageCanonical(img.Name)

	// only pull if image is not in current registry so check to see if the image is present
	// if force then skip this check
	if !force && !d.force {
		id, err := d.FindImageInLocalRegistry(img)
		if err != nil {
			return err
		}

		// found the image do nothing
		if id != "" {
			return nil
		}
	}

	ipo := image.PullOptions{}

	// if the username and password is not null make an authenticated
	// image pull
	if img.Username != "" && img.Password != "" {
		ipo.RegistryAuth = createRegistryAuth(img.Username, img.Password)
	}

	d.l.Debug("Pulling image", "image", in)

	out, err := d.c.ImagePull(context.Background(), in, ipo)
	if err != nil {
		return fmt.Errorf("error pulling image %s: %w", in, err)
	}

	// update the image log
	err = d.il.Log(in, images.ImageTypeDocker)
	if err != nil {
		d.l.Error("Unable to add image name to cache", "error", err)
	}

	// write the output to the debug log
	io.Copy(d.l.StandardWriter(), out)

	return nil
}

// RemoveImage removes the image with the given id from the local cache
func (d *DockerTasks) RemoveImage(id string) error {
	_, err := d.c.ImageRemove(context.Background(), id, image.RemoveOptions{Force: true, PruneChildren: true})

	return err
}

// FindContainerIDs returns the Container IDs for the given identifier
func (d *DockerTasks) FindContainerIDs(fqdn string) ([]string, error) {
	args := filters.NewArgs()
	// By default Docker will wildcard searches, use regex to return the absolute
	args.Add("name", fmt.Sprintf("^%s$", fqdn))

	opts := container.ListOptions{Filters: args, All: true}

	cl, err := d.c.ContainerList(context.Background(), opts)
	if err != nil || cl == nil {
		return nil, err
	}

	if len(cl) > 0 {
		ids := []string{}
		for _, c := range cl {
			ids = append(ids, c.ID)
		}

		return ids, nil
	}

	return nil, nil
}

// FindContainersByLabels returns the containers matching all the given labels,
// stopped containers are included
func (d *DockerTasks) FindContainersByLabels(labels map[string]string) ([]dtypes.ClusterContainer, error) {
	args := filters.NewArgs()
	for k, v := range labels {
		args.Add("label", fmt.Sprintf("%s=%s", k, v))
	}

	cl, err := d.c.ContainerList(context.Background(), container.ListOptions{Filters: args, All: true})
	if err != nil {
		return nil, fmt.Errorf("unable to list containers: %w", err)
	}

	containers := []dtypes.ClusterContainer{}
	for _, c := range cl {
		cc := dtypes.ClusterContainer{
			ID:     c.ID,
			State:  c.State,
			Status: c.Status,
			Image:  c.Image,
			Labels: c.Labels,
		}

		if len(c.Names) > 0 {
			cc.Name = strings.TrimPrefix(c.Names[0], "/")
		}

		for _, p := range c.Ports {
			port := dtypes.Port{
				Local:    fmt.Sprintf("%d", p.PrivatePort),
				Protocol: p.Type,
			}

			if p.PublicPort > 0 {
				port.Host = fmt.Sprintf("%d", p.PublicPort)
			}

			cc.Ports = append(cc.Ports, port)
		}

		containers = append(containers, cc)
	}

	return containers, nil
}

// RemoveContainer with the given id
func (d *DockerTasks) RemoveContainer(id string, force bool) error {
	var err error
	if !force {
		// try and shutdown graceful
		timeout := 30
		err = d.c.ContainerStop(context.Background(), id, container.StopOptions{Timeout: &timeout})
		if err == nil {
			d.l.Debug("Container stopped gracefully, removing", "container", id)

			err = d.c.ContainerRemove(context.Background(), id, container.RemoveOptions{Force: false, RemoveVolumes: true})
			if err == nil {
				return nil
			}
		}

		d.l.Debug("Unable to stop container gracefully, trying force", "container", id, "error", err)
	}

	// unable to shutdown graceful try force
	d.l.Debug("Forcefully remove", "container", id)
	return d.c.ContainerRemove(context.Background(), id, container.RemoveOptions{Force: true, RemoveVolumes: true})
}

// CreateFileInContainer creates a file with the given contents and name in the container containerID and
// stores it in the container at the directory path.
func (d *DockerTasks) CreateFileInContainer(containerID, contents, filename, path string) error {
	tmpFile := fmt.Sprintf("%s/%s", os.TempDir(), filename)

	err := os.WriteFile(tmpFile, []byte(contents), 0755)
	if err != nil {
		return fmt.Errorf("unable to write contents to temporary file: %w", err)
	}

	defer func() {
		os.Remove(tmpFile)
	}()

	err = d.CopyFileToContainer(containerID, tmpFile, path)
	if err != nil {
		return err
	}

	return nil
}

// CopyFileToContainer copies the file at path filename to the container containerID and
// stores it in the container at the directory path.
func (d *DockerTasks) CopyFileToContainer(containerID, filename, path string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer f.Close()

	// CopyToContainer expects a tar which has individual file entries
	// if we write the original file the output will not be a single file
	// but the contents of the tar, to bypass this add the file to a tar
	tmpTarFile, err := os.CreateTemp("", "")
	if err != nil {
		return fmt.Errorf("unable to create temporary file for tar archive: %w", err)
	}

	defer func() {
		tmpTarFile.Close()
		os.Remove(tmpTarFile.Name())
	}()

	ta := tar.NewWriter(tmpTarFile)

	fi, _ := f.Stat()

	hdr, err := tar.FileInfoHeader(fi, fi.Name())
	if err != nil {
		return fmt.Errorf("unable to create file info header for tar: %w", err)
	}

	// write the header to the tar file, this has to happen before the file
	err = ta.WriteHeader(hdr)
	if err != nil {
		return fmt.Errorf("unable to write tar header: %w", err)
	}

	_, err = io.Copy(ta, f)
	if err != nil {
		return fmt.Errorf("unable to copy file to tar archive: %w", err)
	}

	ta.Close()

	// reset the file seek so we can copy to the container
	tmpTarFile.Seek(0, 0)

	err = d.c.CopyToContainer(context.Background(), containerID, path, tmpTarFile, container.CopyToContainerOptions{})
	if err != nil {
		return fmt.Errorf("unable to copy file to container: %w", err)
	}

	return nil
}

// ExecuteCommand allows the execution of commands in a running docker container
// id is the id of the container to execute the command in
// command is a slice of strings to execute
// writer [optional] will be used to write any output from the command execution.
func (d *DockerTasks) ExecuteCommand(id string, command []string, env []string, workingDir string, user, group string, timeout int, writer io.Writer) (int, error) {
	// set the user details
	if user != "" && group != "" {
		user = fmt.Sprintf("%s:%s", user, group)
	}

	execid, err := d.c.ContainerExecCreate(context.Background(), id, container.ExecOptions{
		Cmd:          command,
		AttachStdout: true,
		AttachStderr: true,
		Env:          env,
		WorkingDir:   workingDir,
		User:         user,
	})
	if err != nil {
		return defaultExitCode, fmt.Errorf("unable to create container exec: %w", err)
	}

	// get logs from an attach
	stream, err := d.c.ContainerExecAttach(context.Background(), execid.ID, container.ExecAttachOptions{})
	if err != nil {
		return defaultExitCode, fmt.Errorf("unable to attach logging to exec process: %w", err)
	}

	defer stream.Close()

	streamContext, cancelStream := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancelStream()

	// if we have a writer stream the logs from the container to the writer
	if writer != nil {
		ttyOut := streams.NewOut(writer)
		ttyErr := streams.NewOut(writer)

		errCh := make(chan error, 1)

		go func() {
			defer close(errCh)
			errCh <- func() error {
				streamer := streams.NewHijackedStreamer(nil, ttyOut, nil, ttyOut, ttyErr, stream, false, "")

				return streamer.Stream(streamContext)
			}()
		}()

		if err := <-errCh; err != nil {
			d.l.Error("Unable to hijack exec stream", "error", err)
			return defaultExitCode, err
		}
	}

	// loop until the container finishes execution
	for {
		i, err := d.c.ContainerExecInspect(context.Background(), execid.ID)
		if err != nil {
			return defaultExitCode, fmt.Errorf("unable to determine status of exec process: %w", err)
		}

		if !i.Running {
			if i.ExitCode == 0 {
				return i.ExitCode, nil
			}

			return i.ExitCode, fmt.Errorf("container exec failed with exit code %d", i.ExitCode)
		}

		time.Sleep(d.defaultWait)
	}
}

// ExecuteDetached starts a command in a running container and returns without
// waiting for completion, used to launch the long running service processes
// on cluster nodes
func (d *DockerTasks) ExecuteDetached(id string, command []string, env []string) error {
	execid, err := d.c.ContainerExecCreate(context.Background(), id, container.ExecOptions{
		Cmd:    command,
		Env:    env,
		Detach: true,
	})
	if err != nil {
		return fmt.Errorf("unable to create container exec: %w", err)
	}

	err = d.c.ContainerExecStart(context.Background(), execid.ID, container.ExecStartOptions{Detach: true})
	if err != nil {
		return fmt.Errorf("unable to start exec process: %w", err)
	}

	return nil
}

// CreateShell creates an interactive shell inside a container
// https://github.com/docker/cli/blob/ae1618713f83e7da07317d579d0675f578de22fa/cli/command/container/exec.go
func (d *DockerTasks) CreateShell(id string, command []string, stdin io.ReadCloser, stdout io.Writer, stderr io.Writer) error {
	execid, err := d.c.ContainerExecCreate(context.Background(), id, container.ExecOptions{
		Cmd:          command,
		WorkingDir:   "/",
		AttachStdin:  true,
		AttachStdout: true,
		AttachStderr: true,
		Tty:          true,
	})
	if err != nil {
		return fmt.Errorf("unable to create container exec: %w", err)
	}

	resp, err := d.c.ContainerExecAttach(context.Background(), execid.ID, container.ExecAttachOptions{Tty: true})
	if err != nil {
		return err
	}

	// wrap the standard streams
	ttyIn := streams.NewIn(stdin)
	ttyOut := streams.NewOut(stdout)
	ttyErr := streams.NewOut(stderr)

	defer resp.Close()

	errCh := make(chan error, 1)

	streamContext, streamCancel := context.WithCancel(context.Background())

	go func() {
		defer close(errCh)
		errCh <- func() error {
			streamer := streams.NewHijackedStreamer(ttyIn, ttyOut, ttyIn, ttyOut, ttyErr, resp, true, "")

			return streamer.Stream(streamContext)
		}()
	}()

	// init the TTY
	d.initTTY(execid.ID, ttyOut)

	// monitor for TTY changes
	sigchan := make(chan os.Signal, 1)
	gosignal.Notify(sigchan, signal.SIGWINCH)
	go func() {
		for range sigchan {
			d.resizeTTY(execid.ID, ttyOut)
		}
	}()

	// loop until the container finishes execution
	for {
		i, err := d.c.ContainerExecInspect(context.Background(), execid.ID)
		if err != nil {
			streamCancel()
			return fmt.Errorf("unable to determine status of exec process: %w", err)
		}

		if !i.Running {
			if i.ExitCode == 0 {
				streamCancel()
				return nil
			}

			streamCancel()
			return fmt.Errorf("container exec failed with exit code %d", i.ExitCode)
		}

		time.Sleep(d.defaultWait)
	}
}

func (d *DockerTasks) initTTY(id string, out *streams.Out) error {
	if err := d.resizeTTY(id, out); err != nil {
		go func() {
			var err error
			for retry := 0; retry < 5; retry++ {
				time.Sleep(10 * time.Millisecond)
				if err = d.resizeTTY(id, out); err == nil {
					break
				}
			}
			if err != nil {
				d.l.Error("Unable to resize TTY use default", "error", err)
			}
		}()
	}

	return nil
}

func (d *DockerTasks) resizeTTY(id string, out *streams.Out) error {
	h, w := out.GetTtySize()

	if h == 0 && w == 0 {
		return nil
	}

	options := container.ResizeOptions{
		Height: uint(h),
		Width:  uint(w),
	}

	// resize the container
	err := d.c.ContainerExecResize(context.Background(), id, options)
	if err != nil {
		return err
	}

	return nil
}

// CreateNetwork creates a bridge network with the given name, a network
// which already exists is reused so that clusters can share a network with
// other containers
func (d *DockerTasks) CreateNetwork(name string) (string, error) {
	nets, err := d.getNetworks(name)
	if err != nil {
		return "", fmt.Errorf("unable to list networks: %w", err)
	}

	if len(nets) > 0 {
		d.l.Debug("Network exists, reusing", "name", name)
		return nets[0].ID, nil
	}

	// check the network drivers, if bridge is available use bridge, else use nat
	d.l.Debug("Attempting to create network using bridge plugin", "name", name)
	id, err := d.createNetworkWithDriver(name, "bridge")
	if err != nil {
		d.l.Debug("Unable to create using bridge, fall back to use nat plugin", "name", name, "error", err)
		// fall back to nat
		id, err = d.createNetworkWithDriver(name, "nat")
		if err != nil {
			return "", err
		}
	}

	return id, nil
}

func (d *DockerTasks) createNetworkWithDriver(name, driver string) (string, error) {
	opts := network.CreateOptions{
		Driver: driver,
		Labels: map[string]string{
			createdByLabel: createdByValue,
		},
		Attachable: true,
	}

	resp, err := d.c.NetworkCreate(context.Background(), name, opts)
	if err != nil {
		return "", fmt.Errorf("unable to create network %s: %w", name, err)
	}

	return resp.ID, nil
}

// FindNetwork returns the network with the given name
func (d *DockerTasks) FindNetwork(name string) (dtypes.NetworkAttachment, error) {
	nets, err := d.getNetworks(name)
	if err != nil {
		return dtypes.NetworkAttachment{}, err
	}

	for _, n := range nets {
		if n.Name == name {
			return dtypes.NetworkAttachment{
				ID:   n.ID,
				Name: n.Name,
			}, nil
		}
	}

	return dtypes.NetworkAttachment{}, fmt.Errorf("a network with the name %s was not found", name)
}

// AttachNetwork attaches a container to a network, aliases are added as
// additional DNS names for the container on the network
func (d *DockerTasks) AttachNetwork(net, containerID string, aliases []string) error {
	d.l.Debug("Attaching container to network", "ref", containerID, "network", net)
	es := &network.EndpointSettings{NetworkID: net}

	// if we have network aliases defined, add them to the network connection
	if len(aliases) > 0 {
		es.Aliases = aliases
	}

	return d.c.NetworkConnect(context.Background(), net, containerID, es)
}

// RemoveNetwork removes the named network, networks which were not created
// by schemadock are left in place
func (d *DockerTasks) RemoveNetwork(name string) error {
	nets, err := d.getNetworks(name)
	if err != nil {
		return fmt.Errorf("unable to list networks: %w", err)
	}

	for _, n := range nets {
		if n.Name != name {
			continue
		}

		if n.Labels[createdByLabel] != createdByValue {
			d.l.Debug("Network was not created by schemadock, skipping remove", "name", name)
			return nil
		}

		// disconnect any containers still attached before removing
		summary, err := d.c.NetworkInspect(context.Background(), n.ID, network.InspectOptions{})
		if err != nil {
			return fmt.Errorf("unable to inspect network %s: %w", name, err)
		}

		for containerID := range summary.Containers {
			err := d.c.NetworkDisconnect(context.Background(), n.ID, containerID, true)
			if err != nil {
				return fmt.Errorf("unable to disconnect container from network: %w", err)
			}
		}

		d.l.Debug("Removing network", "name", name)
		return d.c.NetworkRemove(context.Background(), n.ID)
	}

	return nil
}

func (d *DockerTasks) getNetworks(name string) ([]network.Summary, error) {
	args := filters.NewArgs()
	args.Add("name", name)
	return d.c.NetworkList(context.Background(), network.ListOptions{Filters: args})
}

// publishedPorts defines a Docker published port
type publishedPorts struct {
	ExposedPorts map[nat.Port]struct{}
	PortBindings map[nat.Port][]nat.PortBinding
}

// createPublishedPorts converts a list of types.Port to Docker publishedPorts type
func createPublishedPorts(ps []dtypes.Port) publishedPorts {
	pp := publishedPorts{
		ExposedPorts: make(map[nat.Port]struct{}, 0),
		PortBindings: make(map[nat.Port][]nat.PortBinding, 0),
	}

	for _, p := range ps {
		if p.Protocol == "" {
			p.Protocol = "tcp"
		}

		dp, _ := nat.NewPort(p.Protocol, p.Local)
		pp.ExposedPorts[dp] = struct{}{}

		pb := []nat.PortBinding{
			{
				HostIP:   "0.0.0.0",
				HostPort: p.Host,
			},
		}

		pp.PortBindings[dp] = pb
	}

	return pp
}

// credentials are a json string and need to be base64 encoded
func createRegistryAuth(username, password string) string {
	return base64.StdEncoding.EncodeToString(
		[]byte(
			fmt.Sprintf(`{"Username": "%s", "Password": "%s"}`, username, password),
		),
	)
}

// makeImageCanonical makes sure the image reference uses full canonical name i.e.
// consul:1.6.1 -> docker.io/library/consul:1.6.1
func makeImageCanonical(image string) string {
	imageParts := strings.Split(image, "/")
	switch len(imageParts) {
	case 1:
		return fmt.Sprintf("docker.io/library/%s", imageParts[0])
	case 2:
		return fmt.Sprintf("docker.io/%s/%s", imageParts[0], imageParts[1])
	}

	return image
}
