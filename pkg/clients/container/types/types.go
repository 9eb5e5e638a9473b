package types

// Container defines a container to be created for a cluster node
type Container struct {
	Name        string
	Hostname    string
	Networks    []NetworkAttachment
	Image       *Image
	Entrypoint  []string
	Command     []string
	Environment map[string]string
	Labels      map[string]string
	Volumes     []Volume
	Ports       []Port

	// Privileged runs the container with extended capabilities, cluster
	// nodes run an init system and require this
	Privileged bool
}

type NetworkAttachment struct {
	ID      string
	Name    string
	Aliases []string
}

// Volume defines a folder to mount to the Container
type Volume struct {
	Source      string
	Destination string
	Type        string
	ReadOnly    bool
}

// Port is a port mapping, when Host is empty the container port is
// published to an ephemeral host port
type Port struct {
	Local    string
	Host     string
	Protocol string
}

// Image defines a docker image used by a cluster node
type Image struct {
	ID   string
	Name string
	// Username is the Docker registry user to use for private repositories
	Username string
	// Password is the Docker registry password to use for private repositories
	Password string
}

// ClusterContainer is the observed state of a node container
type ClusterContainer struct {
	ID     string
	Name   string
	State  string
	Status string
	Image  string
	Labels map[string]string
	Ports  []Port
}
