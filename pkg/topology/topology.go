// Package topology defines the declarative description of a container
// cluster, node groups with default members and an image template, plus
// the parameters a user can override. A topology is inert data, resolving
// it produces the concrete node to image assignments a runtime acts on.
package topology

import (
	"fmt"

	"github.com/distribution/reference"

	"github.com/schemadock/schemadock/pkg/utils"
)

// FileName is the well known name for a topology descriptor inside a
// directory
const FileName = "topology.yaml"

const (
	// ParamRegistry is a reserved parameter name, when set its value is
	// prefixed to every image reference as the registry host
	ParamRegistry = "registry"

	// ParamNamespace is a reserved parameter name, when set its value
	// replaces the namespace part of every image reference
	ParamNamespace = "namespace"

	// DefaultVersionParameter is the parameter used for the image tag when
	// a topology does not name one explicitly
	DefaultVersionParameter = "confluent-version"
)

// Topology describes a named cluster shape, the ordered node groups it is
// made of and the parameters which can be overridden at resolve time
type Topology struct {
	// Name of the topology, used to label created resources
	Name string `yaml:"name" json:"name"`

	// Description presented in command help output
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Groups is the ordered list of node groups in the cluster
	Groups []NodeGroup `yaml:"node_groups" json:"node_groups"`

	// Parameters declares the user overridable values and their defaults
	Parameters []Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`

	// VersionParameter names the parameter whose resolved value becomes
	// the image tag, defaults to "confluent-version"
	VersionParameter string `yaml:"version_parameter,omitempty" json:"version_parameter,omitempty"`
}

// NodeGroup is a named set of nodes which run the same image
type NodeGroup struct {
	// Name of the group, unique within the topology
	Name string `yaml:"name" json:"name"`

	// Nodes is the ordered default membership, hostnames of the nodes
	// created for this group
	Nodes []string `yaml:"nodes" json:"nodes"`

	// Image is the repository part of the image reference, the tag is
	// appended at resolve time
	Image string `yaml:"image" json:"image"`

	// Ports exposed by every node in the group
	Ports []string `yaml:"ports,omitempty" json:"ports,omitempty"`
}

// Parameter is a single user overridable value
type Parameter struct {
	// Name of the parameter, also the name of the CLI flag bound to it
	Name string `yaml:"name" json:"name"`

	// Default value used when no override is given
	Default string `yaml:"default" json:"default"`

	// Description presented in command help output
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Group returns the group with the given name
func (t *Topology) Group(name string) (NodeGroup, bool) {
	for _, g := range t.Groups {
		if g.Name == name {
			return g, true
		}
	}

	return NodeGroup{}, false
}

// PrimaryGroup returns the first declared group, the group the --nodes
// shorthand flag applies to
func (t *Topology) PrimaryGroup() NodeGroup {
	if len(t.Groups) == 0 {
		return NodeGroup{}
	}

	return t.Groups[0]
}

// Parameter returns the declared parameter with the given name
func (t *Topology) Parameter(name string) (Parameter, bool) {
	for _, p := range t.Parameters {
		if p.Name == name {
			return p, true
		}
	}

	return Parameter{}, false
}

func (t *Topology) versionParameter() string {
	if t.VersionParameter == "" {
		return DefaultVersionParameter
	}

	return t.VersionParameter
}

// Validate checks the structural invariants of the topology, group and
// node names must be unique and valid hostnames, every group needs at
// least one default member and a parsable image template
func (t *Topology) Validate() error {
	if t.Name == "" {
		return invalidConfig("topology has no name")
	}

	if ok, err := utils.ValidateName(t.Name); !ok {
		return ConfigurationError{Detail: fmt.Sprintf("invalid topology name %q", t.Name), Err: err}
	}

	if len(t.Groups) == 0 {
		return invalidConfig("topology %q defines no node groups", t.Name)
	}

	groups := map[string]bool{}
	nodes := map[string]bool{}
	for _, g := range t.Groups {
		if ok, err := utils.ValidateName(g.Name); !ok {
			return ConfigurationError{Detail: fmt.Sprintf("invalid node group name %q", g.Name), Err: err}
		}

		if groups[g.Name] {
			return invalidConfig("node group %q is defined more than once", g.Name)
		}
		groups[g.Name] = true

		if len(g.Nodes) == 0 {
			return invalidConfig("node group %q has no nodes", g.Name)
		}

		for _, n := range g.Nodes {
			if ok, err := utils.ValidateName(n); !ok {
				return ConfigurationError{Detail: fmt.Sprintf("invalid node name %q in group %q", n, g.Name), Err: err}
			}

			if nodes[n] {
				return invalidConfig("node %q is defined more than once", n)
			}
			nodes[n] = true
		}

		if g.Image == "" {
			return invalidConfig("node group %q has no image", g.Name)
		}

		if _, err := reference.ParseNormalizedNamed(g.Image); err != nil {
			return ConfigurationError{Detail: fmt.Sprintf("invalid image %q for node group %q", g.Image, g.Name), Err: err}
		}
	}

	params := map[string]bool{}
	for _, p := range t.Parameters {
		if ok, err := utils.ValidateName(p.Name); !ok {
			return ConfigurationError{Detail: fmt.Sprintf("invalid parameter name %q", p.Name), Err: err}
		}

		if params[p.Name] {
			return invalidConfig("parameter %q is defined more than once", p.Name)
		}
		params[p.Name] = true
	}

	if !params[t.versionParameter()] {
		return invalidConfig("version parameter %q is not declared in topology %q", t.versionParameter(), t.Name)
	}

	return nil
}
