package topology

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/distribution/reference"

	"github.com/schemadock/schemadock/pkg/utils"
)

// Overrides carries the host supplied values which are merged over the
// topology defaults at resolve time, the zero value resolves the topology
// exactly as declared
type Overrides struct {
	// Params maps parameter name to replacement value
	Params map[string]string

	// Groups maps node group name to replacement membership
	Groups map[string][]string
}

// Assignment binds a node hostname to the image it runs and the group
// which declared it
type Assignment struct {
	Hostname string   `json:"hostname"`
	Image    string   `json:"image"`
	Group    string   `json:"group"`
	Ports    []string `json:"ports,omitempty"`
}

// Resolved is the concrete form of a topology after overrides have been
// applied, one assignment per node in declaration order
type Resolved struct {
	Name    string       `json:"name"`
	Version string       `json:"version"`
	Nodes   []Assignment `json:"nodes"`
}

// Node returns the assignment for the given hostname
func (r *Resolved) Node(hostname string) (Assignment, bool) {
	for _, a := range r.Nodes {
		if a.Hostname == hostname {
			return a, true
		}
	}

	return Assignment{}, false
}

// Group returns the assignments belonging to the named group in order
func (r *Resolved) Group(name string) []Assignment {
	out := []Assignment{}
	for _, a := range r.Nodes {
		if a.Group == name {
			out = append(out, a)
		}
	}

	return out
}

// Resolve merges the given overrides with the declared defaults and
// returns the node to image assignments for the cluster. Resolve is a
// pure function, it never touches a container runtime and calling it
// twice with the same inputs returns the same result.
//
// An override referencing an undeclared parameter or node group, a
// version which is not valid semver, or a membership which breaks the
// unique hostname invariant all fail with a ConfigurationError.
func (t *Topology) Resolve(o Overrides) (*Resolved, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	params := map[string]string{}
	for _, p := range t.Parameters {
		params[p.Name] = p.Default
	}

	for k, v := range o.Params {
		if _, ok := params[k]; !ok {
			return nil, invalidConfig("no parameter named %q is declared in topology %q", k, t.Name)
		}

		params[k] = v
	}

	members := map[string][]string{}
	for _, g := range t.Groups {
		members[g.Name] = g.Nodes
	}

	for k, v := range o.Groups {
		if _, ok := members[k]; !ok {
			return nil, invalidConfig("no node group named %q is declared in topology %q", k, t.Name)
		}

		if len(v) == 0 {
			return nil, invalidConfig("node group %q can not be overridden with an empty node list", k)
		}

		members[k] = v
	}

	version := params[t.versionParameter()]
	if _, err := semver.NewVersion(version); err != nil {
		return nil, ConfigurationError{Detail: fmt.Sprintf("malformed version %q", version), Err: err}
	}

	r := &Resolved{Name: t.Name, Version: version}

	seen := map[string]bool{}
	for _, g := range t.Groups {
		image, err := imageRef(g.Image, params, version)
		if err != nil {
			return nil, err
		}

		for _, n := range members[g.Name] {
			if ok, verr := utils.ValidateName(n); !ok {
				return nil, ConfigurationError{Detail: fmt.Sprintf("invalid node name %q in group %q", n, g.Name), Err: verr}
			}

			if seen[n] {
				return nil, invalidConfig("node %q is assigned more than once", n)
			}
			seen[n] = true

			r.Nodes = append(r.Nodes, Assignment{
				Hostname: n,
				Image:    image,
				Group:    g.Name,
				Ports:    g.Ports,
			})
		}
	}

	return r, nil
}

// imageRef builds the full image reference for a group, the reserved
// registry and namespace parameters rewrite the repository and the
// resolved version becomes the tag
func imageRef(repo string, params map[string]string, version string) (string, error) {
	if ns := params[ParamNamespace]; ns != "" {
		parts := strings.Split(repo, "/")
		repo = fmt.Sprintf("%s/%s", ns, parts[len(parts)-1])
	}

	if reg := params[ParamRegistry]; reg != "" {
		repo = fmt.Sprintf("%s/%s", reg, repo)
	}

	ref := fmt.Sprintf("%s:%s", repo, version)
	if _, err := reference.ParseNormalizedNamed(ref); err != nil {
		return "", ConfigurationError{Detail: fmt.Sprintf("invalid image reference %q", ref), Err: err}
	}

	return ref, nil
}
