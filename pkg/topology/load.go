package topology

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a topology descriptor from the given path, the path can be
// the descriptor file itself or a directory containing a topology.yaml.
// The returned topology has been validated.
func Load(path string) (*Topology, error) {
	s, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read topology at %s: %w", path, err)
	}

	if s.IsDir() {
		path = filepath.Join(path, FileName)
	}

	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read topology file %s: %w", path, err)
	}

	return Parse(d)
}

// Parse unmarshals and validates a yaml topology descriptor
func Parse(d []byte) (*Topology, error) {
	t := &Topology{}
	err := yaml.Unmarshal(d, t)
	if err != nil {
		return nil, ConfigurationError{Detail: "unable to parse topology", Err: err}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}
