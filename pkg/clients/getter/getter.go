// Package getter fetches remote topology descriptors using the go-getter
// url syntax, fetched descriptors are cached in the local topology folder.
package getter

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-getter"
)

// Getter is an interface which defines interactions for
// downloading remote folders
type Getter interface {
	Get(uri, dst string) error
	SetForce(force bool)
}

// GetterImpl is a concrete implementation of the Getter interface
type GetterImpl struct {
	force bool
	get   func(uri, dst, pwd string) error
}

// NewGetter creates a new Getter
func NewGetter(force bool) *GetterImpl {
	gi := &GetterImpl{
		force,
		func(uri, dst, pwd string) error {
			c := &getter.Client{
				Ctx:     context.Background(),
				Src:     uri,
				Dst:     dst,
				Pwd:     pwd,
				Mode:    getter.ClientModeAny,
				Options: []getter.ClientOption{},
			}

			return c.Get()
		},
	}

	return gi
}

// SetForce sets the force flag causing all downloads to overwrite the destination
func (g *GetterImpl) SetForce(force bool) {
	g.force = force
}

// Get attempts to retrieve a folder from a remote location and stores it
// at the destination.
//
// If force was set to true when creating a Getter then the destination
// folder will automatically be overwritten.
func (g *GetterImpl) Get(uri, dst string) error {
	// check to see if a folder exists at the destination and exit if force
	// is not set
	_, err := os.Stat(dst)
	if err == nil {
		if !g.force {
			return nil
		}

		err := os.RemoveAll(dst)
		if err != nil {
			return fmt.Errorf("destination folder exists, unable to delete: %w", err)
		}
	}

	pwd, err := os.Getwd()
	if err != nil {
		return err
	}

	err = g.get(uri, dst, pwd)
	if err != nil {
		return fmt.Errorf("unable to fetch files from %s: %w", uri, err)
	}

	return nil
}
