package testutils

import (
	"os"
	"testing"

	"github.com/schemadock/schemadock/pkg/utils"
)

// SetupHome points the home folder at a temporary directory so tests do
// not read or write the real image cache and topology folders
func SetupHome(t *testing.T) string {
	dir, err := os.MkdirTemp("", "")
	if err != nil {
		panic(err)
	}

	home := os.Getenv(utils.HomeEnvName())
	os.Setenv(utils.HomeEnvName(), dir)

	t.Cleanup(func() {
		os.Setenv(utils.HomeEnvName(), home)
		os.RemoveAll(dir)
	})

	return dir
}
