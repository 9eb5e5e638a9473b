package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatesNameWithValidCharacters(t *testing.T) {
	ok, err := ValidateName("registry-1")

	assert.True(t, ok)
	assert.NoError(t, err)
}

func TestValidatesNameWithInvalidCharacters(t *testing.T) {
	ok, err := ValidateName("registry.1")

	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNameContainsInvalidCharacters)
}

func TestValidatesNameWithExcessiveLength(t *testing.T) {
	ok, err := ValidateName(strings.Repeat("a", 129))

	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNameExceedsMaxLength)
}

func TestFQDNScopesNameToNetwork(t *testing.T) {
	fq := FQDN("registry-1", "schemadock")

	assert.Equal(t, "registry-1.schemadock.schemadock.run", fq)
}

func TestFQDNReplacesInvalidChars(t *testing.T) {
	fq := FQDN("registry_1", "schemadock")

	assert.Equal(t, "registry-1.schemadock.schemadock.run", fq)
}

func TestArgIsLocalRelativeFolder(t *testing.T) {
	is := IsLocalFolder("./")

	assert.True(t, is)
}

func TestArgIsLocalAbsFolder(t *testing.T) {
	is := IsLocalFolder("/tmp")

	assert.True(t, is)
}

func TestArgIsFolderNotExists(t *testing.T) {
	is := IsLocalFolder("/dfdfdf")

	assert.False(t, is)
}

func TestArgIsNotFolder(t *testing.T) {
	is := IsLocalFolder("github.com/")

	assert.False(t, is)
}

func TestTopologyLocalFolderSanitizesURI(t *testing.T) {
	dir := TopologyLocalFolder("github.com/org/repo?ref=v1")

	assert.Contains(t, dir, "topologies")
	assert.NotContains(t, dir, "?")
}
