package container

import (
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/schemadock/schemadock/pkg/clients/container/mocks"
	dtypes "github.com/schemadock/schemadock/pkg/clients/container/types"
	imocks "github.com/schemadock/schemadock/pkg/clients/images/mocks"
	"github.com/schemadock/schemadock/pkg/clients/logger"
	"github.com/schemadock/schemadock/testutils"
)

func setupImagePullMocks() (*mocks.MockDocker, *imocks.ImageLog) {
	md := &mocks.MockDocker{}
	md.On("ServerVersion", mock.Anything).Return(types.Version{}, nil)
	md.On("Info", mock.Anything).Return(system.Info{Driver: StorageDriverOverlay2}, nil)
	md.On("ImageList", mock.Anything, mock.Anything).Return(nil, nil)
	md.On("ImagePull", mock.Anything, mock.Anything, mock.Anything).Return(
		io.NopCloser(strings.NewReader("hello world")),
		nil,
	)

	mic := &imocks.ImageLog{}
	mic.On("Log", mock.Anything, mock.Anything).Return(nil)

	return md, mic
}

func createImagePullConfig() (dtypes.Image, *mocks.MockDocker, *imocks.ImageLog) {
	ic := dtypes.Image{
		Name: "confluent/schema-registry:4.0.0",
	}

	md, mic := setupImagePullMocks()
	return ic, md, mic
}

func setupImagePull(t *testing.T, ic dtypes.Image, md *mocks.MockDocker, mic *imocks.ImageLog, force bool) {
	p, _ := NewDockerTasks(md, mic, logger.NewTestLogger(t))

	err := p.PullImage(ic, force)
	assert.NoError(t, err)
}

func TestPullImageWhenNOTCached(t *testing.T) {
	ic, md, mic := createImagePullConfig()
	setupImagePull(t, ic, md, mic, false)

	// test calls list image with the given image reference
	args := filters.NewArgs(filters.KeyValuePair{Key: "reference", Value: ic.Name})
	md.AssertCalled(t, "ImageList", mock.Anything, image.ListOptions{Filters: args})

	// test pulls image replacing the short name with the canonical registry name
	md.AssertCalled(t, "ImagePull", mock.Anything, makeImageCanonical(ic.Name), image.PullOptions{})

	// test adds to the cache log
	mic.AssertCalled(t, "Log", "docker.io/confluent/schema-registry:4.0.0", mock.Anything)
}

func TestPullImageWithCredentialsWhenNOTCached(t *testing.T) {
	ic, md, mic := createImagePullConfig()
	ic.Username = "clanscombe"
	ic.Password = "S3cur1t11"

	setupImagePull(t, ic, md, mic, false)

	// test calls list image with the given image reference
	args := filters.NewArgs(filters.KeyValuePair{Key: "reference", Value: ic.Name})
	md.AssertCalled(t, "ImageList", mock.Anything, image.ListOptions{Filters: args})

	// test pulls image adding credentials to the image pull
	ipo := image.PullOptions{RegistryAuth: createRegistryAuth(ic.Username, ic.Password)}
	md.AssertCalled(t, "ImagePull", mock.Anything, makeImageCanonical(ic.Name), ipo)
}

func TestPullImageCreatesValidCredentials(t *testing.T) {
	ic, md, mic := createImagePullConfig()
	ic.Username = "clanscombe"
	ic.Password = "S3cur1t11"

	setupImagePull(t, ic, md, mic, false)

	ipo := testutils.GetCalls(&md.Mock, "ImagePull")[0].Arguments[2].(image.PullOptions)

	d, err := base64.StdEncoding.DecodeString(ipo.RegistryAuth)
	assert.NoError(t, err)
	assert.Equal(t, `{"Username": "clanscombe", "Password": "S3cur1t11"}`, string(d))
}

func TestPullImageDoesNothingWhenCached(t *testing.T) {
	ic, md, mic := createImagePullConfig()

	// remove the default image list which returns 0 cached images
	testutils.RemoveOn(&md.Mock, "ImageList")
	md.On("ImageList", mock.Anything, mock.Anything).Return([]image.Summary{{ID: "abc"}}, nil)

	setupImagePull(t, ic, md, mic, false)

	md.AssertNotCalled(t, "ImagePull", mock.Anything, mock.Anything, mock.Anything)
	mic.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

func TestPullImageAlwaysWhenForce(t *testing.T) {
	ic, md, mic := createImagePullConfig()

	setupImagePull(t, ic, md, mic, true)

	md.AssertNotCalled(t, "ImageList", mock.Anything, mock.Anything)
	md.AssertCalled(t, "ImagePull", mock.Anything, mock.Anything, mock.Anything)
	mic.AssertCalled(t, "Log", mock.Anything, mock.Anything)
}

func TestPullImageAlwaysWhenGlobalForce(t *testing.T) {
	ic, md, mic := createImagePullConfig()

	p, _ := NewDockerTasks(md, mic, logger.NewTestLogger(t))
	p.SetForcePull(true)

	err := p.PullImage(ic, false)
	assert.NoError(t, err)

	md.AssertNotCalled(t, "ImageList", mock.Anything, mock.Anything)
	md.AssertCalled(t, "ImagePull", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindImageInLocalRegistryChecksCanonicalName(t *testing.T) {
	_, md, mic := createImagePullConfig()

	p, _ := NewDockerTasks(md, mic, logger.NewTestLogger(t))

	id, err := p.FindImageInLocalRegistry(dtypes.Image{Name: "confluent/kafka:4.0.0"})
	assert.NoError(t, err)
	assert.Equal(t, "", id)

	// the image list is checked with the short name first then the
	// canonical name for podman compatibility
	md.AssertNumberOfCalls(t, "ImageList", 2)

	args := testutils.GetCalls(&md.Mock, "ImageList")[1].Arguments[1].(image.ListOptions)
	assert.Equal(t, "docker.io/confluent/kafka:4.0.0", args.Filters.Get("reference")[0])
}
