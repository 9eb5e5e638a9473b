package clients

import (
	"fmt"
	"time"

	"github.com/schemadock/schemadock/pkg/clients/container"
	"github.com/schemadock/schemadock/pkg/clients/getter"
	"github.com/schemadock/schemadock/pkg/clients/http"
	"github.com/schemadock/schemadock/pkg/clients/images"
	"github.com/schemadock/schemadock/pkg/clients/logger"
	"github.com/schemadock/schemadock/pkg/utils"
)

type Clients struct {
	Docker         container.Docker
	ContainerTasks container.ContainerTasks
	HTTP           http.HTTP
	Logger         logger.Logger
	Getter         getter.Getter
	ImageLog       images.ImageLog
}

// GenerateClients creates the various clients for creating and destroying
// cluster resources
func GenerateClients(l logger.Logger) (*Clients, error) {
	dc, err := container.NewDocker()
	if err != nil {
		return nil, fmt.Errorf("unable to create Docker client: %w", err)
	}

	hc := http.NewHTTP(1*time.Second, l)

	gt := getter.NewGetter(false)

	il := images.NewImageFileLog(utils.ImageCacheLog())

	ct, err := container.NewDockerTasks(dc, il, l)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to the container engine, is Docker running?: %w", err)
	}

	return &Clients{
		ContainerTasks: ct,
		Docker:         dc,
		HTTP:           hc,
		Logger:         l,
		Getter:         gt,
		ImageLog:       il,
	}, nil
}
