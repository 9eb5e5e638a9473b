package images

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupImageLogTests(t *testing.T, data string) string {
	f, err := os.CreateTemp("", "*.cache")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	f.WriteString(data)

	return f.Name()
}

func TestImageLogRead(t *testing.T) {
	fn := setupImageLogTests(t, "confluent/kafka:4.0.0,Docker\nubuntu:latest,Vagrant\nconfluent/schema-registry:4.0.0,Docker")
	defer os.Remove(fn)

	i := NewImageFileLog(fn)
	list, err := i.Read(ImageTypeDocker)

	assert.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestImageWrite(t *testing.T) {
	fn := setupImageLogTests(t, "")
	defer os.Remove(fn)

	i := NewImageFileLog(fn)
	i.Log("confluent/kafka:4.0.0", ImageTypeDocker)

	list, err := i.Read(ImageTypeDocker)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestImageWriteOnlyNew(t *testing.T) {
	fn := setupImageLogTests(t, "confluent/kafka:4.0.0,Docker\n")
	defer os.Remove(fn)

	i := NewImageFileLog(fn)
	err := i.Log("confluent/kafka:4.0.0", ImageTypeDocker)

	assert.NoError(t, err)

	list, err := i.Read(ImageTypeDocker)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestImageClearDeletesCache(t *testing.T) {
	fn := setupImageLogTests(t, "confluent/kafka:4.0.0,Docker\n")

	i := NewImageFileLog(fn)
	err := i.Clear()
	assert.NoError(t, err)

	assert.NoFileExists(t, fn)
}
