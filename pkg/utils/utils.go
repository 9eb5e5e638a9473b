package utils

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/kennygrant/sanitize"
)

// LocalTLD is the domain suffix appended to container names
const LocalTLD = "schemadock.run"

var ErrNameExceedsMaxLength = fmt.Errorf("name exceeds the max length of 128 characters")
var ErrNameContainsInvalidCharacters = fmt.Errorf("name contains invalid characters, characters must be either a-z, A-Z, 0-9, -, _")

// ValidateName ensures that the name for a node or a node group is within
// certain boundaries
// Valid characters: [a-z] [A-Z] _ - [0-9]
// Max length: 128
func ValidateName(name string) (bool, error) {
	// check the length
	if len(name) > 128 {
		return false, ErrNameExceedsMaxLength
	}

	r := regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)
	ok := r.MatchString(name)
	if !ok {
		return false, ErrNameContainsInvalidCharacters
	}

	return true, nil
}

// ReplaceNonURIChars replaces any characters in the name which
// can not be used in a URI
func ReplaceNonURIChars(s string) (string, error) {
	reg, err := regexp.Compile(`[^a-zA-Z0-9\-\.]+`)
	if err != nil {
		return "", err
	}

	ret := reg.ReplaceAllString(s, "-")

	if strings.HasPrefix(ret, "-") {
		return ret[1:], nil
	}

	return ret, nil
}

// FQDN generates the full qualified container name for a node,
// hostnames are scoped to the cluster network
func FQDN(name, network string) string {
	fqdn := fmt.Sprintf("%s.%s.%s", name, network, LocalTLD)

	// ensure that the name is valid for URI schema
	cleanName, err := ReplaceNonURIChars(fqdn)
	if err != nil {
		panic(err)
	}

	return cleanName
}

// HomeFolder returns the users homefolder this will be $HOME on windows and mac and
// USERPROFILE on windows
func HomeFolder() string {
	return os.Getenv(HomeEnvName())
}

// HomeEnvName returns the environment variable used to store the home path
func HomeEnvName() string {
	if runtime.GOOS == "windows" {
		return "USERPROFILE"
	}

	return "HOME"
}

// SchemadockHome returns the location of the schemadock
// folder, usually $HOME/.schemadock
func SchemadockHome() string {
	return filepath.Join(HomeFolder(), "/.schemadock")
}

// TopologiesFolder returns the root folder used to cache fetched
// topology descriptors
func TopologiesFolder() string {
	return filepath.Join(SchemadockHome(), "topologies")
}

// ImageCacheLog returns the location of the image cache log
func ImageCacheLog() string {
	return filepath.Join(SchemadockHome(), "images.log")
}

// TopologyLocalFolder returns the full storage path
// for the given topology URI
func TopologyLocalFolder(uri string) string {
	// we might have a querystring reference such has github.com/abc/cds?ref=dfdf&dfdf
	// replace these separators with / before sanitizing
	uri = strings.Replace(uri, "?", "/", -1)

	uri = sanitize.Path(uri)

	return filepath.Join(TopologiesFolder(), uri)
}

// CreateFolders creates the required file structure in the users home directory
func CreateFolders() {
	os.MkdirAll(TopologiesFolder(), os.FileMode(0755))
}

// IsLocalFolder tests if the given path is a localfolder and can
// exist in the current filesystem
func IsLocalFolder(path string) bool {
	path, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	f, err := os.Stat(path)
	if err != nil || f == nil {
		return false
	}

	return true
}

// GetDockerHost returns the location of the Docker API depending on the platform
func GetDockerHost() string {
	if dh := os.Getenv("DOCKER_HOST"); dh != "" {
		return dh
	}

	return "/var/run/docker.sock"
}

// GetDockerIP returns the location of the Docker Server IP address
func GetDockerIP() string {
	if dh := os.Getenv("DOCKER_HOST"); dh != "" {
		if strings.HasPrefix(dh, "tcp://") {
			u, err := url.Parse(dh)
			if err == nil {
				host := strings.Split(u.Host, ":")[0]
				ip, err := net.LookupHost(host)
				if err == nil && len(ip) > 0 {
					return ip[0]
				}
			}
		}
	}

	sp, _ := GetLocalIPAndHostname()

	return sp
}

// GetHostname returns the hostname for the current machine
func GetHostname() string {
	hn, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hn
}

// GetLocalIPAndHostname returns the IP Address of the machine
func GetLocalIPAndHostname() (string, string) {
	netInterfaceAddresses, err := net.InterfaceAddrs()
	if err != nil {
		return "", ""
	}

	for _, netInterfaceAddress := range netInterfaceAddresses {
		networkIP, ok := netInterfaceAddress.(*net.IPNet)
		if ok && !networkIP.IP.IsLoopback() && networkIP.IP.To4() != nil {
			ip := networkIP.IP.String()
			return ip, GetHostname()
		}
	}

	return "127.0.0.1", "localhost"
}
