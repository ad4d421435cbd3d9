package docker

import (
	"context"
	"fmt"
	"net"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"

	"github.com/shinji-kodama/paramobj/internal/model"
)

// defaultPingTimeout is the maximum duration to wait for a Docker daemon
// response during a Ping operation. Docker Desktop on macOS answers more
// slowly than a native Linux daemon, so the bound is a few seconds rather
// than milliseconds.
const defaultPingTimeout = 5 * time.Second

// Client wraps the Docker Engine SDK client. It locates the daemon socket
// on Linux, macOS and Windows, checks that the daemon answers, and reads
// container labels for the options loader.
//
// Usage:
//
//	c, err := docker.NewClient()
//	if err != nil { /* handle */ }
//	defer c.Close()
//	if err := c.Ping(ctx); err != nil { /* Docker not running */ }
//	labels, err := c.ContainerLabels(ctx, "my-container")
type Client struct {
	// inner is the Docker SDK client. It is wrapped rather than embedded
	// so only the calls this package needs are exposed.
	inner *client.Client
}

// NewClient creates a new Docker client.
//
// The daemon address is chosen in this order:
//  1. DOCKER_HOST, passed to the SDK unchanged
//  2. the platform's default socket:
//     - Linux: /var/run/docker.sock
//     - macOS: /var/run/docker.sock, then ~/.docker/run/docker.sock
//     - Windows: the docker_engine named pipe
//
// NewClient does not contact the daemon; call Ping for that.
//
// Returns a model.CLIError with ExitDockerNotRunning if no Docker socket
// is found or the client cannot be created.
func NewClient() (*Client, error) {
	// An explicit DOCKER_HOST always wins, including tcp:// hosts.
	if host := os.Getenv("DOCKER_HOST"); host != "" {
		return newClientWithHost(host)
	}

	host, err := detectDockerHost()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning, "Docker socket not found", err)
	}
	return newClientWithHost(host)
}

// newClientWithHost creates a Docker client for a connection string such as
// "unix:///var/run/docker.sock" or "tcp://127.0.0.1:2375".
func newClientWithHost(host string) (*Client, error) {
	// API version negotiation lets one binary talk to older and newer
	// daemons without pinning an API version.
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to create Docker client for host %q", host),
			err,
		)
	}
	return &Client{inner: c}, nil
}

// detectDockerHost returns the Docker host URI for the current platform.
// It checks the known socket locations and returns the first that exists.
// Only the presence of the socket is checked here; Ping verifies that a
// daemon is listening on it.
func detectDockerHost() (string, error) {
	switch runtime.GOOS {
	case "linux":
		// Standard daemon socket.
		return detectUnixSocket([]string{"/var/run/docker.sock"})

	case "darwin":
		// Docker Desktop normally symlinks /var/run/docker.sock, but newer
		// releases can be configured to skip the symlink and only create
		// the socket under the user's home directory.
		paths := []string{"/var/run/docker.sock"}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, home+"/.docker/run/docker.sock")
		}
		return detectUnixSocket(paths)

	case "windows":
		// os.Stat does not work on named pipes, so dial briefly instead.
		pipePath := `//./pipe/docker_engine`
		conn, err := net.DialTimeout("pipe", pipePath, 1*time.Second)
		if err != nil {
			return "", fmt.Errorf("Docker named pipe not found at %s: %w", pipePath, err)
		}
		conn.Close()
		return "npipe://" + pipePath, nil

	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// detectUnixSocket returns the host URI of the first path that exists.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("Docker socket not found at any of: %v (is Docker running?)", paths)
}

// Ping verifies that the Docker daemon is reachable and responding.
//
// A socket file can outlive the daemon (e.g. after Docker Desktop quits),
// so commands that need Docker call Ping before anything else. The call is
// bounded by defaultPingTimeout on top of any deadline already on ctx.
//
// Returns a model.CLIError with ExitDockerNotRunning if the daemon does not
// answer.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			"Docker daemon is not responding (is Docker running?)",
			err,
		)
	}
	return nil
}

// ContainerLabels returns the labels of the container with the given ID
// or name, whether it is running or stopped.
//
// A missing container is reported as a model.CLIError with
// ExitContainerNotFound. A container without a config section has no
// labels and yields an empty map.
func (c *Client) ContainerLabels(ctx context.Context, id string) (map[string]string, error) {
	info, err := c.inner.ContainerInspect(ctx, id)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return nil, model.WrapCLIError(
				model.ExitContainerNotFound,
				fmt.Sprintf("container %q not found", id),
				err,
			)
		}
		return nil, fmt.Errorf("failed to inspect container %q: %w", id, err)
	}

	if info.Config == nil {
		return map[string]string{}, nil
	}
	return info.Config.Labels, nil
}

// Close releases all resources held by the Docker client.
// Close is safe to call multiple times.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}
