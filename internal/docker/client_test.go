package docker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/paramobj/internal/model"
)

// fakeDaemon serves the two Engine API endpoints the client uses.
func fakeDaemon(t *testing.T, labels map[string]map[string]string) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/_ping") {
			w.Header().Set("API-Version", "1.45")
			_, _ = w.Write([]byte("OK"))
			return
		}

		for id, l := range labels {
			if strings.HasSuffix(r.URL.Path, "/containers/"+id+"/json") {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"Id":     id,
					"Config": map[string]any{"Labels": l},
				})
				return
			}
		}

		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "No such container"})
	}))
	t.Cleanup(srv.Close)

	c, err := newClientWithHost("tcp://" + strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_ContainerLabels(t *testing.T) {
	c := fakeDaemon(t, map[string]map[string]string{
		"web": {"worktree.name": "demo", "other": "x"},
	})

	require.NoError(t, c.Ping(context.Background()))

	labels, err := c.ContainerLabels(context.Background(), "web")
	require.NoError(t, err)
	assert.Equal(t, "demo", labels["worktree.name"])

	pairs := ParseLabels(DefaultPrefix, labels)
	assert.Equal(t, []string{"name"}, pairs.Keys())
}

func TestClient_ContainerLabelsNotFound(t *testing.T) {
	c := fakeDaemon(t, nil)

	_, err := c.ContainerLabels(context.Background(), "missing")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitContainerNotFound, cliErr.Code)
}

func TestDetectUnixSocket(t *testing.T) {
	dir := t.TempDir()
	sock := filepath.Join(dir, "docker.sock")
	require.NoError(t, os.WriteFile(sock, nil, 0o600))

	host, err := detectUnixSocket([]string{filepath.Join(dir, "absent.sock"), sock})
	require.NoError(t, err)
	assert.Equal(t, "unix://"+sock, host)

	_, err = detectUnixSocket([]string{filepath.Join(dir, "absent.sock")})
	assert.Error(t, err)
}

func TestClient_CloseNil(t *testing.T) {
	var c Client
	assert.NoError(t, c.Close())
}
