package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/paramobj/internal/model"
	"github.com/shinji-kodama/paramobj/options"
)

// serveContainers starts a minimal Docker Engine API that knows the given
// containers' labels, and points DOCKER_HOST at it.
func serveContainers(t *testing.T, containers map[string]map[string]string) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/_ping") {
			w.Header().Set("API-Version", "1.45")
			_, _ = w.Write([]byte("OK"))
			return
		}

		for id, labels := range containers {
			if strings.HasSuffix(r.URL.Path, "/containers/"+id+"/json") {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"Id":     id,
					"Config": map[string]any{"Labels": labels},
				})
				return
			}
		}

		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "No such container"})
	}))
	t.Cleanup(srv.Close)

	t.Setenv("DOCKER_HOST", "tcp://"+strings.TrimPrefix(srv.URL, "http://"))
}

var webLabels = map[string]string{
	"worktree.name":          "feature-auth",
	"worktree.branch":        "feature/auth",
	"worktree.worktree-path": "/srv/worktrees/auth",
	"worktree.ports":         "3000:13000 8080:18080/udp",
	"worktree.managed-by":    "paramobj",
	"com.example.unrelated":  "x",
}

func TestLabels_LenientByDefault(t *testing.T) {
	serveContainers(t, map[string]map[string]string{"web": webLabels})

	out, err := runRoot(t, "labels", "--json", "web")
	require.NoError(t, err)

	var pairs options.Pairs
	require.NoError(t, json.Unmarshal([]byte(out), &pairs))

	m := pairs.Map()
	assert.Equal(t, "feature-auth", m["name"])
	assert.Equal(t, "feature/auth", m["branch"])
	assert.Equal(t, "/srv/worktrees/auth", m["worktree_path"])
	assert.Equal(t, []any{"3000:13000/tcp", "8080:18080/udp"}, m["ports"])
	assert.NotContains(t, m, "managed_by")
}

func TestLabels_StrictRejectsUnknownLabel(t *testing.T) {
	serveContainers(t, map[string]map[string]string{"web": webLabels})

	_, err := runRoot(t, "labels", "--strict", "web")
	require.Error(t, err)
	assert.ErrorIs(t, err, options.ErrNoSuchSetter)
	assert.Equal(t, model.ExitInvalidOptions, ExitCodeOf(err))
	assert.Contains(t, err.Error(), "SetManagedBy")
}

func TestLabels_CustomPrefix(t *testing.T) {
	serveContainers(t, map[string]map[string]string{
		"api": {"app.name": "api", "worktree.name": "ignored"},
	})

	out, err := runRoot(t, "labels", "--strict", "--prefix", "app.", "api")
	require.NoError(t, err)
	assert.Contains(t, out, "api")
	assert.NotContains(t, out, "ignored")
}

func TestLabels_ContainerNotFound(t *testing.T) {
	serveContainers(t, nil)

	_, err := runRoot(t, "labels", "missing")
	require.Error(t, err)
	assert.Equal(t, model.ExitContainerNotFound, ExitCodeOf(err))
}
