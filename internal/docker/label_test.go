package docker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/paramobj/internal/model"
	"github.com/shinji-kodama/paramobj/options"
)

func TestLabelKey(t *testing.T) {
	assert.Equal(t, "worktree.name", LabelKey(DefaultPrefix, "name"))
	assert.Equal(t, "worktree.worktree-path", LabelKey(DefaultPrefix, "worktree_path"))
	assert.Equal(t, "app.source-repo-path", LabelKey("app.", "source_repo_path"))
}

func TestOptionKey(t *testing.T) {
	key, ok := OptionKey(DefaultPrefix, "worktree.source-repo-path")
	assert.True(t, ok)
	assert.Equal(t, "source_repo_path", key)

	_, ok = OptionKey(DefaultPrefix, "com.docker.compose.service")
	assert.False(t, ok, "labels outside the prefix are not options")

	_, ok = OptionKey(DefaultPrefix, "worktree.")
	assert.False(t, ok, "the bare prefix is not an option")
}

// TestBuildLabels verifies that BuildLabels converts an EnvOptions export
// into a Docker label map with one label per option.
func TestBuildLabels(t *testing.T) {
	env, err := model.NewEnvOptions(options.Pairs{
		{Key: "name", Value: "feature-auth"},
		{Key: "branch", Value: "feature/auth"},
		{Key: "worktree_path", Value: "/Users/user/repo-feature-auth"},
		{Key: "source_repo_path", Value: "/Users/user/repo"},
		{Key: "config_pattern", Value: "compose-multi"},
		{Key: "created_at", Value: time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC)},
		{Key: "ports", Value: []string{"app:3000:13000", "db:5432:15432"}},
	})
	require.NoError(t, err)

	labels, err := BuildLabels(DefaultPrefix, env.Export())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"worktree.name":             "feature-auth",
		"worktree.branch":           "feature/auth",
		"worktree.worktree-path":    "/Users/user/repo-feature-auth",
		"worktree.source-repo-path": "/Users/user/repo",
		"worktree.config-pattern":   "compose-multi",
		"worktree.created-at":       "2026-02-28T10:00:00Z",
		"worktree.ports":            "app:3000:13000/tcp db:5432:15432/tcp",
	}, labels)
}

// TestBuildLabels_SkipsNil verifies that unset options produce no label.
func TestBuildLabels_SkipsNil(t *testing.T) {
	labels, err := BuildLabels("x.", options.Pairs{
		{Key: "ports", Value: []string(nil)},
		{Key: "proxy", Value: nil},
		{Key: "retries", Value: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"x.ports": "", "x.retries": "3"}, labels)
}

func TestBuildLabels_RejectsWhitespaceInList(t *testing.T) {
	_, err := BuildLabels("x.", options.Pairs{
		{Key: "tags", Value: []string{"ok", "not ok"}},
	})

	assert.Error(t, err)
}

// TestParseLabels verifies that ParseLabels keeps only prefixed labels,
// translates their keys, and sorts them.
func TestParseLabels(t *testing.T) {
	labels := map[string]string{
		"worktree.name":              "feature-auth",
		"worktree.worktree-path":     "/tmp/worktree",
		"worktree.branch":            "",
		"com.docker.compose.service": "app",
		"worktree.managed-by":        "paramobj",
	}

	pairs := ParseLabels(DefaultPrefix, labels)

	assert.Equal(t, options.Pairs{
		{Key: "managed_by", Value: "paramobj"},
		{Key: "name", Value: "feature-auth"},
		{Key: "worktree_path", Value: "/tmp/worktree"},
	}, pairs)
}

// TestLabels_RoundTrip verifies that labels built from an export load
// back into an equal EnvOptions.
func TestLabels_RoundTrip(t *testing.T) {
	src, err := model.NewEnvOptions(map[string]any{
		"name":           "simple-env",
		"branch":         "main",
		"worktree_path":  "/tmp/worktree",
		"config_pattern": "image",
		"created_at":     "2026-01-01T00:00:00Z",
		"ports":          []string{"3000:13000"},
	})
	require.NoError(t, err)

	labels, err := BuildLabels(DefaultPrefix, src.Export())
	require.NoError(t, err)

	dst, err := model.NewEnvOptions(ParseLabels(DefaultPrefix, labels))
	require.NoError(t, err)

	assert.Equal(t, src.Export(), dst.Export())
}
