package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/paramobj/options"
)

func validEnvInput() map[string]any {
	return map[string]any{
		"name":             "feature-auth",
		"branch":           "feature/auth",
		"worktree_path":    "/Users/user/repo-feature-auth",
		"source_repo_path": "/Users/user/repo",
		"config_pattern":   "compose-multi",
		"created_at":       "2026-02-28T10:00:00Z",
		"ports":            []any{"app:3000:13000", "db:5432:15432"},
	}
}

// TestNewEnvOptions verifies that every option is routed through its
// setter, including string-to-type conversions.
func TestNewEnvOptions(t *testing.T) {
	env, err := NewEnvOptions(validEnvInput())
	require.NoError(t, err)

	assert.Equal(t, "feature-auth", env.GetName())
	assert.Equal(t, "feature/auth", env.GetBranch())
	assert.Equal(t, "/Users/user/repo-feature-auth", env.GetWorktreePath())
	assert.Equal(t, "/Users/user/repo", env.GetSourceRepoPath())
	assert.Equal(t, PatternComposeMulti, env.GetConfigPattern())
	assert.Equal(t, time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC), env.GetCreatedAt())

	ports := env.GetPorts()
	require.Len(t, ports, 2)
	db, err := ParsePortAllocation(ports[1])
	require.NoError(t, err)
	assert.Equal(t, "db", db.ServiceName)
	assert.Equal(t, 15432, db.HostPort)
}

// TestEnvOptions_Export verifies key naming and declaration order,
// including the unexported ports field read through GetPorts.
func TestEnvOptions_Export(t *testing.T) {
	env, err := NewEnvOptions(validEnvInput())
	require.NoError(t, err)

	got := env.Export()

	assert.Equal(t, []string{
		"name", "branch", "worktree_path", "source_repo_path",
		"config_pattern", "created_at", "ports",
	}, got.Keys())

	ports, ok := got.Lookup("ports")
	require.True(t, ok)
	assert.Equal(t, []string{"app:3000:13000/tcp", "db:5432:15432/tcp"}, ports)
}

// TestEnvOptions_SetterIsOnlyWritePath verifies that every option value is
// validated by its setter, whether it comes from Load or from Set.
func TestEnvOptions_SetterIsOnlyWritePath(t *testing.T) {
	env, err := NewEnvOptions(validEnvInput())
	require.NoError(t, err)

	assert.Error(t, env.Set("name", "-bad-"))
	assert.Error(t, env.SetName("-bad-"))
	assert.Error(t, env.SetWorktreePath("relative"))
	assert.Equal(t, "feature-auth", env.GetName())

	// Export reads the unexported fields through their getters.
	m := env.Export().Map()
	assert.Equal(t, env.GetName(), m["name"])
	assert.Equal(t, env.GetWorktreePath(), m["worktree_path"])
	assert.Equal(t, env.GetConfigPattern(), m["config_pattern"])
	assert.Equal(t, env.GetCreatedAt(), m["created_at"])
}

func TestEnvOptions_ExportLoadRoundTrip(t *testing.T) {
	src, err := NewEnvOptions(validEnvInput())
	require.NoError(t, err)

	dst, err := NewEnvOptions(src.Export())
	require.NoError(t, err)

	assert.Equal(t, src.Export(), dst.Export())
}

// TestEnvOptions_LabelStyleValues verifies that the flat string values
// found in Docker labels convert to the setter types.
func TestEnvOptions_LabelStyleValues(t *testing.T) {
	env, err := NewEnvOptions(options.Pairs{
		{Key: "name", Value: "simple-env"},
		{Key: "ports", Value: "3000:13000 8080:18080/tcp"},
		{Key: "created_at", Value: "2026-01-01T00:00:00Z"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"3000:13000/tcp", "8080:18080/tcp"}, env.GetPorts())
	assert.Equal(t, 2026, env.GetCreatedAt().Year())
}

func TestEnvOptions_SetterValidation(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{"name", "-bad-"},
		{"name", ""},
		{"worktree_path", "relative/path"},
		{"source_repo_path", ""},
		{"config_pattern", "helm"},
		{"ports", []string{"3000:13000", "3001:13000"}},
		{"created_at", "not a time"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			env, err := NewEnvOptions(nil)
			require.NoError(t, err)

			assert.Error(t, env.Set(tt.key, tt.value))
		})
	}
}

func TestEnvOptions_StrictMode(t *testing.T) {
	input := validEnvInput()
	input["managed_by"] = "paramobj"

	_, err := NewEnvOptions(input)
	assert.ErrorIs(t, err, options.ErrNoSuchSetter)

	env, err := NewEnvOptions(input, options.WithStrict(false))
	require.NoError(t, err)
	assert.Equal(t, "feature-auth", env.GetName())
}

func TestEnvOptions_Unset(t *testing.T) {
	env, err := NewEnvOptions(validEnvInput())
	require.NoError(t, err)

	require.NoError(t, env.Unset("ports"))
	assert.Nil(t, env.GetPorts())
	assert.False(t, env.Has("ports"))

	err = env.Unset("name")
	assert.ErrorIs(t, err, options.ErrInvalidArgument)
	assert.Equal(t, "feature-auth", env.GetName())
}

// TestValidateName checks the environment name rules.
func TestValidateName(t *testing.T) {
	valid := []string{"a", "feature-auth", "Env01"}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), name)
	}

	invalid := []string{"", "-lead", "trail-", "has space", "under_score"}
	for _, name := range invalid {
		assert.Error(t, ValidateName(name), name)
	}
}
