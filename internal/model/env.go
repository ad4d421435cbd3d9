package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/shinji-kodama/paramobj/options"
)

// EnvOptions holds the options describing a worktree environment.
//
// Fields are unexported and every option is set through its Set<Name>
// method, so values coming from files, maps, Docker labels or Go code are
// validated the same way. Export reads them back through the getters. Keys follow the
// options package convention: "worktree_path" maps to SetWorktreePath and
// GetWorktreePath.
//
// Use NewEnvOptions (or options.New[EnvOptions]) to get a bound instance.
type EnvOptions struct {
	options.Container

	// name is the unique identifier for this worktree environment.
	// Must contain only alphanumeric characters and hyphens.
	name string

	// branch is the Git branch name associated with this worktree.
	branch string

	// worktreePath is the absolute filesystem path to the Git worktree directory.
	worktreePath string

	// sourceRepoPath is the absolute filesystem path to the original Git repository.
	sourceRepoPath string

	// configPattern indicates which devcontainer pattern is used.
	configPattern ConfigPattern

	// createdAt is the timestamp when this environment was created.
	createdAt time.Time

	ports []PortAllocation
}

// NewEnvOptions returns bound EnvOptions loaded from initial, which may be
// nil. See options.Container.Load for the accepted forms.
func NewEnvOptions(initial any, opts ...options.Option) (*EnvOptions, error) {
	return options.New[EnvOptions](initial, opts...)
}

// nameRegex validates environment names: alphanumeric + hyphens only,
// must start and end with alphanumeric.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)

// ValidateName checks if the given name is a valid worktree environment name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("environment name must not be empty")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("invalid environment name %q: must contain only alphanumeric characters and hyphens, and start/end with alphanumeric", name)
	}
	return nil
}

// SetName validates and sets the environment name.
func (o *EnvOptions) SetName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	o.name = name
	return nil
}

// GetName returns the environment name.
func (o *EnvOptions) GetName() string { return o.name }

// SetBranch sets the Git branch.
func (o *EnvOptions) SetBranch(branch string) { o.branch = branch }

// GetBranch returns the Git branch.
func (o *EnvOptions) GetBranch() string { return o.branch }

// SetWorktreePath sets the worktree directory. The path must be absolute.
func (o *EnvOptions) SetWorktreePath(path string) error {
	if err := requireAbs("worktree path", path); err != nil {
		return err
	}
	o.worktreePath = filepath.Clean(path)
	return nil
}

// GetWorktreePath returns the worktree directory.
func (o *EnvOptions) GetWorktreePath() string { return o.worktreePath }

// SetSourceRepoPath sets the source repository directory. The path must be
// absolute.
func (o *EnvOptions) SetSourceRepoPath(path string) error {
	if err := requireAbs("source repository path", path); err != nil {
		return err
	}
	o.sourceRepoPath = filepath.Clean(path)
	return nil
}

// GetSourceRepoPath returns the source repository directory.
func (o *EnvOptions) GetSourceRepoPath() string { return o.sourceRepoPath }

// SetConfigPattern parses and sets the config pattern. Matching is
// case-insensitive.
func (o *EnvOptions) SetConfigPattern(s string) error {
	p, err := ParseConfigPattern(s)
	if err != nil {
		return err
	}
	o.configPattern = p
	return nil
}

// GetConfigPattern returns the config pattern.
func (o *EnvOptions) GetConfigPattern() ConfigPattern { return o.configPattern }

// SetCreatedAt sets the creation time, normalised to UTC.
func (o *EnvOptions) SetCreatedAt(t time.Time) { o.createdAt = t.UTC() }

// GetCreatedAt returns the creation time.
func (o *EnvOptions) GetCreatedAt() time.Time { return o.createdAt }

// SetPorts replaces the port allocations. Each entry uses the
// ParsePortAllocation format. A nil slice clears the allocations.
func (o *EnvOptions) SetPorts(specs []string) error {
	if specs == nil {
		o.ports = nil
		return nil
	}

	allocations := make([]PortAllocation, 0, len(specs))
	for _, s := range specs {
		pa, err := ParsePortAllocation(s)
		if err != nil {
			return err
		}
		allocations = append(allocations, pa)
	}
	if err := ValidatePortAllocations(allocations); err != nil {
		return err
	}
	o.ports = allocations
	return nil
}

// GetPorts returns the port allocations in ParsePortAllocation format,
// or nil when there are none.
func (o *EnvOptions) GetPorts() []string {
	if o.ports == nil {
		return nil
	}
	specs := make([]string, len(o.ports))
	for i := range o.ports {
		specs[i] = o.ports[i].String()
	}
	return specs
}

func requireAbs(what, path string) error {
	if path == "" {
		return fmt.Errorf("%s must not be empty", what)
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s %q must be absolute", what, path)
	}
	return nil
}
