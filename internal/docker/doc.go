// Package docker reads and writes options as Docker container labels.
//
// Labels are a flat string map, so an options export is encoded one label
// per option under a common prefix:
//
//	worktree.name             = feature-auth
//	worktree.worktree-path    = /Users/user/repo-feature-auth
//	worktree.ports            = 3000:13000/tcp 5432:15432/tcp
//
// Label keys use hyphens, option keys use underscores; BuildLabels and
// ParseLabels translate between the two.
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
