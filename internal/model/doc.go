// Package model defines the domain types used by the paramobj CLI.
//
// EnvOptions is a concrete options type built on options.Container. It
// describes a worktree environment (name, branch, paths, config pattern,
// port allocations) and is what the CLI loads from option files and
// Docker labels.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
