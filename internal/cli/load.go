package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/paramobj/internal/model"
	"github.com/shinji-kodama/paramobj/internal/source"
	"github.com/shinji-kodama/paramobj/options"
)

// loadFlags holds the flag values for the load and emit commands.
type loadFlags struct {
	// dir is searched for a standard options file when no FILE is given.
	dir string

	// lenient turns strict mode off, so unknown keys are ignored.
	lenient bool
}

// NewLoadCommand creates the "load" cobra command.
func NewLoadCommand() *cobra.Command {
	flags := &loadFlags{}

	cmd := &cobra.Command{
		Use:   "load [FILE]",
		Short: "Load an options file and print the validated result",
		Long: `Load worktree environment options from a JSONC or YAML file, apply them
in file order through their setters, and print the exported options.

Without FILE, the standard locations under --dir are searched:
.paramobj/options.{yaml,yml,json,jsonc} and .paramobj.{yaml,yml,json,jsonc}.

Examples:
  paramobj load options.yaml
  paramobj load --lenient --output json .paramobj.jsonc
  paramobj load --dir ../other-worktree`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvFromFile(args, flags)
			if err != nil {
				return err
			}
			return printPairs(cmd.OutOrStdout(), env.Export())
		},
	}

	addLoadFlags(cmd, flags)
	return cmd
}

func addLoadFlags(cmd *cobra.Command, flags *loadFlags) {
	cmd.Flags().StringVar(&flags.dir, "dir", ".", "Directory searched for an options file when FILE is omitted")
	cmd.Flags().BoolVar(&flags.lenient, "lenient", false, "Ignore keys that have no matching setter")
}

// loadEnvFromFile resolves the options file, reads it, and loads it into
// EnvOptions. Option errors are returned as CLIError with
// ExitInvalidOptions.
func loadEnvFromFile(args []string, flags *loadFlags) (*model.EnvOptions, error) {
	path, err := resolveOptionsFile(args, flags.dir)
	if err != nil {
		return nil, err
	}
	VerboseLog("Loading options file", "path", path, "strict", !flags.lenient)

	pairs, err := source.LoadFile(path)
	if err != nil {
		return nil, err
	}
	VerboseLog("Parsed options", "keys", pairs.Keys())

	return loadEnv(pairs, !flags.lenient, path)
}

func resolveOptionsFile(args []string, dir string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = wd
	}
	return source.FindConfigFile(dir)
}

// loadEnv applies pairs to a new EnvOptions. origin names the source in
// error messages.
func loadEnv(pairs options.Pairs, strict bool, origin string) (*model.EnvOptions, error) {
	env, err := model.NewEnvOptions(pairs, options.WithStrict(strict))
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitInvalidOptions,
			fmt.Sprintf("invalid options in %s", origin),
			err,
		)
	}
	return env, nil
}
