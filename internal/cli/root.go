// Package cli implements the cobra-based CLI commands for paramobj.
//
// Each subcommand (load, emit, labels, accessors) is defined in its own
// file within this package. This file defines the root command that serves
// as the parent for all subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/paramobj/internal/model"
	"github.com/shinji-kodama/paramobj/options"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput is shorthand for --output json.
	jsonOutput bool

	// outputFormat selects text, json or yaml output.
	outputFormat string

	// verbose enables diagnostic logging on stderr.
	verbose bool

	// logger receives verbose diagnostics. It discards everything unless
	// --verbose is set.
	logger = logr.Discard()
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "paramobj",
		Short: "Inspect and convert worktree environment options",
		Long: `paramobj loads worktree environment options from JSONC/YAML files or
Docker container labels, validates them through their setters, and prints
the normalised result.

Option keys are snake_case ("worktree_path"); each key is handled by the
matching SetWorktreePath/GetWorktreePath accessor pair.`,

		// SilenceUsage keeps cobra from dumping the usage text on every
		// failed run; an option error is not a usage error.
		SilenceUsage: true,

		// SilenceErrors leaves error printing to Execute, which writes
		// text or JSON depending on --output.
		SilenceErrors: true,

		// Version is shown by --version.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// PersistentPreRunE runs before every subcommand. It installs the
		// logger and resolves the output format once, so subcommands only
		// read the globals.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				stdr.SetVerbosity(1)
				logger = stdr.New(log.New(cmd.ErrOrStderr(), "[verbose] ", 0))
			} else {
				logger = logr.Discard()
			}
			// --json is kept as a shorthand and overrides --output.
			if jsonOutput {
				outputFormat = string(FormatJSON)
			}
			if _, err := ParseFormat(outputFormat); err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "invalid --output flag", err)
			}
			return nil
		},
	}

	// Persistent flags are inherited by every subcommand.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (same as --output json)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", string(FormatText), "Output format: text, json, yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Each subcommand lives in its own file and returns a *cobra.Command.
	rootCmd.AddCommand(NewLoadCommand())
	rootCmd.AddCommand(NewEmitCommand())
	rootCmd.AddCommand(NewLabelsCommand())
	rootCmd.AddCommand(NewAccessorsCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes. It is the entry
// point called from main.go.
//
// Errors returned by commands are printed to stderr and translated into
// the process exit code with ExitCodeOf. CLIError values carry their own
// code; bare option errors exit with ExitInvalidOptions and anything else
// with ExitGeneralError.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	code := ExitCodeOf(err)

	// Print the CLIError message and its cause separately so JSON output
	// can put the cause under "detail".
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(rootCmd.ErrOrStderr(), cliErr.Message, cliErr.Err)
	} else {
		printError(rootCmd.ErrOrStderr(), err.Error(), nil)
	}
	os.Exit(int(code))
}

// ExitCodeOf maps an error returned by a command to a process exit code.
// The lookup goes through wrapped errors, so a CLIError or an options
// sentinel anywhere in the chain decides the code.
func ExitCodeOf(err error) model.ExitCode {
	var cliErr *model.CLIError
	switch {
	case err == nil:
		return model.ExitSuccess
	case errors.As(err, &cliErr):
		return cliErr.Code
	case errors.Is(err, options.ErrInvalidArgument),
		errors.Is(err, options.ErrNoSuchSetter),
		errors.Is(err, options.ErrNoSuchGetter):
		return model.ExitInvalidOptions
	default:
		return model.ExitGeneralError
	}
}

// printError outputs an error message as JSON or text depending on the
// selected output format. Errors always go to stderr; stdout is reserved
// for command output.
func printError(w io.Writer, message string, underlying error) {
	if outputFormat == string(FormatJSON) {
		errObj := map[string]interface{}{
			"message": message,
		}
		if underlying != nil {
			errObj["detail"] = underlying.Error()
		}
		// stderr gets the JSON too; stdout carries only command output.
		data, _ := json.MarshalIndent(map[string]interface{}{"error": errObj}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog writes a diagnostic message with optional key/value pairs
// when verbose mode is enabled. It is used throughout the CLI to trace
// which files, labels and keys are being processed.
//
//	VerboseLog("Loading options file", "path", path)
func VerboseLog(msg string, keysAndValues ...interface{}) {
	logger.V(1).Info(msg, keysAndValues...)
}
