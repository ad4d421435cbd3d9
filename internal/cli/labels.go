package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/paramobj/internal/docker"
)

// labelsFlags holds the flag values for the labels command.
type labelsFlags struct {
	// prefix selects which container labels are options.
	prefix string

	// strict rejects labels under the prefix that have no matching setter.
	strict bool
}

// NewLabelsCommand creates the "labels" cobra command, which reads
// options back from a running or stopped container's labels.
func NewLabelsCommand() *cobra.Command {
	flags := &labelsFlags{}

	cmd := &cobra.Command{
		Use:   "labels CONTAINER",
		Short: "Load options from a container's Docker labels",
		Long: `Inspect a Docker container, collect the labels under --prefix, and load
them into worktree environment options.

Containers often carry labels under the prefix that are not options
(e.g. worktree.managed-by), so unknown keys are ignored unless --strict
is given.

Examples:
  paramobj labels my-container
  paramobj labels --strict --output yaml 3f2a9c`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLabels(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.prefix, "prefix", docker.DefaultPrefix, "Label key prefix")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Fail on labels with no matching setter")
	return cmd
}

func runLabels(cmd *cobra.Command, container string, flags *labelsFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(ctx); err != nil {
		return err
	}
	VerboseLog("Connected to Docker daemon")

	labels, err := cli.ContainerLabels(ctx, container)
	if err != nil {
		return err
	}

	pairs := docker.ParseLabels(flags.prefix, labels)
	VerboseLog("Found option labels", "container", container, "count", len(pairs))

	env, err := loadEnv(pairs, flags.strict, fmt.Sprintf("labels of container %q", container))
	if err != nil {
		return err
	}
	return printPairs(cmd.OutOrStdout(), env.Export())
}
