package cli

import (
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/paramobj/internal/docker"
	"github.com/shinji-kodama/paramobj/internal/model"
)

// emitFlags holds the flag values for the emit command.
type emitFlags struct {
	loadFlags

	// prefix is prepended to every label key.
	prefix string
}

// NewEmitCommand creates the "emit" cobra command, which turns an options
// file into Docker labels.
func NewEmitCommand() *cobra.Command {
	flags := &emitFlags{}

	cmd := &cobra.Command{
		Use:   "emit [FILE]",
		Short: "Print Docker labels for an options file",
		Long: `Load an options file like "load" does and print the options as Docker
labels, one per option, ready to pass to docker run --label.

Examples:
  paramobj emit options.yaml
  paramobj emit --prefix app. --output json options.yaml`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvFromFile(args, &flags.loadFlags)
			if err != nil {
				return err
			}

			labels, err := docker.BuildLabels(flags.prefix, env.Export())
			if err != nil {
				return model.WrapCLIError(model.ExitInvalidOptions, "cannot encode options as labels", err)
			}
			VerboseLog("Built labels", "count", len(labels), "prefix", flags.prefix)

			return printLabels(cmd.OutOrStdout(), labels)
		},
	}

	addLoadFlags(cmd, &flags.loadFlags)
	cmd.Flags().StringVar(&flags.prefix, "prefix", docker.DefaultPrefix, "Label key prefix")
	return cmd
}
