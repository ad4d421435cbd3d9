package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/paramobj/internal/model"
	"github.com/shinji-kodama/paramobj/options"
)

// NewAccessorsCommand creates the "accessors" cobra command, which shows
// the method names computed for option keys.
func NewAccessorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "accessors KEY...",
		Short: "Show the setter and getter names for option keys",
		Long: `Print the setter and getter method names derived from each option key,
and whether the environment options support the key.

Examples:
  paramobj accessors worktree_path "source repo path" managed_by`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := model.NewEnvOptions(nil)
			if err != nil {
				return err
			}

			pairs := make(options.Pairs, 0, len(args))
			for _, key := range args {
				pairs = append(pairs, options.Pair{
					Key: key,
					Value: fmt.Sprintf("%s / %s (%s)",
						options.SetterName(key), options.GetterName(key), support(env, key)),
				})
			}
			return printPairs(cmd.OutOrStdout(), pairs)
		},
	}
}

// support reports whether env has a getter for key. It uses Isset rather
// than Has so a missing getter can be told apart from an unset value.
func support(env *model.EnvOptions, key string) string {
	if _, err := env.Isset(key); err != nil {
		return "unsupported"
	}
	return "supported"
}
