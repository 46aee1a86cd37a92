package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd returns the scalper command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "scalper",
		Short:         "Search job postings and filter the results",
		Long:          "scalper sends job searches to a jobs endpoint and shows the returned postings, narrowed by an optional title filter.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addGlobalFlags(rootCmd, opts)

	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newInteractiveCmd(opts))
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newMigrateCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))

	return rootCmd
}

func addGlobalFlags(cmd *cobra.Command, opts *globalOptions) {
	cmd.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "jobs endpoint (default $JOBS_ENDPOINT or http://localhost:8080/jobs)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error (default $LOG_LEVEL)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
}
