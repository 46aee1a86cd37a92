package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/job-scalper/internal/models"
)

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the seniority level codes accepted by --level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, l := range models.Levels {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", l.Code, l.Label)
			}
			return nil
		},
	}
}
