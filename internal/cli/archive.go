package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/job-scalper/infrastructure"
	"github.com/job-scalper/internal/repo"
)

func newMigrateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the archive database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			db, err := a.openArchive()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := infrastructure.RunMigrations(db); err != nil {
				return err
			}
			a.logger.Info("Database migrations completed successfully")
			return nil
		},
	}
}

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List searches stored with --archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			db, err := a.openArchive()
			if err != nil {
				return err
			}
			defer db.Close()

			searches, err := repo.NewSearchRepository(db).ListRecentSearches(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tKIND\tSEARCH\tRESULTS\tID")
			for _, s := range searches {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Kind, s.Label, s.ResultCount, s.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of searches to show")
	return cmd
}
