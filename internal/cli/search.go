package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/job-scalper/internal/export"
	"github.com/job-scalper/internal/render"
	"github.com/job-scalper/internal/repo"
	"github.com/job-scalper/internal/view"
)

type searchOptions struct {
	criteria criteriaFlags
	filter   string
	htmlPath string
	csvPath  string
	archive  bool
}

func newSearchCmd(opts *globalOptions) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Run one search and print the postings",
		Example: `  scalper search engineer
  scalper search engineer --intern --filter Engineer
  scalper search backend --level 17 --level 18 --csv posts.csv
  scalper search --url 'https://www.pracuj.pl/praca/go;kw?et=17'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			return runSearch(cmd.Context(), cmd, a, so, args)
		},
	}

	so.criteria.register(cmd)
	cmd.Flags().StringVar(&so.filter, "filter", "", "only show postings whose title contains this text (case sensitive)")
	cmd.Flags().StringVar(&so.htmlPath, "html", "", "also write the result page to this HTML file")
	cmd.Flags().StringVar(&so.csvPath, "csv", "", "also write the shown postings to this CSV file")
	cmd.Flags().BoolVar(&so.archive, "archive", false, "store the search and its postings in the archive database")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, a *app, so *searchOptions, args []string) error {
	ctrl := a.newController()
	defer ctrl.Close()

	ctrl.SetFilter(so.filter)
	state, searchErr := ctrl.Submit(ctx, so.criteria.build(cmd, args))

	if err := a.textRenderer().Render(cmd.OutOrStdout(), state); err != nil {
		return err
	}
	if so.htmlPath != "" {
		if err := writeHTML(so.htmlPath, state); err != nil {
			return err
		}
		a.logger.WithField("path", so.htmlPath).Info("Wrote HTML report")
	}
	if searchErr != nil {
		return searchErr
	}

	if so.csvPath != "" {
		if err := export.WriteCSVFile(so.csvPath, state.Visible()); err != nil {
			return err
		}
		a.logger.WithField("path", so.csvPath).Info("Wrote CSV export")
	}

	if so.archive {
		db, err := a.openArchive()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := repo.NewSearchRepository(db).SaveSearch(ctx, state.SearchID, state.Criteria, state.Jobs); err != nil {
			return err
		}
		a.logger.WithField("search_id", state.SearchID).Info("Archived search")
	}

	return nil
}

func writeHTML(path string, state view.State) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render.NewHTMLRenderer().Render(file, state); err != nil {
		file.Close()
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return file.Close()
}
