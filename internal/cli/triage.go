package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/job-scalper/internal/pipeline"
	"github.com/job-scalper/internal/repo"
	"github.com/job-scalper/internal/services"
)

type triageOptions struct {
	criteria criteriaFlags
	cvPath   string
	filter   string
	workers  int
	archive  bool

	// newAssessor is replaced in tests.
	newAssessor func(a *app) (pipeline.Assessor, error)
}

func openRouterAssessor(a *app) (pipeline.Assessor, error) {
	return services.NewOpenRouterService(a.cfg.OpenRouterModel, a.cfg.OpenRouterAPIKey)
}

// NewTriageCmd returns the cv command: search, then ask the model about each
// shown posting.
func NewTriageCmd() *cobra.Command {
	return newTriageCmd(&triageOptions{newAssessor: openRouterAssessor})
}

func newTriageCmd(to *triageOptions) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "cv [query...]",
		Short: "Search postings and rate each one against a CV",
		Example: `  cv golang --cv cv.txt
  cv backend --level 17 --filter Go --workers 5 --archive`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			return runTriage(cmd.Context(), cmd, a, to, args)
		},
	}

	addGlobalFlags(cmd, opts)
	to.criteria.register(cmd)
	cmd.Flags().StringVar(&to.cvPath, "cv", "cv.txt", "plain text CV")
	cmd.Flags().StringVar(&to.filter, "filter", "", "only rate postings whose title contains this text (case sensitive)")
	cmd.Flags().IntVar(&to.workers, "workers", 0, "concurrent model requests (default $TRIAGE_WORKERS)")
	cmd.Flags().BoolVar(&to.archive, "archive", false, "store the search and the verdicts in the archive database")

	return cmd
}

func runTriage(ctx context.Context, cmd *cobra.Command, a *app, to *triageOptions, args []string) error {
	cv, err := os.ReadFile(to.cvPath)
	if err != nil {
		return fmt.Errorf("failed to read cv: %w", err)
	}
	if strings.TrimSpace(string(cv)) == "" {
		return fmt.Errorf("cv %s is empty", to.cvPath)
	}

	assessor, err := to.newAssessor(a)
	if err != nil {
		return err
	}

	ctrl := a.newController()
	defer ctrl.Close()

	ctrl.SetFilter(to.filter)
	state, err := ctrl.Submit(ctx, to.criteria.build(cmd, args))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	postings := state.Visible()
	if len(postings) == 0 {
		fmt.Fprintln(out, "Nothing to rate.")
		return nil
	}

	workers := to.workers
	if workers <= 0 {
		workers = a.cfg.TriageWorkers
	}
	a.logger.WithFields(logrus.Fields{
		"search_id": state.SearchID,
		"postings":  len(postings),
		"workers":   workers,
	}).Info("Rating postings")

	results := pipeline.NewTriagePipeline(assessor, workers, a.cfg.TriageRPS, a.logger).Run(ctx, string(cv), postings)
	assessed := printVerdicts(out, results, !a.opts.noColor && !color.NoColor)

	if to.archive {
		db, err := a.openArchive()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repo.NewSearchRepository(db).SaveSearch(ctx, state.SearchID, state.Criteria, state.Jobs); err != nil {
			return err
		}
		if err := repo.NewAssessmentRepository(db).SaveAssessments(ctx, state.SearchID, assessed); err != nil {
			return err
		}
		a.logger.WithField("search_id", state.SearchID).Info("Archived search and verdicts")
	}
	return nil
}

// printVerdicts writes one block per result and returns the successful ones.
func printVerdicts(w io.Writer, results []pipeline.TriageResult, useColor bool) []repo.AssessedPosting {
	apply := color.New(color.FgGreen, color.Bold)
	skip := color.New(color.FgYellow)
	failed := color.New(color.FgRed)
	for _, c := range []*color.Color{apply, skip, failed} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var assessed []repo.AssessedPosting
	applyCount := 0
	for i, r := range results {
		fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, r.Posting.Title, r.Posting.Link)
		if r.Error != nil {
			fmt.Fprintf(w, "   %s\n", failed.Sprintf("error: %v", r.Error))
			continue
		}

		verdict := skip.Sprintf("%s (%d%%)", r.Assessment.Recommendation, r.Assessment.ConfidenceScore)
		if r.Assessment.ShouldApply() {
			applyCount++
			verdict = apply.Sprintf("%s (%d%%)", r.Assessment.Recommendation, r.Assessment.ConfidenceScore)
		}
		fmt.Fprintf(w, "   %s %s\n", verdict, r.Assessment.Summary)
		if len(r.Assessment.MissingSkills) > 0 {
			fmt.Fprintf(w, "   missing: %s\n", strings.Join(r.Assessment.MissingSkills, ", "))
		}
		assessed = append(assessed, repo.AssessedPosting{Posting: r.Posting, Assessment: *r.Assessment})
	}
	fmt.Fprintf(w, "\n%d of %d worth applying to\n", applyCount, len(results))
	return assessed
}
