package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/job-scalper/internal/models"
)

type criteriaFlags struct {
	intern  bool
	levels  []int
	seedURL string
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.intern, "intern", false, "only internships")
	cmd.Flags().IntSliceVar(&f.levels, "level", nil, "seniority level code, repeatable (see 'scalper levels')")
	cmd.Flags().StringVar(&f.seedURL, "url", "", "search from a job board URL instead of a query")
	cmd.MarkFlagsMutuallyExclusive("intern", "level", "url")
}

// build picks the request shape from the flags that were set.
func (f *criteriaFlags) build(cmd *cobra.Command, args []string) models.Criteria {
	query := strings.TrimSpace(strings.Join(args, " "))
	switch {
	case cmd.Flags().Changed("url"):
		return models.SeedSearch(f.seedURL)
	case cmd.Flags().Changed("level"):
		return models.LevelSearch(query, f.levels...)
	default:
		return models.InternSearch(query, f.intern)
	}
}
