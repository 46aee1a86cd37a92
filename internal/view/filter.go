package view

import (
	"strings"

	"github.com/job-scalper/internal/models"
)

// Filter returns the postings whose title contains needle, in input order.
// An empty needle returns jobs unchanged. Matching is case sensitive.
func Filter(jobs []models.JobPosting, needle string) []models.JobPosting {
	if needle == "" {
		return jobs
	}
	out := make([]models.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if strings.Contains(job.Title, needle) {
			out = append(out, job)
		}
	}
	return out
}
