package view

import "github.com/job-scalper/internal/models"

// Status is the lifecycle of the latest submission.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

const (
	FailedMessage    = "Failed to fetch jobs"
	NoResultsMessage = "No jobs found"
	SubmitLabel      = "Search Jobs"
	LoadingLabel     = "Loading..."
)

// State is an immutable snapshot of the search view. Reduce returns a new
// value for every action; Jobs is shared between snapshots and never written.
type State struct {
	Status   Status
	SearchID string
	Criteria models.Criteria
	Jobs     []models.JobPosting
	Filter   string
	Error    string
}

func (s State) Loading() bool {
	return s.Status == StatusLoading
}

// Visible is the list the renderer shows for the current filter.
func (s State) Visible() []models.JobPosting {
	return Filter(s.Jobs, s.Filter)
}

// ShowNoResults reports whether the "No jobs found" message is displayed: the
// latest search finished successfully with an empty list for a non-empty query.
func (s State) ShowNoResults() bool {
	return s.Status == StatusSuccess && len(s.Jobs) == 0 && s.Criteria.Label() != ""
}

func (s State) SubmitLabel() string {
	if s.Loading() {
		return LoadingLabel
	}
	return SubmitLabel
}
