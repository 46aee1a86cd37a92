package view

import "github.com/job-scalper/internal/models"

// Action is one of SubmitStarted, SubmitSucceeded, SubmitFailed, FilterChanged.
type Action interface {
	isAction()
}

type SubmitStarted struct {
	SearchID string
	Criteria models.Criteria
}

// SubmitSucceeded and SubmitFailed carry the search they complete, so a late
// completion of an older search replaces the whole result, not only the list.
type SubmitSucceeded struct {
	SearchID string
	Criteria models.Criteria
	Jobs     []models.JobPosting
}

type SubmitFailed struct {
	SearchID string
	Criteria models.Criteria
	Message  string
}

type FilterChanged struct {
	Filter string
}

func (SubmitStarted) isAction()   {}
func (SubmitSucceeded) isAction() {}
func (SubmitFailed) isAction()    {}
func (FilterChanged) isAction()   {}

// Reduce applies an action to a state and returns the next state.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SubmitStarted:
		s.Status = StatusLoading
		s.SearchID = a.SearchID
		s.Criteria = a.Criteria
		s.Jobs = nil
		s.Error = ""
	case SubmitSucceeded:
		s.Status = StatusSuccess
		s.SearchID = a.SearchID
		s.Criteria = a.Criteria
		s.Jobs = a.Jobs
		if s.Jobs == nil {
			s.Jobs = []models.JobPosting{}
		}
		s.Error = ""
	case SubmitFailed:
		s.Status = StatusError
		s.SearchID = a.SearchID
		s.Criteria = a.Criteria
		s.Jobs = nil
		s.Error = a.Message
	case FilterChanged:
		s.Filter = a.Filter
	}
	return s
}
