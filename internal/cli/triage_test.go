package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/job-scalper/internal/models"
	"github.com/job-scalper/internal/pipeline"
)

type stubAssessor struct {
	mu    sync.Mutex
	seen  []string
	cv    string
	fails map[string]bool
}

func (s *stubAssessor) AssessPosting(ctx context.Context, cv string, posting models.JobPosting) (*models.PostingAssessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, posting.Title)
	s.cv = cv
	if s.fails[posting.Title] {
		return nil, errors.New("model unavailable")
	}
	return &models.PostingAssessment{
		Recommendation:  "apply",
		ConfidenceScore: 85,
		MissingSkills:   []string{"Kubernetes"},
		Summary:         "Strong Go background.",
	}, nil
}

func executeTriage(t *testing.T, assessor pipeline.Assessor, cmdArgs ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TRIAGE_RPS", "0")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cv.txt"), []byte("Go developer, 5 years"), 0o644))

	cmd := newTriageCmd(&triageOptions{
		newAssessor: func(*app) (pipeline.Assessor, error) { return assessor, nil },
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--no-color", "--log-level", "error"}, cmdArgs...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTriageRatesVisiblePostings(t *testing.T) {
	server, _ := jobsServer(t, http.StatusOK, twoPostings)
	assessor := &stubAssessor{}

	out, err := executeTriage(t, assessor, "--endpoint", server.URL, "engineer", "--filter", "Engineer")
	require.NoError(t, err)

	assert.Equal(t, []string{"Software Engineer"}, assessor.seen)
	assert.Equal(t, "Go developer, 5 years", assessor.cv)
	assert.Contains(t, out, "apply (85%) Strong Go background.")
	assert.Contains(t, out, "missing: Kubernetes")
	assert.Contains(t, out, "1 of 1 worth applying to")
}

func TestTriageReportsPerPostingErrors(t *testing.T) {
	server, _ := jobsServer(t, http.StatusOK, twoPostings)
	assessor := &stubAssessor{fails: map[string]bool{"Sales Rep": true}}

	out, err := executeTriage(t, assessor, "--endpoint", server.URL, "engineer", "--workers", "2")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Software Engineer", "Sales Rep"}, assessor.seen)
	assert.Contains(t, out, "error: model unavailable")
	assert.Contains(t, out, "1 of 2 worth applying to")
}

func TestTriageNothingToRate(t *testing.T) {
	server, _ := jobsServer(t, http.StatusOK, twoPostings)
	assessor := &stubAssessor{}

	out, err := executeTriage(t, assessor, "--endpoint", server.URL, "engineer", "--filter", "Nurse")
	require.NoError(t, err)

	assert.Empty(t, assessor.seen)
	assert.Contains(t, out, "Nothing to rate.")
}

func TestTriageSearchFailure(t *testing.T) {
	server, _ := jobsServer(t, http.StatusInternalServerError, "")

	_, err := executeTriage(t, &stubAssessor{}, "--endpoint", server.URL, "engineer")
	require.Error(t, err)
}

func TestTriageMissingCV(t *testing.T) {
	_, err := executeTriage(t, &stubAssessor{}, "engineer", "--cv", "nope.txt")
	require.ErrorContains(t, err, "failed to read cv")
}

func TestPrintVerdictsOrder(t *testing.T) {
	var out bytes.Buffer
	results := []pipeline.TriageResult{
		{Posting: models.JobPosting{Title: "A", Link: "https://x/a"}, Assessment: &models.PostingAssessment{Recommendation: "do_not_apply", ConfidenceScore: 40}},
		{Posting: models.JobPosting{Title: "B", Link: "https://x/b"}, Assessment: &models.PostingAssessment{Recommendation: "apply", ConfidenceScore: 90}},
	}

	assessed := printVerdicts(&out, results, false)

	require.Len(t, assessed, 2)
	assert.Equal(t, "A", assessed[0].Posting.Title)
	assert.Less(t, bytes.Index(out.Bytes(), []byte("1. A")), bytes.Index(out.Bytes(), []byte("2. B")))
	assert.Contains(t, out.String(), "do_not_apply (40%)")
}
