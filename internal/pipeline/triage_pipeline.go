package pipeline

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/job-scalper/internal/models"
)

// Assessor is satisfied by *services.OpenRouterService.
type Assessor interface {
	AssessPosting(ctx context.Context, cv string, posting models.JobPosting) (*models.PostingAssessment, error)
}

// TriageResult is the outcome for one posting. Exactly one of Assessment and
// Error is set.
type TriageResult struct {
	Posting    models.JobPosting
	Assessment *models.PostingAssessment
	Error      error
}

// TriagePipeline fans postings out to a fixed number of workers that share
// one rate limit.
type TriagePipeline struct {
	assessor   Assessor
	numWorkers int
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

type indexedPosting struct {
	index   int
	posting models.JobPosting
}

// NewTriagePipeline creates a pipeline; rps <= 0 disables the rate limit.
func NewTriagePipeline(assessor Assessor, numWorkers int, rps float64, logger *logrus.Logger) *TriagePipeline {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &TriagePipeline{
		assessor:   assessor,
		numWorkers: numWorkers,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// Run assesses every posting and returns results in input order.
func (p *TriagePipeline) Run(ctx context.Context, cv string, postings []models.JobPosting) []TriageResult {
	results := make([]TriageResult, len(postings))
	jobChan := make(chan indexedPosting)

	var wg sync.WaitGroup
	for range p.numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobChan {
				results[item.index] = p.assess(ctx, cv, item.posting)
			}
		}()
	}

	for i, posting := range postings {
		jobChan <- indexedPosting{index: i, posting: posting}
	}
	close(jobChan)
	wg.Wait()

	return results
}

func (p *TriagePipeline) assess(ctx context.Context, cv string, posting models.JobPosting) TriageResult {
	result := TriageResult{Posting: posting}
	if err := p.limiter.Wait(ctx); err != nil {
		result.Error = err
		return result
	}

	assessment, err := p.assessor.AssessPosting(ctx, cv, posting)
	if err != nil {
		p.logger.WithError(err).WithField("link", posting.Link).Warn("Assessment failed")
		result.Error = err
		return result
	}

	p.logger.WithFields(logrus.Fields{
		"link":           posting.Link,
		"recommendation": assessment.Recommendation,
		"confidence":     assessment.ConfidenceScore,
	}).Debug("Received assessment")
	result.Assessment = assessment
	return result
}
