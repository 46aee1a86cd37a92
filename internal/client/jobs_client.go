package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/job-scalper/internal/models"
	"github.com/job-scalper/internal/utils"
)

// ErrRequestFailed covers transport failures, non-2xx statuses and
// undecodable response bodies alike.
var ErrRequestFailed = errors.New("request failed")

type Config struct {
	Endpoint       string
	RequestTimeout time.Duration // zero means no timeout
	MaxRPS         float64       // zero means unlimited
}

// JobsClient posts search criteria to the jobs endpoint.
type JobsClient struct {
	endpoint string
	request  *utils.JSONHTTPRequest
	limiter  *rate.Limiter
	logger   *logrus.Logger
}

func NewJobsClient(config Config, logger *logrus.Logger) (*JobsClient, error) {
	u, err := url.Parse(config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse jobs endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("jobs endpoint must be an absolute url, got %q", config.Endpoint)
	}

	limit := rate.Inf
	if config.MaxRPS > 0 {
		limit = rate.Limit(config.MaxRPS)
	}

	return &JobsClient{
		endpoint: u.String(),
		request:  utils.NewJSONHTTPRequest(utils.HTTPConfig{Timeout: config.RequestTimeout}),
		limiter:  rate.NewLimiter(limit, 1),
		logger:   logger,
	}, nil
}

// Submit sends one search and returns the postings from the response.
// Invalid criteria fail with models.ErrInvalidCriteria before anything is sent.
func (c *JobsClient) Submit(ctx context.Context, searchID string, criteria models.Criteria) ([]models.JobPosting, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	log := c.logger.WithFields(logrus.Fields{
		"search_id": searchID,
		"kind":      criteria.Kind.String(),
		"levels":    criteria.EffectiveLevels(),
		"endpoint":  c.endpoint,
	})

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	headers := http.Header{}
	if searchID != "" {
		headers.Set("X-Request-ID", searchID)
	}

	start := time.Now()
	resp, err := c.request.Post(ctx, c.endpoint, criteria, headers)
	if err != nil {
		var statusErr *utils.StatusError
		if errors.As(err, &statusErr) {
			log.WithField("status", statusErr.Code).Warn("Jobs endpoint returned non-success status")
		} else {
			log.WithError(err).Warn("Jobs request failed")
		}
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	var postings []models.JobPosting
	if err := json.NewDecoder(resp.Body).Decode(&postings); err != nil {
		log.WithError(err).Warn("Failed to decode jobs response")
		return nil, fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}
	if postings == nil {
		postings = []models.JobPosting{}
	}

	log.WithFields(logrus.Fields{
		"count":    len(postings),
		"duration": time.Since(start).String(),
	}).Info("Search completed")

	return postings, nil
}
