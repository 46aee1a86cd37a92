package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/job-scalper/internal/models"
	"github.com/job-scalper/internal/view"
)

var ErrClosed = errors.New("controller closed")

// Searcher is satisfied by *client.JobsClient.
type Searcher interface {
	Submit(ctx context.Context, searchID string, criteria models.Criteria) ([]models.JobPosting, error)
}

// Listener receives every new state. It runs with the controller locked and
// must not call back into the controller.
type Listener func(view.State)

// Controller owns the search view state. All changes go through Dispatch.
type Controller struct {
	searcher Searcher
	logger   *logrus.Logger
	newID    func() string

	mu        sync.Mutex
	state     view.State
	listeners []Listener
	closed    bool
}

func New(searcher Searcher, logger *logrus.Logger) *Controller {
	return &Controller{
		searcher: searcher,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

func (c *Controller) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *Controller) State() view.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch reduces the action into the current state and notifies listeners.
// After Close it is a no-op.
func (c *Controller) Dispatch(a view.Action) view.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.state
	}
	c.state = view.Reduce(c.state, a)
	for _, l := range c.listeners {
		l(c.state)
	}
	return c.state
}

func (c *Controller) SetFilter(text string) view.State {
	return c.Dispatch(view.FilterChanged{Filter: text})
}

// Submit runs one search and blocks until it completes. A submit issued while
// another is in flight is not guarded; whichever finishes last sets the state.
// The returned error is the searcher's, the state carries the display message.
func (c *Controller) Submit(ctx context.Context, criteria models.Criteria) (view.State, error) {
	if c.isClosed() {
		return c.State(), ErrClosed
	}

	id := c.newID()
	log := c.logger.WithFields(logrus.Fields{"search_id": id, "query": criteria.Label()})
	log.Debug("Submitting search")
	c.Dispatch(view.SubmitStarted{SearchID: id, Criteria: criteria})

	jobs, err := c.searcher.Submit(ctx, id, criteria)
	if c.isClosed() {
		log.Debug("Controller closed before search completed, discarding result")
		return c.State(), nil
	}
	if err != nil {
		msg := view.FailedMessage
		if errors.Is(err, models.ErrInvalidCriteria) {
			msg = err.Error()
		}
		log.WithError(err).Warn("Search failed")
		return c.Dispatch(view.SubmitFailed{SearchID: id, Criteria: criteria, Message: msg}), err
	}

	return c.Dispatch(view.SubmitSucceeded{SearchID: id, Criteria: criteria, Jobs: jobs}), nil
}

// Close discards the result of any search still in flight.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
