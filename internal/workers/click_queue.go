// Package workers hosts the best-effort side-effect machinery. Click
// increments ride a buffered channel so the redirect response never waits
// on them, and their failures never surface past a log line.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kaukau001/url-shortener-api/internal/repository"
)

type ClickQueue struct {
	links   repository.LinkRepository
	log     zerolog.Logger
	events  chan string
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewClickQueue(links repository.LinkRepository, log zerolog.Logger, queueSize int, timeout time.Duration) *ClickQueue {
	return &ClickQueue{
		links:   links,
		log:     log.With().Str("component", "click_queue").Logger(),
		events:  make(chan string, queueSize),
		timeout: timeout,
	}
}

// Start launches workerCount goroutines draining the queue.
func (q *ClickQueue) Start(workerCount int) {
	for i := 0; i < workerCount; i++ {
		q.wg.Add(1)
		go q.worker()
	}
}

// Schedule enqueues a click increment without ever blocking. A full queue
// drops the event; the click counter is best-effort by contract.
func (q *ClickQueue) Schedule(linkID string) {
	select {
	case q.events <- linkID:
	default:
		q.log.Warn().Str("link_id", linkID).Msg("click queue full, dropping increment")
	}
}

// Stop closes the queue and waits for in-flight increments to finish.
func (q *ClickQueue) Stop() {
	close(q.events)
	q.wg.Wait()
}

func (q *ClickQueue) worker() {
	defer q.wg.Done()
	for linkID := range q.events {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		err := q.links.IncrementClicks(ctx, linkID)
		cancel()
		if err != nil {
			q.log.Warn().Err(err).Str("link_id", linkID).Msg("failed to increment clicks")
		}
	}
}
