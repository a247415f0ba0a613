package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeroongit/Smart-news-hub/internal/logger"
	"github.com/zeroongit/Smart-news-hub/internal/metrics"
	"github.com/zeroongit/Smart-news-hub/internal/repository"
)

// viewWriteTimeout bounds a single counter write so a slow database
// cannot back up the worker pool.
const viewWriteTimeout = 5 * time.Second

// ViewTracker increments article visitor counters off the request
// path. Record never blocks: events are queued to a worker pool and
// dropped (with a metric) when the queue is full. The counter is
// best-effort by design — it only ever grows.
type ViewTracker struct {
	articles repository.ArticleRepository

	queue    chan string
	stopChan chan struct{}
	closed   atomic.Bool
	wg       sync.WaitGroup
}

// NewViewTracker creates a ViewTracker and starts its workers.
func NewViewTracker(articles repository.ArticleRepository, workerCount, queueSize int) *ViewTracker {
	t := &ViewTracker{
		articles: articles,
		queue:    make(chan string, queueSize),
		stopChan: make(chan struct{}),
	}

	for i := 0; i < workerCount; i++ {
		t.wg.Add(1)
		go t.worker()
	}

	return t
}

func (t *ViewTracker) worker() {
	defer t.wg.Done()

	for {
		select {
		case articleID := <-t.queue:
			t.process(articleID)
		case <-t.stopChan:
			// Drain events queued before shutdown, then exit.
			for {
				select {
				case articleID := <-t.queue:
					t.process(articleID)
				default:
					return
				}
			}
		}
	}
}

func (t *ViewTracker) process(articleID string) {
	ctx, cancel := context.WithTimeout(context.Background(), viewWriteTimeout)
	defer cancel()

	if err := t.articles.IncrementVisitorCount(ctx, articleID); err != nil {
		metrics.ViewEventsTotal.WithLabelValues("failed").Inc()
		logger.Warn("Failed to record article view",
			slog.String("article_id", articleID),
			slog.String("error", err.Error()))
		return
	}
	metrics.ViewEventsTotal.WithLabelValues("processed").Inc()
}

// Record queues a view event. Events arriving after Close, or while
// the queue is full, are dropped. The queue channel is never closed,
// so Record racing with Close cannot panic; an event slipping in after
// the closed check simply goes unprocessed.
func (t *ViewTracker) Record(articleID string) {
	if t.closed.Load() {
		return
	}
	select {
	case t.queue <- articleID:
		metrics.ViewEventsTotal.WithLabelValues("queued").Inc()
	default:
		metrics.ViewEventsTotal.WithLabelValues("dropped").Inc()
	}
}

// Close shuts down the worker pool and waits for the workers to drain
// the queue and finish in-flight writes.
func (t *ViewTracker) Close() {
	if t.closed.Swap(true) {
		return
	}
	close(t.stopChan)
	t.wg.Wait()
}
