package services

import (
	"context"
	"sync"
	"time"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
	"github.com/keystone-labs/kbs-cli/internal/logger"
)

// Ensure Recorder implements the interface.
var _ TelemetryRecorder = (*Recorder)(nil)

// DefaultQueueSize bounds the telemetry queue. A full queue drops the
// event rather than block the user-visible action.
const DefaultQueueSize = 64

// defaultWriteTimeout bounds each telemetry round trip.
const defaultWriteTimeout = 10 * time.Second

// telemetryWrite is one pending event; exactly one field is set.
type telemetryWrite struct {
	search *domain.SearchEvent
	view   *domain.ViewEvent
}

// Recorder drains telemetry writes on a background goroutine, decoupled
// from the synchronous result-rendering path. Write failures are logged
// and swallowed.
type Recorder struct {
	store   driven.TelemetryStore
	queue   chan telemetryWrite
	timeout time.Duration
	wg      sync.WaitGroup
	once    sync.Once
}

// NewRecorder creates and starts a telemetry recorder. queueSize <= 0
// uses DefaultQueueSize.
func NewRecorder(store driven.TelemetryStore, queueSize int) *Recorder {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	r := &Recorder{
		store:   store,
		queue:   make(chan telemetryWrite, queueSize),
		timeout: defaultWriteTimeout,
	}

	r.wg.Add(1)
	go r.drain()

	return r
}

// RecordSearch enqueues a search event without blocking.
func (r *Recorder) RecordSearch(event domain.SearchEvent) {
	r.enqueue(telemetryWrite{search: &event})
}

// RecordView enqueues a view event without blocking.
func (r *Recorder) RecordView(event domain.ViewEvent) {
	r.enqueue(telemetryWrite{view: &event})
}

func (r *Recorder) enqueue(w telemetryWrite) {
	select {
	case r.queue <- w:
	default:
		logger.Warn("Telemetry queue full, dropping event")
	}
}

// drain writes queued events until the queue is closed.
func (r *Recorder) drain() {
	defer r.wg.Done()

	for w := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)

		var err error
		switch {
		case w.search != nil:
			err = r.store.RecordSearch(ctx, *w.search)
		case w.view != nil:
			err = r.store.RecordView(ctx, *w.view)
		}
		cancel()

		if err != nil {
			logger.Warn("Telemetry write failed: %v", err)
		}
	}
}

// Close stops accepting events, flushes the queue and waits for the
// worker to finish.
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.queue)
	})
	r.wg.Wait()
}
