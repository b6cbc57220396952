// Package stats applies access counter increments in the background.
//
// Delivery is at-most-once and best-effort: RecordAccess never blocks, events
// are dropped when the queue is full, failed increments are logged and not
// retried, and events still queued when the process stops are lost.
package stats

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers   = 4
	DefaultQueueSize = 1024
	DefaultTimeout   = 5 * time.Second
)

type accessCounter interface {
	IncrementAccessCount(ctx context.Context, shortCode string) error
}

type Recorder struct {
	counter accessCounter
	logger  *slog.Logger
	queue   chan string
	workers int
	timeout time.Duration
}

type Option func(*Recorder)

func WithWorkers(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.queue = make(chan string, n)
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(r *Recorder) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func NewRecorder(counter accessCounter, logger *slog.Logger, opts ...Option) *Recorder {
	r := &Recorder{
		counter: counter,
		logger:  logger,
		queue:   make(chan string, DefaultQueueSize),
		workers: DefaultWorkers,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RecordAccess schedules an increment of the access counter for shortCode.
// It returns immediately and reports whether the event was queued.
func (r *Recorder) RecordAccess(shortCode string) bool {
	const op = "stats.Recorder.RecordAccess"

	select {
	case r.queue <- shortCode:
		return true
	default:
		r.logger.Warn("stats queue is full, access dropped",
			slog.Group(op, slog.String("short_code", shortCode)),
		)
		return false
	}
}

// Run processes queued events until ctx is done.
func (r *Recorder) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < r.workers; i++ {
		g.Go(func() error {
			r.work(ctx)
			return nil
		})
	}

	return g.Wait()
}

func (r *Recorder) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case shortCode := <-r.queue:
			r.increment(shortCode)
		}
	}
}

// increment runs on a context of its own so that neither the request that
// triggered it nor the shutdown of the worker pool cancels it midway.
func (r *Recorder) increment(shortCode string) {
	const op = "stats.Recorder.increment"

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.counter.IncrementAccessCount(ctx, shortCode); err != nil {
		r.logger.Error("failed to increment access count",
			slog.Group(op, slog.String("short_code", shortCode), slog.Any("err", err)),
		)
	}
}
