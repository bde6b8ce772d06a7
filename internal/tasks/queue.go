// Package tasks runs background correction jobs on an in-process worker
// pool. Enqueue never blocks: when the buffer is full or the queue is
// stopped the job is dropped and logged.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"warships-tracker/internal/config"
	"warships-tracker/internal/constants"
	"warships-tracker/internal/domain"
	"warships-tracker/internal/metrics"

	"github.com/cenkalti/backoff/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type Job struct {
	ID         string
	Kind       domain.JobKind
	Payload    any
	EnqueuedAt time.Time
}

type HandlerFunc func(ctx context.Context, payload any) error

var errPayloadType = errors.New("unexpected payload type")

type Queue struct {
	jobs     chan Job
	handlers map[domain.JobKind]HandlerFunc
	workers  int
	maxTries int
	metrics  *metrics.Metrics
	logger   zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewQueue(cfg *config.Config, m *metrics.Metrics, logger zerolog.Logger) *Queue {
	return newQueue(cfg.WorkerCount, cfg.QueueSize, cfg.JobMaxTries, m, logger)
}

func newQueue(workers, size, maxTries int, m *metrics.Metrics, logger zerolog.Logger) *Queue {
	return &Queue{
		jobs:     make(chan Job, size),
		handlers: make(map[domain.JobKind]HandlerFunc),
		workers:  workers,
		maxTries: maxTries,
		metrics:  m,
		logger:   logger.With().Str("component", "tasks").Logger(),
	}
}

// Handle registers fn for kind. Must be called before Start.
func Handle[T any](q *Queue, kind domain.JobKind, fn func(ctx context.Context, payload T) error) {
	q.handlers[kind] = func(ctx context.Context, payload any) error {
		p, ok := payload.(T)
		if !ok {
			return fmt.Errorf("%w: %s got %T", errPayloadType, kind, payload)
		}
		return fn(ctx, p)
	}
}

// Enqueue submits a job. ctx is only used for the caller's values; jobs run
// on the queue's own context and outlive the request.
func (q *Queue) Enqueue(ctx context.Context, kind domain.JobKind, payload any) {
	if _, ok := q.handlers[kind]; !ok {
		q.drop(kind, "no handler registered")
		return
	}

	id, err := gonanoid.New()
	if err != nil {
		q.drop(kind, "failed to generate job id")
		return
	}
	job := Job{ID: id, Kind: kind, Payload: payload, EnqueuedAt: time.Now()}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.drop(kind, "queue stopped")
		return
	}
	select {
	case q.jobs <- job:
		q.logger.Debug().Str("job_id", job.ID).Str("job_kind", string(kind)).Msg("job enqueued")
	default:
		q.drop(kind, "queue full")
	}
}

func (q *Queue) drop(kind domain.JobKind, reason string) {
	q.metrics.Jobs.WithLabelValues(string(kind), "dropped").Inc()
	q.logger.Warn().Str("job_kind", string(kind)).Str("reason", reason).Msg("job dropped")
}

func (q *Queue) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel

	q.logger.Info().Int("workers", q.workers).Msg("starting job workers")
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.run(ctx)
	}
}

// Stop refuses new jobs and waits for queued ones to finish. If ctx expires
// first, in-flight retries are abandoned.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.logger.Info().Msg("job workers stopped")
		return nil
	case <-ctx.Done():
		if q.cancel != nil {
			q.cancel()
		}
		return ctx.Err()
	}
}

func (q *Queue) run(ctx context.Context) {
	defer q.wg.Done()
	for job := range q.jobs {
		q.execute(ctx, job)
	}
}

func (q *Queue) execute(ctx context.Context, job Job) {
	log := q.logger.With().Str("job_id", job.ID).Str("job_kind", string(job.Kind)).Logger()
	handler := q.handlers[job.Kind]

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = constants.JobInitialBackoff
	b.MaxInterval = constants.JobMaxBackoff

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		jobCtx, cancel := context.WithTimeout(ctx, constants.JobTimeout)
		defer cancel()

		err := handler(jobCtx, job.Payload)
		if err == nil {
			return struct{}{}, nil
		}
		// only store outages are worth another attempt
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			return struct{}{}, backoff.Permanent(err)
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("job attempt failed")
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(q.maxTries)))

	if err != nil {
		q.metrics.Jobs.WithLabelValues(string(job.Kind), "failed").Inc()
		log.Error().Err(err).Int("attempts", attempt).Msg("job failed")
		return
	}
	q.metrics.Jobs.WithLabelValues(string(job.Kind), "ok").Inc()
	log.Debug().Dur("latency", time.Since(job.EnqueuedAt)).Msg("job done")
}
