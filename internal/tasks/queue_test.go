package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
	"warships-tracker/internal/domain"
	"warships-tracker/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKind domain.JobKind = "test"

type testPayload struct {
	N int
}

func newTestQueue(workers, size, maxTries int) (*Queue, *metrics.Metrics) {
	m := metrics.New()
	return newQueue(workers, size, maxTries, m, zerolog.Nop()), m
}

func stop(t *testing.T, q *Queue) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, q.Stop(ctx))
}

func jobCount(m *metrics.Metrics, kind domain.JobKind, result string) float64 {
	return testutil.ToFloat64(m.Jobs.WithLabelValues(string(kind), result))
}

func TestQueueRunsHandlers(t *testing.T) {
	q, m := newTestQueue(2, 16, 3)
	var sum atomic.Int64
	Handle(q, testKind, func(ctx context.Context, p testPayload) error {
		sum.Add(int64(p.N))
		return nil
	})
	q.Start()

	for i := 1; i <= 10; i++ {
		q.Enqueue(context.Background(), testKind, testPayload{N: i})
	}
	stop(t, q)

	assert.Equal(t, int64(55), sum.Load())
	assert.Equal(t, float64(10), jobCount(m, testKind, "ok"))
}

func TestQueueDropsWhenFull(t *testing.T) {
	q, m := newTestQueue(1, 1, 1)
	var ran atomic.Int32
	Handle(q, testKind, func(ctx context.Context, p testPayload) error {
		ran.Add(1)
		return nil
	})

	q.Enqueue(context.Background(), testKind, testPayload{})
	q.Enqueue(context.Background(), testKind, testPayload{})
	assert.Equal(t, float64(1), jobCount(m, testKind, "dropped"))

	q.Start()
	stop(t, q)
	assert.Equal(t, int32(1), ran.Load())
}

func TestQueueDropsAfterStop(t *testing.T) {
	q, m := newTestQueue(1, 4, 1)
	Handle(q, testKind, func(ctx context.Context, p testPayload) error { return nil })
	q.Start()
	stop(t, q)

	assert.NotPanics(t, func() {
		q.Enqueue(context.Background(), testKind, testPayload{})
	})
	assert.Equal(t, float64(1), jobCount(m, testKind, "dropped"))
}

func TestQueueDropsUnknownKind(t *testing.T) {
	q, m := newTestQueue(1, 4, 1)
	q.Enqueue(context.Background(), "unknown", testPayload{})
	assert.Equal(t, float64(1), jobCount(m, "unknown", "dropped"))
}

func TestQueueRetriesStoreErrors(t *testing.T) {
	q, m := newTestQueue(1, 4, 5)
	var attempts atomic.Int32
	Handle(q, testKind, func(ctx context.Context, p testPayload) error {
		if attempts.Add(1) < 3 {
			return fmt.Errorf("upsert: %w", domain.ErrStoreUnavailable)
		}
		return nil
	})
	q.Start()
	q.Enqueue(context.Background(), testKind, testPayload{})
	stop(t, q)

	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, float64(1), jobCount(m, testKind, "ok"))
}

func TestQueueGivesUpAfterMaxTries(t *testing.T) {
	q, m := newTestQueue(1, 4, 2)
	var attempts atomic.Int32
	Handle(q, testKind, func(ctx context.Context, p testPayload) error {
		attempts.Add(1)
		return domain.ErrStoreUnavailable
	})
	q.Start()
	q.Enqueue(context.Background(), testKind, testPayload{})
	stop(t, q)

	assert.Equal(t, int32(2), attempts.Load())
	assert.Equal(t, float64(1), jobCount(m, testKind, "failed"))
}

func TestQueueDoesNotRetryOtherErrors(t *testing.T) {
	q, m := newTestQueue(1, 4, 5)
	var attempts atomic.Int32
	Handle(q, testKind, func(ctx context.Context, p testPayload) error {
		attempts.Add(1)
		return errors.New("constraint failed")
	})
	q.Start()
	q.Enqueue(context.Background(), testKind, testPayload{})
	stop(t, q)

	assert.Equal(t, int32(1), attempts.Load())
	assert.Equal(t, float64(1), jobCount(m, testKind, "failed"))
}

func TestQueueRejectsWrongPayloadType(t *testing.T) {
	q, m := newTestQueue(1, 4, 5)
	Handle(q, testKind, func(ctx context.Context, p testPayload) error { return nil })
	q.Start()
	q.Enqueue(context.Background(), testKind, "not a payload")
	stop(t, q)

	assert.Equal(t, float64(1), jobCount(m, testKind, "failed"))
}

func TestQueueStopTimeout(t *testing.T) {
	q, _ := newTestQueue(1, 4, 1)
	started := make(chan struct{})
	Handle(q, testKind, func(ctx context.Context, p testPayload) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	q.Start()
	q.Enqueue(context.Background(), testKind, testPayload{})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Stop(ctx), context.DeadlineExceeded)
}
