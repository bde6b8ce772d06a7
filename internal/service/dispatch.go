package service

import (
	"context"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// Enqueuer accepts background jobs without blocking. Submission failures
// are the queue's to log; the caller never sees them.
type Enqueuer interface {
	Enqueue(ctx context.Context, kind domain.JobKind, payload any)
}

type CorrectionDispatcher struct {
	queue  Enqueuer
	logger zerolog.Logger
}

func NewCorrectionDispatcher(queue Enqueuer, logger zerolog.Logger) *CorrectionDispatcher {
	return &CorrectionDispatcher{queue: queue, logger: logger}
}

// Dispatch enqueues the outcome's corrections and then exactly one
// activity upsert.
func (d *CorrectionDispatcher) Dispatch(ctx context.Context, outcome MergeOutcome) {
	for _, c := range outcome.Corrections {
		d.queue.Enqueue(ctx, c.Kind, c.Payload)
	}
	d.queue.Enqueue(ctx, domain.JobActivityUpsert, outcome.Activity)

	d.logger.Debug().
		Int64("account_id", outcome.Activity.AccountID).
		Stringer("outcome", outcome.Kind).
		Int("corrections", len(outcome.Corrections)).
		Msg("corrections dispatched")
}
