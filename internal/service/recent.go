package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"warships-tracker/internal/constants"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type RecentStore interface {
	Enable(ctx context.Context, accountID int64, region domain.Region, class int, queriedAt time.Time) error
	Exists(ctx context.Context, accountID int64, region domain.Region) (bool, error)
	Delete(ctx context.Context, accountID int64, region domain.Region) error
	Update(ctx context.Context, accountID int64, region domain.Region, patch domain.RecentPatch, now time.Time) error
	ListByRegion(ctx context.Context, region domain.Region) ([]int64, error)
	Detail(ctx context.Context, accountID int64, region domain.Region) (*domain.RecentDetail, error)
}

// RecentService manages the set of players whose recent battles are
// tracked. Misses are reported as domain.ErrNotFound.
type RecentService struct {
	store  RecentStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewRecentService(store RecentStore, logger zerolog.Logger) *RecentService {
	return &RecentService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *RecentService) Enable(ctx context.Context, accountID int64, region domain.Region, class int) error {
	if err := validRecent(region, &class); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.store.Enable(ctx, accountID, region, class, s.now()); err != nil {
		s.logger.Error().Err(err).Int64("account_id", accountID).Msg("failed to enable recent tracking")
		return storeFailure(err)
	}
	s.logger.Info().
		Int64("account_id", accountID).
		Str("region", region.String()).
		Int("recent_class", class).
		Msg("recent tracking enabled")
	return nil
}

func (s *RecentService) Disable(ctx context.Context, accountID int64, region domain.Region) error {
	if err := validRecent(region, nil); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.store.Delete(ctx, accountID, region); err != nil {
		s.logger.Error().Err(err).Int64("account_id", accountID).Msg("failed to disable recent tracking")
		return storeFailure(err)
	}
	return nil
}

func (s *RecentService) Enabled(ctx context.Context, accountID int64, region domain.Region) (bool, error) {
	if err := validRecent(region, nil); err != nil {
		return false, err
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	enabled, err := s.store.Exists(ctx, accountID, region)
	if err != nil {
		s.logger.Error().Err(err).Int64("account_id", accountID).Msg("failed to check recent tracking")
		return false, storeFailure(err)
	}
	return enabled, nil
}

// Update applies patch to a tracked player. Unlike Enable it may lower the
// class.
func (s *RecentService) Update(ctx context.Context, accountID int64, region domain.Region, patch domain.RecentPatch) error {
	if err := validRecent(region, patch.RecentClass); err != nil {
		return err
	}
	if patch.Empty() {
		return fmt.Errorf("%w: empty update", domain.ErrInvalidRecent)
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	err := s.store.Update(ctx, accountID, region, patch, s.now())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return err
	case err != nil:
		s.logger.Error().Err(err).Int64("account_id", accountID).Msg("failed to update recent tracking")
		return storeFailure(err)
	}
	return nil
}

func (s *RecentService) Detail(ctx context.Context, accountID int64, region domain.Region) (*domain.RecentDetail, error) {
	if err := validRecent(region, nil); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	detail, err := s.store.Detail(ctx, accountID, region)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, err
	case err != nil:
		s.logger.Error().Err(err).Int64("account_id", accountID).Msg("failed to read recent tracking")
		return nil, storeFailure(err)
	}
	return detail, nil
}

func (s *RecentService) ListByRegion(ctx context.Context, region domain.Region) ([]int64, error) {
	if err := validRecent(region, nil); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	ids, err := s.store.ListByRegion(ctx, region)
	if err != nil {
		s.logger.Error().Err(err).Str("region", region.String()).Msg("failed to list recent players")
		return nil, storeFailure(err)
	}
	return ids, nil
}

func validRecent(region domain.Region, class *int) error {
	if !region.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidRegion, int(region))
	}
	if class != nil && (*class <= 0 || *class > constants.MaxRecentClass) {
		return fmt.Errorf("%w: recent class %d", domain.ErrInvalidRecent, *class)
	}
	return nil
}
