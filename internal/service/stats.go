package service

import (
	"context"
	"warships-tracker/internal/constants"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type OverviewReader interface {
	Overview(ctx context.Context) ([]domain.RegionOverview, error)
}

type StatsService struct {
	repo   OverviewReader
	logger zerolog.Logger
}

func NewStatsService(repo OverviewReader, logger zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, logger: logger}
}

func (s *StatsService) Overview(ctx context.Context) ([]domain.RegionOverview, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	overview, err := s.repo.Overview(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load cache overview")
		return nil, storeFailure(err)
	}
	return overview, nil
}
