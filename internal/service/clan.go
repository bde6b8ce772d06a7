package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"warships-tracker/internal/api"
	"warships-tracker/internal/constants"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type ClanFetcher interface {
	GetClanInfo(ctx context.Context, clanID int64, region domain.Region) (*api.ClanInfoResult, error)
}

type ClanLookup struct {
	NotFound  bool
	FromCache bool
	Clan      domain.ClanSummary
}

// ClanService answers clan identity lookups cache-first.
type ClanService struct {
	clans     ClanCache
	remote    ClanFetcher
	queue     Enqueuer
	freshness FreshnessPolicy
	logger    zerolog.Logger
	now       func() time.Time
}

func NewClanService(clans ClanCache, remote ClanFetcher, queue Enqueuer, logger zerolog.Logger) *ClanService {
	return &ClanService{
		clans:     clans,
		remote:    remote,
		queue:     queue,
		freshness: NewFreshnessPolicy(),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ClanService) GetClan(ctx context.Context, clanID int64, region domain.Region) (*ClanLookup, error) {
	if !region.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidRegion, int(region))
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	identity, err := s.clans.GetIdentity(ctx, clanID, region)
	switch {
	case err == nil:
		if s.freshness.IsFresh(identity.UpdatedAt, s.now()) && identity.League.Valid() {
			return &ClanLookup{
				FromCache: true,
				Clan:      domain.KnownClan(identity.ClanID, identity.Tag, identity.League),
			}, nil
		}
	case !errors.Is(err, domain.ErrNotFound):
		s.logger.Error().Err(err).Int64("clan_id", clanID).Msg("failed to read cached clan")
		return nil, storeFailure(err)
	}

	info, err := s.remote.GetClanInfo(ctx, clanID, region)
	if err != nil {
		s.logger.Error().Err(err).Int64("clan_id", clanID).Msg("failed to fetch clan info")
		return nil, remoteFailure(err)
	}
	if info.NotFound {
		return &ClanLookup{NotFound: true}, nil
	}

	league, err := domain.LeagueForColor(info.Clan.Color)
	if err != nil {
		s.logger.Error().Err(err).Int64("clan_id", clanID).Msg("clan league could not be resolved")
		return nil, fmt.Errorf("clan %d: %w", clanID, err)
	}

	s.queue.Enqueue(ctx, domain.JobClanIdentityCorrection, domain.ClanIdentityCorrection{
		ClanID: clanID,
		Region: region,
		Tag:    info.Clan.Tag,
		League: league,
	})
	return &ClanLookup{Clan: domain.KnownClan(clanID, info.Clan.Tag, league)}, nil
}
