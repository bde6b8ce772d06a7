package repository

import (
	"context"
	"time"
	"warships-tracker/internal/db"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type ClanRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewClanRepository(queries *db.Queries, logger zerolog.Logger) *ClanRepository {
	return &ClanRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *ClanRepository) GetIdentity(ctx context.Context, clanID int64, region domain.Region) (*domain.ClanIdentity, error) {
	row, err := r.queries.GetClanBasic(ctx, db.GetClanBasicParams{
		ClanID:   clanID,
		RegionID: int64(region),
	})
	if err != nil {
		return nil, storeError("get clan basic", err)
	}

	return &domain.ClanIdentity{
		ClanID:    row.ClanID,
		Region:    domain.Region(row.RegionID),
		Tag:       row.Tag,
		League:    domain.League(row.League),
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *ClanRepository) UpsertIdentity(ctx context.Context, clan domain.ClanIdentityCorrection) error {
	r.logger.Debug().
		Int64("clan_id", clan.ClanID).
		Stringer("region", clan.Region).
		Str("tag", clan.Tag).
		Stringer("league", clan.League).
		Msg("upserting clan identity")

	err := r.queries.UpsertClanBasic(ctx, db.UpsertClanBasicParams{
		ClanID:    clan.ClanID,
		RegionID:  int64(clan.Region),
		Tag:       clan.Tag,
		League:    int64(clan.League),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return storeError("upsert clan basic", err)
	}
	return nil
}
