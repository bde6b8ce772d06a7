package repository

import (
	"context"
	"time"
	"warships-tracker/internal/db"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type UserRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewUserRepository(queries *db.Queries, logger zerolog.Logger) *UserRepository {
	return &UserRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *UserRepository) GetNickname(ctx context.Context, accountID int64, region domain.Region) (string, error) {
	nickname, err := r.queries.GetUserNickname(ctx, db.GetUserNicknameParams{
		AccountID: accountID,
		RegionID:  int64(region),
	})
	if err != nil {
		return "", storeError("get user nickname", err)
	}
	return nickname, nil
}

func (r *UserRepository) UpsertNickname(ctx context.Context, accountID int64, region domain.Region, nickname string) error {
	r.logger.Debug().
		Int64("account_id", accountID).
		Stringer("region", region).
		Str("nickname", nickname).
		Msg("upserting user nickname")

	err := r.queries.UpsertUserNickname(ctx, db.UpsertUserNicknameParams{
		AccountID: accountID,
		RegionID:  int64(region),
		Nickname:  nickname,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return storeError("upsert user nickname", err)
	}
	return nil
}

func (r *UserRepository) GetClanLink(ctx context.Context, accountID int64, region domain.Region) (*domain.ClanLink, error) {
	row, err := r.queries.GetUserClan(ctx, db.GetUserClanParams{
		AccountID: accountID,
		RegionID:  int64(region),
	})
	if err != nil {
		return nil, storeError("get user clan", err)
	}

	link := &domain.ClanLink{
		AccountID: row.AccountID,
		Region:    domain.Region(row.RegionID),
		UpdatedAt: row.UpdatedAt,
	}
	if row.ClanID.Valid {
		clanID := row.ClanID.Int64
		link.ClanID = &clanID
	}
	return link, nil
}

// UpsertClanLink records the user's clan; a nil clanID records "no clan".
func (r *UserRepository) UpsertClanLink(ctx context.Context, accountID int64, region domain.Region, clanID *int64) error {
	err := r.queries.UpsertUserClan(ctx, db.UpsertUserClanParams{
		AccountID: accountID,
		RegionID:  int64(region),
		ClanID:    nullInt64(clanID),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return storeError("upsert user clan", err)
	}
	return nil
}
