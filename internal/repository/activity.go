package repository

import (
	"context"
	"time"
	"warships-tracker/internal/db"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type ActivityRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewActivityRepository(queries *db.Queries, logger zerolog.Logger) *ActivityRepository {
	return &ActivityRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *ActivityRepository) Get(ctx context.Context, accountID int64, region domain.Region) (*domain.Activity, error) {
	row, err := r.queries.GetUserInfo(ctx, db.GetUserInfoParams{
		AccountID: accountID,
		RegionID:  int64(region),
	})
	if err != nil {
		return nil, storeError("get user info", err)
	}

	return &domain.Activity{
		AccountID:      row.AccountID,
		Region:         domain.Region(row.RegionID),
		IsActive:       row.IsActive,
		ActiveLevel:    int(row.ActiveLevel),
		IsPublic:       row.IsPublic,
		TotalBattles:   row.TotalBattles,
		LastBattleTime: row.LastBattleTime,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

func (r *ActivityRepository) Upsert(ctx context.Context, activity domain.Activity) error {
	err := r.queries.UpsertUserInfo(ctx, db.UpsertUserInfoParams{
		AccountID:      activity.AccountID,
		RegionID:       int64(activity.Region),
		IsActive:       activity.IsActive,
		ActiveLevel:    int64(activity.ActiveLevel),
		IsPublic:       activity.IsPublic,
		TotalBattles:   activity.TotalBattles,
		LastBattleTime: activity.LastBattleTime,
		UpdatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return storeError("upsert user info", err)
	}
	return nil
}
