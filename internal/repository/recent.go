package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"warships-tracker/internal/db"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type RecentRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewRecentRepository(queries *db.Queries, logger zerolog.Logger) *RecentRepository {
	return &RecentRepository{
		queries: queries,
		logger:  logger,
	}
}

// Enable starts tracking with queriedAt as the first query time, or widens
// the class of a player already tracked.
func (r *RecentRepository) Enable(ctx context.Context, accountID int64, region domain.Region, class int, queriedAt time.Time) error {
	err := r.queries.EnableRecent(ctx, db.EnableRecentParams{
		AccountID:     accountID,
		RegionID:      int64(region),
		RecentClass:   int64(class),
		LastQueryTime: queriedAt.Unix(),
		UpdatedAt:     queriedAt.UTC(),
	})
	if err != nil {
		return storeError("enable recent", err)
	}
	return nil
}

func (r *RecentRepository) Exists(ctx context.Context, accountID int64, region domain.Region) (bool, error) {
	exists, err := r.queries.ExistsRecent(ctx, db.ExistsRecentParams{
		AccountID: accountID,
		RegionID:  int64(region),
	})
	if err != nil {
		return false, storeError("exists recent", err)
	}
	return exists, nil
}

func (r *RecentRepository) Delete(ctx context.Context, accountID int64, region domain.Region) error {
	err := r.queries.DeleteRecent(ctx, db.DeleteRecentParams{
		AccountID: accountID,
		RegionID:  int64(region),
	})
	if err != nil {
		return storeError("delete recent", err)
	}
	return nil
}

func (r *RecentRepository) Update(ctx context.Context, accountID int64, region domain.Region, patch domain.RecentPatch, now time.Time) error {
	var class *int64
	if patch.RecentClass != nil {
		v := int64(*patch.RecentClass)
		class = &v
	}
	n, err := r.queries.UpdateRecent(ctx, db.UpdateRecentParams{
		RecentClass:    nullInt64(class),
		LastQueryTime:  nullInt64(patch.LastQueryTime),
		LastUpdateTime: nullInt64(patch.LastUpdateTime),
		UpdatedAt:      now.UTC(),
		AccountID:      accountID,
		RegionID:       int64(region),
	})
	if err != nil {
		return storeError("update recent", err)
	}
	if n == 0 {
		return fmt.Errorf("update recent: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *RecentRepository) ListByRegion(ctx context.Context, region domain.Region) ([]int64, error) {
	ids, err := r.queries.ListRecentByRegion(ctx, int64(region))
	if err != nil {
		return nil, storeError("list recent", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (r *RecentRepository) Detail(ctx context.Context, accountID int64, region domain.Region) (*domain.RecentDetail, error) {
	row, err := r.queries.GetRecentWithInfo(ctx, db.GetRecentWithInfoParams{
		AccountID: accountID,
		RegionID:  int64(region),
	})
	if err != nil {
		return nil, storeError("get recent", err)
	}

	detail := &domain.RecentDetail{
		Recent: domain.RecentUser{
			AccountID:      row.Recent.AccountID,
			Region:         domain.Region(row.Recent.RegionID),
			RecentClass:    int(row.Recent.RecentClass),
			LastQueryTime:  row.Recent.LastQueryTime,
			LastUpdateTime: row.Recent.LastUpdateTime,
			UpdatedAt:      row.Recent.UpdatedAt,
		},
	}
	if row.IsActive.Valid {
		detail.Activity = &domain.Activity{
			AccountID:      row.Recent.AccountID,
			Region:         domain.Region(row.Recent.RegionID),
			IsActive:       row.IsActive.Bool,
			ActiveLevel:    int(row.ActiveLevel.Int64),
			IsPublic:       row.IsPublic.Bool,
			TotalBattles:   row.TotalBattles.Int64,
			LastBattleTime: row.LastBattleTime.Int64,
			UpdatedAt:      nullTime(row.InfoUpdatedAt),
		}
	}
	return detail, nil
}

func nullTime(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}
