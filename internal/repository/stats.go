package repository

import (
	"context"
	"warships-tracker/internal/db"
	"warships-tracker/internal/domain"
)

type StatsRepository struct {
	queries *db.Queries
}

func NewStatsRepository(queries *db.Queries) *StatsRepository {
	return &StatsRepository{queries: queries}
}

func (r *StatsRepository) Overview(ctx context.Context) ([]domain.RegionOverview, error) {
	rows, err := r.queries.CountCachedByRegion(ctx)
	if err != nil {
		return nil, storeError("count cached by region", err)
	}

	result := make([]domain.RegionOverview, len(rows))
	for i, row := range rows {
		result[i] = domain.RegionOverview{
			Region: row.RegionStr,
			Users:  row.Users,
			Clans:  row.Clans,
			Recent: row.Recent,
		}
	}
	return result, nil
}
