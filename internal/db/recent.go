package db

import (
	"context"
	"database/sql"
	"time"
)

// enableRecent never lowers an existing recent_class.
const enableRecent = `
INSERT INTO recent (account_id, region_id, recent_class, last_query_time, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (account_id, region_id) DO UPDATE SET
    recent_class = excluded.recent_class,
    updated_at = excluded.updated_at
WHERE recent.recent_class <= excluded.recent_class
`

type EnableRecentParams struct {
	AccountID     int64
	RegionID      int64
	RecentClass   int64
	LastQueryTime int64
	UpdatedAt     time.Time
}

func (q *Queries) EnableRecent(ctx context.Context, arg EnableRecentParams) error {
	_, err := q.db.ExecContext(ctx, enableRecent,
		arg.AccountID,
		arg.RegionID,
		arg.RecentClass,
		arg.LastQueryTime,
		arg.UpdatedAt,
		arg.UpdatedAt,
	)
	return err
}

const existsRecent = `
SELECT EXISTS(SELECT 1 FROM recent WHERE account_id = ? AND region_id = ?)
`

type ExistsRecentParams struct {
	AccountID int64
	RegionID  int64
}

func (q *Queries) ExistsRecent(ctx context.Context, arg ExistsRecentParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, existsRecent, arg.AccountID, arg.RegionID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const deleteRecent = `
DELETE FROM recent
WHERE account_id = ? AND region_id = ?
`

type DeleteRecentParams struct {
	AccountID int64
	RegionID  int64
}

func (q *Queries) DeleteRecent(ctx context.Context, arg DeleteRecentParams) error {
	_, err := q.db.ExecContext(ctx, deleteRecent, arg.AccountID, arg.RegionID)
	return err
}

const listRecentByRegion = `
SELECT account_id FROM recent
WHERE region_id = ?
ORDER BY account_id
`

func (q *Queries) ListRecentByRegion(ctx context.Context, regionID int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listRecentByRegion, regionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []int64
	for rows.Next() {
		var accountID int64
		if err := rows.Scan(&accountID); err != nil {
			return nil, err
		}
		items = append(items, accountID)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// updateRecent leaves columns whose parameter is NULL untouched.
const updateRecent = `
UPDATE recent SET
    recent_class = COALESCE(?, recent_class),
    last_query_time = COALESCE(?, last_query_time),
    last_update_time = COALESCE(?, last_update_time),
    updated_at = ?
WHERE account_id = ? AND region_id = ?
`

type UpdateRecentParams struct {
	RecentClass    sql.NullInt64
	LastQueryTime  sql.NullInt64
	LastUpdateTime sql.NullInt64
	UpdatedAt      time.Time
	AccountID      int64
	RegionID       int64
}

func (q *Queries) UpdateRecent(ctx context.Context, arg UpdateRecentParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateRecent,
		arg.RecentClass,
		arg.LastQueryTime,
		arg.LastUpdateTime,
		arg.UpdatedAt,
		arg.AccountID,
		arg.RegionID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getRecentWithInfo = `
SELECT r.account_id, r.region_id, r.recent_class, r.last_query_time, r.last_update_time, r.updated_at,
    i.is_active, i.active_level, i.is_public, i.total_battles, i.last_battle_time, i.updated_at
FROM recent AS r
LEFT JOIN user_info AS i ON i.account_id = r.account_id AND i.region_id = r.region_id
WHERE r.account_id = ? AND r.region_id = ?
`

type GetRecentWithInfoParams struct {
	AccountID int64
	RegionID  int64
}

type GetRecentWithInfoRow struct {
	Recent         Recent
	IsActive       sql.NullBool
	ActiveLevel    sql.NullInt64
	IsPublic       sql.NullBool
	TotalBattles   sql.NullInt64
	LastBattleTime sql.NullInt64
	InfoUpdatedAt  sql.NullTime
}

func (q *Queries) GetRecentWithInfo(ctx context.Context, arg GetRecentWithInfoParams) (GetRecentWithInfoRow, error) {
	row := q.db.QueryRowContext(ctx, getRecentWithInfo, arg.AccountID, arg.RegionID)
	var i GetRecentWithInfoRow
	err := row.Scan(
		&i.Recent.AccountID,
		&i.Recent.RegionID,
		&i.Recent.RecentClass,
		&i.Recent.LastQueryTime,
		&i.Recent.LastUpdateTime,
		&i.Recent.UpdatedAt,
		&i.IsActive,
		&i.ActiveLevel,
		&i.IsPublic,
		&i.TotalBattles,
		&i.LastBattleTime,
		&i.InfoUpdatedAt,
	)
	return i, err
}
