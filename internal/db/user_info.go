package db

import (
	"context"
	"time"
)

const getUserInfo = `
SELECT account_id, region_id, is_active, active_level, is_public, total_battles, last_battle_time, updated_at
FROM user_info
WHERE account_id = ? AND region_id = ?
`

type GetUserInfoParams struct {
	AccountID int64
	RegionID  int64
}

func (q *Queries) GetUserInfo(ctx context.Context, arg GetUserInfoParams) (UserInfo, error) {
	row := q.db.QueryRowContext(ctx, getUserInfo, arg.AccountID, arg.RegionID)
	var i UserInfo
	err := row.Scan(
		&i.AccountID,
		&i.RegionID,
		&i.IsActive,
		&i.ActiveLevel,
		&i.IsPublic,
		&i.TotalBattles,
		&i.LastBattleTime,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertUserInfo = `
INSERT INTO user_info (account_id, region_id, is_active, active_level, is_public, total_battles, last_battle_time, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (account_id, region_id) DO UPDATE SET
    is_active = excluded.is_active,
    active_level = excluded.active_level,
    is_public = excluded.is_public,
    total_battles = excluded.total_battles,
    last_battle_time = excluded.last_battle_time,
    updated_at = excluded.updated_at
`

type UpsertUserInfoParams struct {
	AccountID      int64
	RegionID       int64
	IsActive       bool
	ActiveLevel    int64
	IsPublic       bool
	TotalBattles   int64
	LastBattleTime int64
	UpdatedAt      time.Time
}

func (q *Queries) UpsertUserInfo(ctx context.Context, arg UpsertUserInfoParams) error {
	_, err := q.db.ExecContext(ctx, upsertUserInfo,
		arg.AccountID,
		arg.RegionID,
		arg.IsActive,
		arg.ActiveLevel,
		arg.IsPublic,
		arg.TotalBattles,
		arg.LastBattleTime,
		arg.UpdatedAt,
	)
	return err
}
