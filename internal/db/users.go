package db

import (
	"context"
	"database/sql"
	"time"
)

const getUserNickname = `
SELECT nickname FROM user_basic
WHERE account_id = ? AND region_id = ?
`

type GetUserNicknameParams struct {
	AccountID int64
	RegionID  int64
}

func (q *Queries) GetUserNickname(ctx context.Context, arg GetUserNicknameParams) (string, error) {
	row := q.db.QueryRowContext(ctx, getUserNickname, arg.AccountID, arg.RegionID)
	var nickname string
	err := row.Scan(&nickname)
	return nickname, err
}

const upsertUserNickname = `
INSERT INTO user_basic (account_id, region_id, nickname, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (account_id, region_id) DO UPDATE SET
    nickname = excluded.nickname,
    updated_at = excluded.updated_at
`

type UpsertUserNicknameParams struct {
	AccountID int64
	RegionID  int64
	Nickname  string
	UpdatedAt time.Time
}

func (q *Queries) UpsertUserNickname(ctx context.Context, arg UpsertUserNicknameParams) error {
	_, err := q.db.ExecContext(ctx, upsertUserNickname,
		arg.AccountID,
		arg.RegionID,
		arg.Nickname,
		arg.UpdatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getUserClan = `
SELECT account_id, region_id, clan_id, updated_at FROM user_clan
WHERE account_id = ? AND region_id = ?
`

type GetUserClanParams struct {
	AccountID int64
	RegionID  int64
}

func (q *Queries) GetUserClan(ctx context.Context, arg GetUserClanParams) (UserClan, error) {
	row := q.db.QueryRowContext(ctx, getUserClan, arg.AccountID, arg.RegionID)
	var i UserClan
	err := row.Scan(
		&i.AccountID,
		&i.RegionID,
		&i.ClanID,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertUserClan = `
INSERT INTO user_clan (account_id, region_id, clan_id, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (account_id, region_id) DO UPDATE SET
    clan_id = excluded.clan_id,
    updated_at = excluded.updated_at
`

type UpsertUserClanParams struct {
	AccountID int64
	RegionID  int64
	ClanID    sql.NullInt64
	UpdatedAt time.Time
}

func (q *Queries) UpsertUserClan(ctx context.Context, arg UpsertUserClanParams) error {
	_, err := q.db.ExecContext(ctx, upsertUserClan,
		arg.AccountID,
		arg.RegionID,
		arg.ClanID,
		arg.UpdatedAt,
	)
	return err
}
