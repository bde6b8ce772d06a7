package db

import (
	"context"
	"time"
)

const getClanBasic = `
SELECT clan_id, region_id, tag, league, created_at, updated_at FROM clan_basic
WHERE clan_id = ? AND region_id = ?
`

type GetClanBasicParams struct {
	ClanID   int64
	RegionID int64
}

func (q *Queries) GetClanBasic(ctx context.Context, arg GetClanBasicParams) (ClanBasic, error) {
	row := q.db.QueryRowContext(ctx, getClanBasic, arg.ClanID, arg.RegionID)
	var i ClanBasic
	err := row.Scan(
		&i.ClanID,
		&i.RegionID,
		&i.Tag,
		&i.League,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertClanBasic = `
INSERT INTO clan_basic (clan_id, region_id, tag, league, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (clan_id, region_id) DO UPDATE SET
    tag = excluded.tag,
    league = excluded.league,
    updated_at = excluded.updated_at
`

type UpsertClanBasicParams struct {
	ClanID    int64
	RegionID  int64
	Tag       string
	League    int64
	UpdatedAt time.Time
}

func (q *Queries) UpsertClanBasic(ctx context.Context, arg UpsertClanBasicParams) error {
	_, err := q.db.ExecContext(ctx, upsertClanBasic,
		arg.ClanID,
		arg.RegionID,
		arg.Tag,
		arg.League,
		arg.UpdatedAt,
		arg.UpdatedAt,
	)
	return err
}
