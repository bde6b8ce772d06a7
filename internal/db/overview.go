package db

import "context"

const countCachedByRegion = `
SELECT r.region_str,
    (SELECT COUNT(*) FROM user_basic AS u WHERE u.region_id = r.region_id) AS users,
    (SELECT COUNT(*) FROM clan_basic AS c WHERE c.region_id = r.region_id) AS clans,
    (SELECT COUNT(*) FROM recent AS rc WHERE rc.region_id = r.region_id) AS recent
FROM region AS r
ORDER BY r.region_id
`

type CountCachedByRegionRow struct {
	RegionStr string
	Users     int64
	Clans     int64
	Recent    int64
}

func (q *Queries) CountCachedByRegion(ctx context.Context) ([]CountCachedByRegionRow, error) {
	rows, err := q.db.QueryContext(ctx, countCachedByRegion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountCachedByRegionRow
	for rows.Next() {
		var i CountCachedByRegionRow
		if err := rows.Scan(&i.RegionStr, &i.Users, &i.Clans, &i.Recent); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
