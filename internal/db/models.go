package db

import (
	"database/sql"
	"time"
)

type UserClan struct {
	AccountID int64
	RegionID  int64
	ClanID    sql.NullInt64
	UpdatedAt time.Time
}

type ClanBasic struct {
	ClanID    int64
	RegionID  int64
	Tag       string
	League    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserInfo struct {
	AccountID      int64
	RegionID       int64
	IsActive       bool
	ActiveLevel    int64
	IsPublic       bool
	TotalBattles   int64
	LastBattleTime int64
	UpdatedAt      time.Time
}

type Recent struct {
	AccountID      int64
	RegionID       int64
	RecentClass    int64
	LastQueryTime  int64
	LastUpdateTime int64
	UpdatedAt      time.Time
}
