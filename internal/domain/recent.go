package domain

import "time"

// RecentUser is a player whose recent battles are tracked. RecentClass is
// the retention window in days; enabling again can only widen it.
type RecentUser struct {
	AccountID      int64
	Region         Region
	RecentClass    int
	LastQueryTime  int64 // unix seconds
	LastUpdateTime int64 // unix seconds
	UpdatedAt      time.Time
}

// RecentPatch changes only its non-nil fields.
type RecentPatch struct {
	RecentClass    *int
	LastQueryTime  *int64
	LastUpdateTime *int64
}

func (p RecentPatch) Empty() bool {
	return p.RecentClass == nil && p.LastQueryTime == nil && p.LastUpdateTime == nil
}

// RecentDetail pairs a tracked player with its activity fact. Activity is
// nil when the player was never reconciled.
type RecentDetail struct {
	Recent   RecentUser
	Activity *Activity
}
