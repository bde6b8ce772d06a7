package service

import (
	"time"
	"warships-tracker/internal/constants"
)

// FreshnessPolicy decides whether a cached fact may still be trusted.
type FreshnessPolicy struct {
	Window time.Duration
}

func NewFreshnessPolicy() FreshnessPolicy {
	return FreshnessPolicy{Window: constants.ClanCacheTTL}
}

// IsFresh reports whether updatedAt is less than Window before now.
// A zero timestamp is never fresh.
func (p FreshnessPolicy) IsFresh(updatedAt, now time.Time) bool {
	if updatedAt.IsZero() {
		return false
	}
	return now.Sub(updatedAt) < p.Window
}
