package service

// FetchSet is the set of remote endpoints one reconciliation calls.
type FetchSet int

const (
	FetchUserOnly FetchSet = iota
	FetchUserAndClan
)

func (f FetchSet) String() string {
	if f == FetchUserAndClan {
		return "user_and_clan"
	}
	return "user_only"
}

// PlanFetch skips the clan membership endpoint while the clan cache is fresh.
func PlanFetch(clanFresh bool) FetchSet {
	if clanFresh {
		return FetchUserOnly
	}
	return FetchUserAndClan
}
