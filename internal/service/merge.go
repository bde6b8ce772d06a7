package service

import (
	"fmt"
	"time"
	"warships-tracker/internal/api"
	"warships-tracker/internal/domain"
)

type OutcomeKind int

const (
	OutcomeResolved OutcomeKind = iota
	OutcomePlayerNotFound
	OutcomeProfileHidden
	OutcomeTokenInvalid
	OutcomeNoBattleHistory
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeResolved:
		return "resolved"
	case OutcomePlayerNotFound:
		return "player_not_found"
	case OutcomeProfileHidden:
		return "profile_hidden"
	case OutcomeTokenInvalid:
		return "token_invalid"
	case OutcomeNoBattleHistory:
		return "no_battle_history"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Correction is one background job repairing a cache divergence.
type Correction struct {
	Kind    domain.JobKind
	Payload any
}

type MergeInput struct {
	AccountID int64
	Region    domain.Region
	Token     string

	// empty when the user is not cached yet
	CachedNickname string
	// only meaningful when ClanFresh is set
	CachedClan domain.ClanSummary
	ClanFresh  bool

	Account *api.AccountResult
	// nil when the clan cache was fresh and the endpoint was not called
	Membership *api.ClanMembershipResult

	Now time.Time
}

// MergeOutcome is the single answer of one reconciliation. Profile is only
// fully populated for OutcomeResolved.
type MergeOutcome struct {
	Kind        OutcomeKind
	Profile     domain.Profile
	Clan        domain.ClanSummary
	Activity    domain.Activity
	Corrections []Correction
	// set when the clan fact could not be resolved; the rest of the
	// outcome is still valid
	ClanErr error
}

// Merge combines cached rows and remote responses. It is pure: all the side
// effects it implies are described by the returned Corrections and Activity.
func Merge(in MergeInput) MergeOutcome {
	profile := domain.Profile{
		AccountID:   in.AccountID,
		Region:      in.Region,
		DisplayName: in.CachedNickname,
	}
	if profile.DisplayName == "" {
		profile.DisplayName = domain.DefaultDisplayName(in.AccountID)
	}
	activity := domain.Activity{
		AccountID: in.AccountID,
		Region:    in.Region,
		IsActive:  true,
		IsPublic:  true,
	}

	clan, clanCorrections, clanErr := resolveClan(in)
	outcome := MergeOutcome{Clan: clan, ClanErr: clanErr}

	if in.Account == nil || in.Account.NotFound {
		activity.IsActive = false
		outcome.Kind = OutcomePlayerNotFound
		outcome.Profile = profile
		outcome.Activity = activity
		outcome.Corrections = clanCorrections
		return outcome
	}

	account := in.Account.Account
	var corrections []Correction
	if account.Name != "" && account.Name != in.CachedNickname {
		profile.DisplayName = account.Name
		corrections = append(corrections, Correction{
			Kind: domain.JobNicknameCorrection,
			Payload: domain.NicknameCorrection{
				AccountID: in.AccountID,
				Region:    in.Region,
				Nickname:  account.Name,
			},
		})
	}
	outcome.Corrections = append(corrections, clanCorrections...)
	outcome.Profile = profile

	if account.Hidden() {
		activity.IsActive = false
		activity.IsPublic = false
		activity.ActiveLevel = domain.ActiveLevel(false, 0, 0, in.Now)
		outcome.Kind = OutcomeProfileHidden
		if in.Token != "" {
			outcome.Kind = OutcomeTokenInvalid
		}
		outcome.Activity = activity
		return outcome
	}

	basic, ok := basicStatistics(account)
	if !ok || basic.LevelingPoints == 0 {
		activity.IsActive = false
		activity.TotalBattles = 0
		activity.LastBattleTime = 0
		activity.ActiveLevel = domain.ActiveLevel(true, 0, 0, in.Now)
		outcome.Kind = OutcomeNoBattleHistory
		outcome.Activity = activity
		return outcome
	}

	activity.TotalBattles = basic.LevelingPoints
	activity.LastBattleTime = basic.LastBattleTime
	activity.ActiveLevel = domain.ActiveLevel(true, basic.LevelingPoints, basic.LastBattleTime, in.Now)

	outcome.Profile.Karma = basic.Karma
	outcome.Profile.CreatedAt = basic.CreatedAt
	outcome.Profile.LastActiveAt = basic.LastBattleTime
	outcome.Profile.Insignia = account.DogTag

	outcome.Kind = OutcomeResolved
	outcome.Activity = activity
	return outcome
}

func basicStatistics(account api.AccountData) (api.BasicStatistics, bool) {
	if !account.Statistics.Present || !account.Statistics.Value.Basic.Present {
		return api.BasicStatistics{}, false
	}
	return account.Statistics.Value.Basic.Value, true
}

// resolveClan produces the clan fact for every outcome. A fresh cache is
// trusted as is; otherwise the membership response decides and the cache
// is corrected to match it.
func resolveClan(in MergeInput) (domain.ClanSummary, []Correction, error) {
	if in.ClanFresh {
		return in.CachedClan, nil, nil
	}
	if in.Membership == nil {
		return domain.ClanSummary{}, nil, nil
	}

	m := in.Membership
	if m.ClanID == nil {
		return domain.ClanSummary{}, []Correction{{
			Kind: domain.JobClanLinkCorrection,
			Payload: domain.ClanLinkCorrection{
				AccountID: in.AccountID,
				Region:    in.Region,
			},
		}}, nil
	}

	clanID := *m.ClanID
	if !m.Clan.Present {
		return domain.ClanSummary{}, nil, fmt.Errorf("clan %d: %w: membership has no clan details", clanID, domain.ErrUnknownLeagueColor)
	}
	league, err := domain.LeagueForColor(m.Clan.Value.Color)
	if err != nil {
		return domain.ClanSummary{}, nil, fmt.Errorf("clan %d: %w", clanID, err)
	}

	tag := m.Clan.Value.Tag
	return domain.KnownClan(clanID, tag, league), []Correction{
		{
			Kind: domain.JobClanIdentityCorrection,
			Payload: domain.ClanIdentityCorrection{
				ClanID: clanID,
				Region: in.Region,
				Tag:    tag,
				League: league,
			},
		},
		{
			Kind: domain.JobClanLinkCorrection,
			Payload: domain.ClanLinkCorrection{
				AccountID: in.AccountID,
				Region:    in.Region,
				ClanID:    &clanID,
			},
		},
	}, nil
}
