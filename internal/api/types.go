package api

import "encoding/json"

type envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

// AccountResult is GET /api/accounts/{id}/. NotFound is set for a 404 or
// when the payload does not carry the requested account.
type AccountResult struct {
	NotFound bool
	Account  AccountData
}

type AccountData struct {
	Name       string                    `json:"name"`
	Statistics Object[AccountStatistics] `json:"statistics"`
	DogTag     map[string]any            `json:"dog_tag"`
	// set when the hidden_profile key is present, whatever its value
	HiddenProfile bool `json:"-"`
}

func (a *AccountData) UnmarshalJSON(b []byte) error {
	type plain AccountData
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	_, p.HiddenProfile = keys["hidden_profile"]
	*a = AccountData(p)
	return nil
}

func (a AccountData) Hidden() bool {
	return a.HiddenProfile
}

type AccountStatistics struct {
	Basic Object[BasicStatistics] `json:"basic"`
}

type BasicStatistics struct {
	LevelingPoints int64 `json:"leveling_points"`
	Karma          int   `json:"karma"`
	CreatedAt      int64 `json:"created_at"`
	LastBattleTime int64 `json:"last_battle_time"`
}

// ClanMembershipResult is GET /api/accounts/{id}/clans/. The API answers 404
// for players outside any clan, which is reported as a nil ClanID.
type ClanMembershipResult struct {
	ClanID *int64            `json:"clan_id"`
	Role   *string           `json:"role"`
	Clan   Object[ClanBrief] `json:"clan"`
}

type ClanBrief struct {
	Tag   string `json:"tag"`
	Name  string `json:"name"`
	Color int64  `json:"color"`
}

// ClanInfoResult is the clan portal claninfo document.
type ClanInfoResult struct {
	NotFound bool
	Clan     ClanBrief
}

type clanInfoResponse struct {
	ClanView struct {
		Clan ClanBrief `json:"clan"`
	} `json:"clanview"`
}

// ShipsResult holds per-ship statistics keyed by ship id.
type ShipsResult struct {
	NotFound bool
	Ships    map[string]ShipModes
}

type ShipModes struct {
	PvP     Object[ModeStatistics] `json:"pvp"`
	PvPSolo Object[ModeStatistics] `json:"pvp_solo"`
	PvPDiv2 Object[ModeStatistics] `json:"pvp_div2"`
	PvPDiv3 Object[ModeStatistics] `json:"pvp_div3"`
}

type ModeStatistics struct {
	BattlesCount   int64 `json:"battles_count"`
	Wins           int64 `json:"wins"`
	DamageDealt    int64 `json:"damage_dealt"`
	Frags          int64 `json:"frags"`
	OriginalExp    int64 `json:"original_exp"`
	Survived       int64 `json:"survived"`
	ScoutingDamage int64 `json:"scouting_damage"`
	ArtAgro        int64 `json:"art_agro"`
	PlanesKilled   int64 `json:"planes_killed"`
	MaxExp         int64 `json:"max_exp"`
	MaxDamageDealt int64 `json:"max_damage_dealt"`
	MaxFrags       int64 `json:"max_frags"`
}

type versionAnswer struct {
	Data struct {
		Version string `json:"version"`
	} `json:"data"`
}

type accountEntry[T any] struct {
	Statistics T `json:"statistics"`
}
