package domain

import (
	"fmt"
	"time"
)

type Profile struct {
	AccountID    int64
	Region       Region
	DisplayName  string
	Karma        int
	CreatedAt    int64 // unix seconds
	LastActiveAt int64 // unix seconds
	Insignia     map[string]any
}

// DefaultDisplayName is used until the remote API has confirmed a nickname.
func DefaultDisplayName(accountID int64) string {
	return fmt.Sprintf("User_%d", accountID)
}

// ClanSummary is either fully known or fully absent. The zero value means
// the player has no clan, or that the clan has not been resolved yet.
type ClanSummary struct {
	ClanID *int64
	Tag    *string
	League *League
}

func KnownClan(clanID int64, tag string, league League) ClanSummary {
	return ClanSummary{ClanID: &clanID, Tag: &tag, League: &league}
}

func (c ClanSummary) Known() bool {
	return c.ClanID != nil && c.Tag != nil && c.League != nil
}

// ClanLink is the cached user -> clan row. A nil ClanID is a cached
// "no clan" fact and ages like any other.
type ClanLink struct {
	AccountID int64
	Region    Region
	ClanID    *int64
	UpdatedAt time.Time
}

type ClanIdentity struct {
	ClanID    int64
	Region    Region
	Tag       string
	League    League
	UpdatedAt time.Time
}

type Activity struct {
	AccountID      int64
	Region         Region
	IsActive       bool
	ActiveLevel    int
	IsPublic       bool
	TotalBattles   int64
	LastBattleTime int64 // unix seconds
	UpdatedAt      time.Time
}

type ShipStats struct {
	ShipID         int64 `json:"ship_id"`
	Battles        int64 `json:"battles"`
	SoloBattles    int64 `json:"solo_battles"`
	Div2Battles    int64 `json:"div2_battles"`
	Div3Battles    int64 `json:"div3_battles"`
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

type RegionOverview struct {
	Region string `json:"region"`
	Users  int64  `json:"users"`
	Clans  int64  `json:"clans"`
	Recent int64  `json:"recent"`
}
