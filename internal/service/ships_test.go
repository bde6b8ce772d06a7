package service

import (
	"context"
	"errors"
	"testing"
	"warships-tracker/internal/api"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mode(battles int64) api.Object[api.ModeStatistics] {
	return api.Object[api.ModeStatistics]{Present: true, Value: api.ModeStatistics{BattlesCount: battles}}
}

func TestMergeShipStats(t *testing.T) {
	all := &api.ShipsResult{Ships: map[string]api.ShipModes{
		"4179605488": {PvP: mode(12), PvPSolo: mode(7), PvPDiv2: mode(5)},
		"3751753712": {PvP: mode(3)},
		// no random battles
		"4288591856": {PvPSolo: mode(2)},
		// missing from the pvp document
		"3762239472": {PvP: mode(9)},
		"not-a-ship": {PvP: mode(1)},
	}}
	pvp := &api.ShipsResult{Ships: map[string]api.ShipModes{
		"4179605488": {PvP: api.Object[api.ModeStatistics]{Present: true, Value: api.ModeStatistics{
			BattlesCount:   12,
			Wins:           8,
			DamageDealt:    900000,
			Frags:          14,
			OriginalExp:    20000,
			Survived:       6,
			ScoutingDamage: 50000,
			ArtAgro:        1000000,
			PlanesKilled:   30,
			MaxExp:         3000,
			MaxDamageDealt: 150000,
			MaxFrags:       4,
		}}},
		"3751753712": {PvP: mode(3)},
		"4288591856": {PvP: mode(2)},
		"not-a-ship": {PvP: mode(1)},
	}}

	got := MergeShipStats(all, pvp)
	require.Len(t, got, 2)

	assert.Equal(t, int64(3751753712), got[0].ShipID)
	assert.Equal(t, int64(3), got[0].Battles)
	assert.Equal(t, int64(0), got[0].SoloBattles)

	assert.Equal(t, domain.ShipStats{
		ShipID:         4179605488,
		Battles:        12,
		SoloBattles:    7,
		Div2Battles:    5,
		Div3Battles:    0,
		Wins:           8,
		DamageDealt:    900000,
		Frags:          14,
		OriginalExp:    20000,
		Survived:       6,
		ScoutingDamage: 50000,
		ArtAgro:        1000000,
		PlanesKilled:   30,
		MaxExp:         3000,
		MaxDamageDealt: 150000,
		MaxFrags:       4,
	}, got[1])
}

func TestGetShipStats(t *testing.T) {
	remote := &fakeRemote{
		ships:    &api.ShipsResult{Ships: map[string]api.ShipModes{"1": {PvP: mode(2)}}},
		pvpShips: &api.ShipsResult{Ships: map[string]api.ShipModes{"1": {PvP: mode(2)}}},
	}
	svc := NewShipService(remote, zerolog.Nop())

	report, err := svc.GetShipStats(context.Background(), eu7)
	require.NoError(t, err)
	assert.False(t, report.NotFound)
	require.Len(t, report.Ships, 1)
	assert.Equal(t, int64(1), report.Ships[0].ShipID)
}

func TestGetShipStatsNotFound(t *testing.T) {
	remote := &fakeRemote{
		ships:    &api.ShipsResult{NotFound: true},
		pvpShips: &api.ShipsResult{},
	}
	report, err := NewShipService(remote, zerolog.Nop()).GetShipStats(context.Background(), eu7)
	require.NoError(t, err)
	assert.True(t, report.NotFound)
}

func TestGetShipStatsRemoteFailure(t *testing.T) {
	remote := &fakeRemote{shipsErr: errors.New("boom"), pvpShips: &api.ShipsResult{}}
	_, err := NewShipService(remote, zerolog.Nop()).GetShipStats(context.Background(), eu7)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}
