package service

import (
	"context"
	"errors"
	"testing"
	"time"
	"warships-tracker/internal/api"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClanFixture(identity *domain.ClanIdentity, remote *fakeRemote) (*ClanService, *fakeQueue) {
	queue := &fakeQueue{}
	svc := NewClanService(&fakeClans{identity: identity}, remote, queue, zerolog.Nop())
	svc.now = func() time.Time { return testNow }
	return svc, queue
}

func TestGetClanFromCache(t *testing.T) {
	remote := &fakeRemote{}
	svc, queue := newClanFixture(&domain.ClanIdentity{
		ClanID:    42,
		Region:    domain.RegionEU,
		Tag:       "ABC",
		League:    domain.LeagueGale,
		UpdatedAt: testNow.Add(-time.Hour),
	}, remote)

	lookup, err := svc.GetClan(context.Background(), 42, domain.RegionEU)
	require.NoError(t, err)

	assert.True(t, lookup.FromCache)
	assert.Equal(t, "ABC", *lookup.Clan.Tag)
	assert.Equal(t, 0, remote.clanInfoCalls)
	assert.Empty(t, queue.kinds())
}

func TestGetClanStaleFetchesPortal(t *testing.T) {
	remote := &fakeRemote{clanInfo: &api.ClanInfoResult{Clan: api.ClanBrief{Tag: "NEW", Color: 0xbee7bd}}}
	svc, queue := newClanFixture(&domain.ClanIdentity{
		ClanID:    42,
		Tag:       "OLD",
		League:    domain.LeagueGale,
		UpdatedAt: testNow.Add(-96 * time.Hour),
	}, remote)

	lookup, err := svc.GetClan(context.Background(), 42, domain.RegionEU)
	require.NoError(t, err)

	assert.False(t, lookup.FromCache)
	assert.Equal(t, "NEW", *lookup.Clan.Tag)
	assert.Equal(t, domain.LeagueTyphoon, *lookup.Clan.League)
	require.Equal(t, []domain.JobKind{domain.JobClanIdentityCorrection}, queue.kinds())
	assert.Equal(t, domain.ClanIdentityCorrection{
		ClanID: 42,
		Region: domain.RegionEU,
		Tag:    "NEW",
		League: domain.LeagueTyphoon,
	}, queue.jobs[0].payload)
}

func TestGetClanNotFound(t *testing.T) {
	svc, queue := newClanFixture(nil, &fakeRemote{clanInfo: &api.ClanInfoResult{NotFound: true}})

	lookup, err := svc.GetClan(context.Background(), 42, domain.RegionEU)
	require.NoError(t, err)
	assert.True(t, lookup.NotFound)
	assert.Empty(t, queue.kinds())
}

func TestGetClanUnknownColor(t *testing.T) {
	svc, queue := newClanFixture(nil, &fakeRemote{clanInfo: &api.ClanInfoResult{Clan: api.ClanBrief{Tag: "X", Color: 1}}})

	_, err := svc.GetClan(context.Background(), 42, domain.RegionEU)
	assert.ErrorIs(t, err, domain.ErrUnknownLeagueColor)
	assert.Empty(t, queue.kinds())
}

func TestGetClanRemoteFailure(t *testing.T) {
	svc, _ := newClanFixture(nil, &fakeRemote{clanInfoErr: errors.New("dial tcp: timeout")})

	_, err := svc.GetClan(context.Background(), 42, domain.RegionEU)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}

func TestGetClanStoreFailure(t *testing.T) {
	svc := NewClanService(&fakeClans{err: errors.New("locked")}, &fakeRemote{}, &fakeQueue{}, zerolog.Nop())

	_, err := svc.GetClan(context.Background(), 42, domain.RegionEU)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
