package tasks

import (
	"context"
	"sync"
	"testing"
	"warships-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu        sync.Mutex
	nicknames []string
	links     []*int64
	clans     []domain.ClanIdentityCorrection
	activity  []domain.Activity
}

func (r *recorder) UpsertNickname(ctx context.Context, accountID int64, region domain.Region, nickname string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nicknames = append(r.nicknames, nickname)
	return nil
}

func (r *recorder) UpsertClanLink(ctx context.Context, accountID int64, region domain.Region, clanID *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links = append(r.links, clanID)
	return nil
}

func (r *recorder) UpsertIdentity(ctx context.Context, clan domain.ClanIdentityCorrection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clans = append(r.clans, clan)
	return nil
}

func (r *recorder) Upsert(ctx context.Context, activity domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activity = append(r.activity, activity)
	return nil
}

func TestRegisterCorrections(t *testing.T) {
	q, m := newTestQueue(1, 8, 1)
	rec := &recorder{}
	RegisterCorrections(q, rec, rec, rec)
	q.Start()

	ctx := context.Background()
	q.Enqueue(ctx, domain.JobNicknameCorrection, domain.NicknameCorrection{AccountID: 1, Region: domain.RegionEU, Nickname: "Captain"})
	q.Enqueue(ctx, domain.JobClanLinkCorrection, domain.ClanLinkCorrection{AccountID: 1, Region: domain.RegionEU})
	q.Enqueue(ctx, domain.JobClanIdentityCorrection, domain.ClanIdentityCorrection{ClanID: 42, Region: domain.RegionEU, Tag: "ABC", League: domain.LeagueStorm})
	q.Enqueue(ctx, domain.JobActivityUpsert, domain.Activity{AccountID: 1, Region: domain.RegionEU, ActiveLevel: 3})
	stop(t, q)

	assert.Equal(t, []string{"Captain"}, rec.nicknames)
	require.Len(t, rec.links, 1)
	assert.Nil(t, rec.links[0])
	require.Len(t, rec.clans, 1)
	assert.Equal(t, "ABC", rec.clans[0].Tag)
	require.Len(t, rec.activity, 1)
	assert.Equal(t, 3, rec.activity[0].ActiveLevel)

	for _, kind := range []domain.JobKind{
		domain.JobNicknameCorrection,
		domain.JobClanLinkCorrection,
		domain.JobClanIdentityCorrection,
		domain.JobActivityUpsert,
	} {
		assert.Equal(t, float64(1), jobCount(m, kind, "ok"), string(kind))
	}
}
