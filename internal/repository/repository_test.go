package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"
	"warships-tracker/internal/database"
	"warships-tracker/internal/db"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repos struct {
	users    *UserRepository
	clans    *ClanRepository
	activity *ActivityRepository
	stats    *StatsRepository
	recent   *RecentRepository
}

func openRepos(t *testing.T) repos {
	t.Helper()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "tracker.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	queries := db.New(sqlDB)
	logger := zerolog.Nop()
	return repos{
		users:    NewUserRepository(queries, logger),
		clans:    NewClanRepository(queries, logger),
		activity: NewActivityRepository(queries, logger),
		stats:    NewStatsRepository(queries),
		recent:   NewRecentRepository(queries, logger),
	}
}

func TestNickname(t *testing.T) {
	r := openRepos(t)
	ctx := context.Background()

	_, err := r.users.GetNickname(ctx, 7, domain.RegionEU)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, r.users.UpsertNickname(ctx, 7, domain.RegionEU, "Captain"))
	require.NoError(t, r.users.UpsertNickname(ctx, 7, domain.RegionEU, "Admiral"))

	got, err := r.users.GetNickname(ctx, 7, domain.RegionEU)
	require.NoError(t, err)
	assert.Equal(t, "Admiral", got)

	_, err = r.users.GetNickname(ctx, 7, domain.RegionNA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClanLink(t *testing.T) {
	r := openRepos(t)
	ctx := context.Background()
	before := time.Now().Add(-time.Second)

	_, err := r.users.GetClanLink(ctx, 7, domain.RegionEU)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	clanID := int64(42)
	require.NoError(t, r.users.UpsertClanLink(ctx, 7, domain.RegionEU, &clanID))
	link, err := r.users.GetClanLink(ctx, 7, domain.RegionEU)
	require.NoError(t, err)
	require.NotNil(t, link.ClanID)
	assert.Equal(t, int64(42), *link.ClanID)
	assert.True(t, link.UpdatedAt.After(before))

	// clearing keeps the row as a cached "no clan" fact
	require.NoError(t, r.users.UpsertClanLink(ctx, 7, domain.RegionEU, nil))
	link, err = r.users.GetClanLink(ctx, 7, domain.RegionEU)
	require.NoError(t, err)
	assert.Nil(t, link.ClanID)
	assert.True(t, link.UpdatedAt.After(before))
}

func TestClanIdentity(t *testing.T) {
	r := openRepos(t)
	ctx := context.Background()

	_, err := r.clans.GetIdentity(ctx, 42, domain.RegionEU)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, r.clans.UpsertIdentity(ctx, domain.ClanIdentityCorrection{
		ClanID: 42, Region: domain.RegionEU, Tag: "ABC", League: domain.LeagueStorm,
	}))
	require.NoError(t, r.clans.UpsertIdentity(ctx, domain.ClanIdentityCorrection{
		ClanID: 42, Region: domain.RegionEU, Tag: "ABCD", League: domain.LeagueTyphoon,
	}))

	got, err := r.clans.GetIdentity(ctx, 42, domain.RegionEU)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ClanID)
	assert.Equal(t, domain.RegionEU, got.Region)
	assert.Equal(t, "ABCD", got.Tag)
	assert.Equal(t, domain.LeagueTyphoon, got.League)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestActivity(t *testing.T) {
	r := openRepos(t)
	ctx := context.Background()

	_, err := r.activity.Get(ctx, 7, domain.RegionEU)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, r.activity.Upsert(ctx, domain.Activity{
		AccountID:      7,
		Region:         domain.RegionEU,
		IsActive:       true,
		ActiveLevel:    3,
		IsPublic:       true,
		TotalBattles:   1200,
		LastBattleTime: 1_700_000_000,
	}))
	require.NoError(t, r.activity.Upsert(ctx, domain.Activity{
		AccountID:   7,
		Region:      domain.RegionEU,
		ActiveLevel: 0,
	}))

	got, err := r.activity.Get(ctx, 7, domain.RegionEU)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.False(t, got.IsPublic)
	assert.Equal(t, 0, got.ActiveLevel)
	assert.Equal(t, int64(0), got.TotalBattles)
}

func TestOverview(t *testing.T) {
	r := openRepos(t)
	ctx := context.Background()

	require.NoError(t, r.users.UpsertNickname(ctx, 1, domain.RegionEU, "a"))
	require.NoError(t, r.users.UpsertNickname(ctx, 2, domain.RegionEU, "b"))
	require.NoError(t, r.users.UpsertNickname(ctx, 3, domain.RegionCN, "c"))
	require.NoError(t, r.clans.UpsertIdentity(ctx, domain.ClanIdentityCorrection{ClanID: 9, Region: domain.RegionEU, Tag: "T"}))
	require.NoError(t, r.recent.Enable(ctx, 1, domain.RegionEU, 30, time.Now()))
	require.NoError(t, r.recent.Enable(ctx, 4, domain.RegionNA, 30, time.Now()))

	got, err := r.stats.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.RegionOverview{
		{Region: "asia"},
		{Region: "eu", Users: 2, Clans: 1, Recent: 1},
		{Region: "na", Recent: 1},
		{Region: "ru"},
		{Region: "cn", Users: 1},
	}, got)
}

func TestRecentEnableOnlyWidens(t *testing.T) {
	r := openRepos(t)
	ctx := context.Background()
	first := time.Unix(1_700_000_000, 0)

	exists, err := r.recent.Exists(ctx, 7, domain.RegionEU)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, r.recent.Enable(ctx, 7, domain.RegionEU, 30, first))
	require.NoError(t, r.recent.Enable(ctx, 7, domain.RegionEU, 10, first.Add(time.Hour)))

	detail, err := r.recent.Detail(ctx, 7, domain.RegionEU)
	require.NoError(t, err)
	assert.Equal(t, 30, detail.Recent.RecentClass)
	assert.Equal(t, first.Unix(), detail.Recent.LastQueryTime)

	require.NoError(t, r.recent.Enable(ctx, 7, domain.RegionEU, 60, first.Add(2*time.Hour)))
	detail, err = r.recent.Detail(ctx, 7, domain.RegionEU)
	require.NoError(t, err)
	assert.Equal(t, 60, detail.Recent.RecentClass)
	// re-enabling keeps the original query time
	assert.Equal(t, first.Unix(), detail.Recent.LastQueryTime)

	exists, err = r.recent.Exists(ctx, 7, domain.RegionEU)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = r.recent.Exists(ctx, 7, domain.RegionNA)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRecentUpdateAndDelete(t *testing.T) {
	r := openRepos(t)
	ctx := context.Background()
	now := time.Now()

	lastUpdate := int64(1_700_000_500)
	err := r.recent.Update(ctx, 7, domain.RegionEU, domain.RecentPatch{LastUpdateTime: &lastUpdate}, now)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, r.recent.Enable(ctx, 7, domain.RegionEU, 30, time.Unix(1_700_000_000, 0)))
	require.NoError(t, r.recent.Update(ctx, 7, domain.RegionEU, domain.RecentPatch{LastUpdateTime: &lastUpdate}, now))

	detail, err := r.recent.Detail(ctx, 7, domain.RegionEU)
	require.NoError(t, err)
	assert.Equal(t, 30, detail.Recent.RecentClass)
	assert.Equal(t, int64(1_700_000_000), detail.Recent.LastQueryTime)
	assert.Equal(t, lastUpdate, detail.Recent.LastUpdateTime)

	// an explicit patch may lower the class
	class := 7
	require.NoError(t, r.recent.Update(ctx, 7, domain.RegionEU, domain.RecentPatch{RecentClass: &class}, now))
	detail, err = r.recent.Detail(ctx, 7, domain.RegionEU)
	require.NoError(t, err)
	assert.Equal(t, 7, detail.Recent.RecentClass)
	assert.Equal(t, lastUpdate, detail.Recent.LastUpdateTime)

	require.NoError(t, r.recent.Delete(ctx, 7, domain.RegionEU))
	require.NoError(t, r.recent.Delete(ctx, 7, domain.RegionEU))
	_, err = r.recent.Detail(ctx, 7, domain.RegionEU)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecentDetailJoinsActivity(t *testing.T) {
	r := openRepos(t)
	ctx := context.Background()

	require.NoError(t, r.recent.Enable(ctx, 7, domain.RegionEU, 30, time.Now()))
	detail, err := r.recent.Detail(ctx, 7, domain.RegionEU)
	require.NoError(t, err)
	assert.Nil(t, detail.Activity)

	require.NoError(t, r.activity.Upsert(ctx, domain.Activity{
		AccountID:      7,
		Region:         domain.RegionEU,
		IsActive:       true,
		ActiveLevel:    4,
		IsPublic:       true,
		TotalBattles:   900,
		LastBattleTime: 1_700_000_000,
	}))
	// same account in another region must not leak into the join
	require.NoError(t, r.activity.Upsert(ctx, domain.Activity{AccountID: 7, Region: domain.RegionNA, ActiveLevel: 9}))

	detail, err = r.recent.Detail(ctx, 7, domain.RegionEU)
	require.NoError(t, err)
	require.NotNil(t, detail.Activity)
	assert.True(t, detail.Activity.IsActive)
	assert.Equal(t, 4, detail.Activity.ActiveLevel)
	assert.Equal(t, int64(900), detail.Activity.TotalBattles)
	assert.False(t, detail.Activity.UpdatedAt.IsZero())
}

func TestRecentListByRegion(t *testing.T) {
	r := openRepos(t)
	ctx := context.Background()

	ids, err := r.recent.ListByRegion(ctx, domain.RegionEU)
	require.NoError(t, err)
	assert.Equal(t, []int64{}, ids)

	for _, id := range []int64{9, 3, 5} {
		require.NoError(t, r.recent.Enable(ctx, id, domain.RegionEU, 30, time.Now()))
	}
	require.NoError(t, r.recent.Enable(ctx, 4, domain.RegionAsia, 30, time.Now()))

	ids, err = r.recent.ListByRegion(ctx, domain.RegionEU)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5, 9}, ids)
}

func TestStoreUnavailableAfterClose(t *testing.T) {
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "tracker.db"), zerolog.Nop())
	require.NoError(t, err)
	users := NewUserRepository(db.New(sqlDB), zerolog.Nop())
	require.NoError(t, sqlDB.Close())

	_, err = users.GetNickname(context.Background(), 7, domain.RegionEU)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
