package service

import (
	"context"
	"sync"
	"warships-tracker/internal/api"
	"warships-tracker/internal/domain"
)

type fakeUsers struct {
	nickname    string
	nicknameErr error
	link        *domain.ClanLink
	linkErr     error
}

func (f *fakeUsers) GetNickname(ctx context.Context, accountID int64, region domain.Region) (string, error) {
	if f.nicknameErr != nil {
		return "", f.nicknameErr
	}
	if f.nickname == "" {
		return "", domain.ErrNotFound
	}
	return f.nickname, nil
}

func (f *fakeUsers) GetClanLink(ctx context.Context, accountID int64, region domain.Region) (*domain.ClanLink, error) {
	if f.linkErr != nil {
		return nil, f.linkErr
	}
	if f.link == nil {
		return nil, domain.ErrNotFound
	}
	return f.link, nil
}

type fakeClans struct {
	identity *domain.ClanIdentity
	err      error
}

func (f *fakeClans) GetIdentity(ctx context.Context, clanID int64, region domain.Region) (*domain.ClanIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.identity == nil || f.identity.ClanID != clanID {
		return nil, domain.ErrNotFound
	}
	return f.identity, nil
}

type fakeRemote struct {
	mu sync.Mutex

	account       *api.AccountResult
	accountErr    error
	membership    *api.ClanMembershipResult
	membershipErr error
	clanInfo      *api.ClanInfoResult
	clanInfoErr   error
	ships         *api.ShipsResult
	pvpShips      *api.ShipsResult
	shipsErr      error

	accountCalls    int
	membershipCalls int
	clanInfoCalls   int
	lastToken       string
}

func (f *fakeRemote) GetAccount(ctx context.Context, accountID int64, region domain.Region, token string) (*api.AccountResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accountCalls++
	f.lastToken = token
	return f.account, f.accountErr
}

func (f *fakeRemote) GetClanMembership(ctx context.Context, accountID int64, region domain.Region) (*api.ClanMembershipResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.membershipCalls++
	return f.membership, f.membershipErr
}

func (f *fakeRemote) GetClanInfo(ctx context.Context, clanID int64, region domain.Region) (*api.ClanInfoResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clanInfoCalls++
	return f.clanInfo, f.clanInfoErr
}

func (f *fakeRemote) GetShips(ctx context.Context, accountID int64, region domain.Region, token string) (*api.ShipsResult, error) {
	return f.ships, f.shipsErr
}

func (f *fakeRemote) GetPvPShips(ctx context.Context, accountID int64, region domain.Region, token string) (*api.ShipsResult, error) {
	return f.pvpShips, nil
}

type enqueued struct {
	kind    domain.JobKind
	payload any
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []enqueued
}

func (f *fakeQueue) Enqueue(ctx context.Context, kind domain.JobKind, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, enqueued{kind: kind, payload: payload})
}

func (f *fakeQueue) kinds() []domain.JobKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.JobKind, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j.kind)
	}
	return out
}
