package tasks

import (
	"context"
	"warships-tracker/internal/domain"
)

type UserWriter interface {
	UpsertNickname(ctx context.Context, accountID int64, region domain.Region, nickname string) error
	UpsertClanLink(ctx context.Context, accountID int64, region domain.Region, clanID *int64) error
}

type ClanWriter interface {
	UpsertIdentity(ctx context.Context, clan domain.ClanIdentityCorrection) error
}

type ActivityWriter interface {
	Upsert(ctx context.Context, activity domain.Activity) error
}

// RegisterCorrections binds every correction job kind to its store write.
func RegisterCorrections(q *Queue, users UserWriter, clans ClanWriter, activity ActivityWriter) {
	Handle(q, domain.JobNicknameCorrection, func(ctx context.Context, p domain.NicknameCorrection) error {
		return users.UpsertNickname(ctx, p.AccountID, p.Region, p.Nickname)
	})
	Handle(q, domain.JobClanLinkCorrection, func(ctx context.Context, p domain.ClanLinkCorrection) error {
		return users.UpsertClanLink(ctx, p.AccountID, p.Region, p.ClanID)
	})
	Handle(q, domain.JobClanIdentityCorrection, clans.UpsertIdentity)
	Handle(q, domain.JobActivityUpsert, activity.Upsert)
}
