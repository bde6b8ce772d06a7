package domain

// JobKind names a background correction job.
type JobKind string

const (
	JobNicknameCorrection     JobKind = "nickname_correction"
	JobClanLinkCorrection     JobKind = "clan_link_correction"
	JobClanIdentityCorrection JobKind = "clan_identity_correction"
	JobActivityUpsert         JobKind = "activity_upsert"
)

type NicknameCorrection struct {
	AccountID int64
	Region    Region
	Nickname  string
}

// ClanLinkCorrection with a nil ClanID clears the user's clan link.
type ClanLinkCorrection struct {
	AccountID int64
	Region    Region
	ClanID    *int64
}

type ClanIdentityCorrection struct {
	ClanID int64
	Region Region
	Tag    string
	League League
}
