package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"warships-tracker/internal/api"
	"warships-tracker/internal/constants"
	"warships-tracker/internal/domain"
	"warships-tracker/internal/metrics"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type UserCache interface {
	GetNickname(ctx context.Context, accountID int64, region domain.Region) (string, error)
	GetClanLink(ctx context.Context, accountID int64, region domain.Region) (*domain.ClanLink, error)
}

type ClanCache interface {
	GetIdentity(ctx context.Context, clanID int64, region domain.Region) (*domain.ClanIdentity, error)
}

type AccountFetcher interface {
	GetAccount(ctx context.Context, accountID int64, region domain.Region, token string) (*api.AccountResult, error)
	GetClanMembership(ctx context.Context, accountID int64, region domain.Region) (*api.ClanMembershipResult, error)
}

type ProfileRequest struct {
	AccountID int64
	Region    domain.Region
	// optional anti-cheat validation token forwarded to the API
	Token string
}

// ProfileService reconciles a player's cached profile and clan against the
// remote API.
type ProfileService struct {
	users      UserCache
	clans      ClanCache
	remote     AccountFetcher
	dispatcher *CorrectionDispatcher
	freshness  FreshnessPolicy
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	now        func() time.Time
}

func NewProfileService(users UserCache, clans ClanCache, remote AccountFetcher, queue Enqueuer, m *metrics.Metrics, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		users:      users,
		clans:      clans,
		remote:     remote,
		dispatcher: NewCorrectionDispatcher(queue, logger),
		freshness:  NewFreshnessPolicy(),
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// Reconcile returns the merged outcome, or an error wrapping
// domain.ErrStoreUnavailable or domain.ErrRemoteUnavailable. No correction is
// dispatched when it fails.
func (s *ProfileService) Reconcile(ctx context.Context, req ProfileRequest) (*MergeOutcome, error) {
	if !req.Region.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidRegion, int(req.Region))
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	log := s.logger.With().
		Int64("account_id", req.AccountID).
		Stringer("region", req.Region).
		Logger()

	nickname, err := s.users.GetNickname(ctx, req.AccountID, req.Region)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, s.fail(log, "failed to read cached nickname", storeFailure(err))
	}

	cachedClan, clanFresh, err := s.readClanCache(ctx, req)
	if err != nil {
		return nil, s.fail(log, "failed to read cached clan", storeFailure(err))
	}

	plan := PlanFetch(clanFresh)
	log.Debug().
		Bool("clan_fresh", clanFresh).
		Stringer("fetch", plan).
		Msg("fetch planned")

	account, membership, err := s.fetch(ctx, req, plan)
	if err != nil {
		return nil, s.fail(log, "failed to fetch remote profile", remoteFailure(err))
	}

	outcome := Merge(MergeInput{
		AccountID:      req.AccountID,
		Region:         req.Region,
		Token:          req.Token,
		CachedNickname: nickname,
		CachedClan:     cachedClan,
		ClanFresh:      clanFresh,
		Account:        account,
		Membership:     membership,
		Now:            s.now(),
	})
	if outcome.ClanErr != nil {
		log.Error().Err(outcome.ClanErr).Msg("clan could not be resolved")
	}

	s.dispatcher.Dispatch(ctx, outcome)
	s.metrics.Reconciliations.WithLabelValues(outcome.Kind.String()).Inc()

	log.Info().Stringer("outcome", outcome.Kind).Msg("profile reconciled")
	return &outcome, nil
}

// readClanCache returns the cached clan and whether it may be trusted.
// Missing rows count as stale, not as failures.
func (s *ProfileService) readClanCache(ctx context.Context, req ProfileRequest) (domain.ClanSummary, bool, error) {
	link, err := s.users.GetClanLink(ctx, req.AccountID, req.Region)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ClanSummary{}, false, nil
	}
	if err != nil {
		return domain.ClanSummary{}, false, err
	}

	now := s.now()
	if !s.freshness.IsFresh(link.UpdatedAt, now) {
		return domain.ClanSummary{}, false, nil
	}
	if link.ClanID == nil {
		return domain.ClanSummary{}, true, nil
	}

	identity, err := s.clans.GetIdentity(ctx, *link.ClanID, req.Region)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ClanSummary{}, false, nil
	}
	if err != nil {
		return domain.ClanSummary{}, false, err
	}
	if !s.freshness.IsFresh(identity.UpdatedAt, now) || !identity.League.Valid() {
		return domain.ClanSummary{}, false, nil
	}
	return domain.KnownClan(identity.ClanID, identity.Tag, identity.League), true, nil
}

// fetch issues the planned calls concurrently and waits for all of them.
// Partial results are discarded on any failure.
func (s *ProfileService) fetch(ctx context.Context, req ProfileRequest, plan FetchSet) (*api.AccountResult, *api.ClanMembershipResult, error) {
	var account *api.AccountResult
	var membership *api.ClanMembershipResult

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		account, err = s.remote.GetAccount(gCtx, req.AccountID, req.Region, req.Token)
		return err
	})
	if plan == FetchUserAndClan {
		g.Go(func() error {
			var err error
			membership, err = s.remote.GetClanMembership(gCtx, req.AccountID, req.Region)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if plan == FetchUserAndClan && membership == nil {
		membership = &api.ClanMembershipResult{}
	}
	return account, membership, nil
}

func (s *ProfileService) fail(log zerolog.Logger, msg string, err error) error {
	s.metrics.Reconciliations.WithLabelValues("error").Inc()
	log.Error().Err(err).Msg(msg)
	return err
}

func storeFailure(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func remoteFailure(err error) error {
	if errors.Is(err, domain.ErrRemoteUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
}
