package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"warships-tracker/internal/domain"
	"warships-tracker/internal/metrics"
	"warships-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ProfileReconciler interface {
	Reconcile(ctx context.Context, req service.ProfileRequest) (*service.MergeOutcome, error)
}

type ShipStatsReader interface {
	GetShipStats(ctx context.Context, req service.ProfileRequest) (*service.ShipReport, error)
}

type ClanReader interface {
	GetClan(ctx context.Context, clanID int64, region domain.Region) (*service.ClanLookup, error)
}

type OverviewReader interface {
	Overview(ctx context.Context) ([]domain.RegionOverview, error)
}

type RecentTracker interface {
	Enable(ctx context.Context, accountID int64, region domain.Region, class int) error
	Disable(ctx context.Context, accountID int64, region domain.Region) error
	Enabled(ctx context.Context, accountID int64, region domain.Region) (bool, error)
	Update(ctx context.Context, accountID int64, region domain.Region, patch domain.RecentPatch) error
	Detail(ctx context.Context, accountID int64, region domain.Region) (*domain.RecentDetail, error)
	ListByRegion(ctx context.Context, region domain.Region) ([]int64, error)
}

type VersionReader interface {
	GameVersion(ctx context.Context, region domain.Region) (string, error)
}

type TrackerServer struct {
	profiles ProfileReconciler
	ships    ShipStatsReader
	clans    ClanReader
	stats    OverviewReader
	recent   RecentTracker
	versions VersionReader
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewTrackerServer(
	profiles ProfileReconciler,
	ships ShipStatsReader,
	clans ClanReader,
	stats OverviewReader,
	recent RecentTracker,
	versions VersionReader,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *TrackerServer {
	return &TrackerServer{
		profiles: profiles,
		ships:    ships,
		clans:    clans,
		stats:    stats,
		recent:   recent,
		versions: versions,
		metrics:  m,
		logger:   logger,
	}
}

// Routes mounts the API under /v1 plus health and metrics endpoints.
func (s *TrackerServer) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/{region}/{accountID}", s.getPlayer)
		r.Get("/players/{region}/{accountID}/ships", s.getShips)
		r.Route("/players/{region}/{accountID}/recent", func(r chi.Router) {
			r.Get("/", s.getRecent)
			r.Put("/", s.enableRecent)
			r.Patch("/", s.updateRecent)
			r.Delete("/", s.disableRecent)
			r.Get("/enabled", s.checkRecent)
		})
		r.Get("/recent/{region}", s.listRecent)
		r.Get("/clans/{region}/{clanID}", s.getClan)
		r.Get("/stats/overview", s.getOverview)
		r.Get("/version/{region}", s.getVersion)
	})
	return r
}

type userView struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Karma     int            `json:"karma"`
	CreatedAt int64          `json:"created_at"`
	ActivedAt int64          `json:"actived_at"`
	DogTag    map[string]any `json:"dog_tag"`
}

type clanView struct {
	ID     *int64  `json:"id"`
	Tag    *string `json:"tag"`
	League *int    `json:"league"`
}

type playerView struct {
	User userView `json:"user"`
	Clan clanView `json:"clan"`
}

func newClanView(c domain.ClanSummary) clanView {
	v := clanView{ID: c.ClanID, Tag: c.Tag}
	if c.League != nil {
		league := int(*c.League)
		v.League = &league
	}
	return v
}

func (s *TrackerServer) health(w http.ResponseWriter, r *http.Request) {
	s.writeCode(w, r, CodeSuccess, nil)
}

func (s *TrackerServer) getPlayer(w http.ResponseWriter, r *http.Request) {
	req, ok := s.profileRequest(w, r)
	if !ok {
		return
	}

	outcome, err := s.profiles.Reconcile(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	switch outcome.Kind {
	case service.OutcomePlayerNotFound:
		s.writeCode(w, r, CodeUserNotExist, nil)
		return
	case service.OutcomeProfileHidden:
		s.writeCode(w, r, CodeUserHiddenProfile, nil)
		return
	case service.OutcomeTokenInvalid:
		s.writeCode(w, r, CodeTokenInvalid, nil)
		return
	case service.OutcomeNoBattleHistory:
		s.writeCode(w, r, CodeUserDataIsNone, nil)
		return
	}

	p := outcome.Profile
	dogTag := p.Insignia
	if dogTag == nil {
		dogTag = map[string]any{}
	}
	var warning string
	if outcome.ClanErr != nil {
		warning = "clan data could not be resolved"
	}
	s.writeSuccess(w, r, playerView{
		User: userView{
			ID:        p.AccountID,
			Name:      p.DisplayName,
			Karma:     p.Karma,
			CreatedAt: p.CreatedAt,
			ActivedAt: p.LastActiveAt,
			DogTag:    dogTag,
		},
		Clan: newClanView(outcome.Clan),
	}, warning)
}

func (s *TrackerServer) getShips(w http.ResponseWriter, r *http.Request) {
	req, ok := s.profileRequest(w, r)
	if !ok {
		return
	}

	report, err := s.ships.GetShipStats(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if report.NotFound {
		s.writeCode(w, r, CodeUserNotExist, nil)
		return
	}
	s.writeSuccess(w, r, report.Ships, "")
}

func (s *TrackerServer) getClan(w http.ResponseWriter, r *http.Request) {
	region, err := domain.ParseRegion(chi.URLParam(r, "region"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	clanID, err := parseID(chi.URLParam(r, "clanID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	lookup, err := s.clans.GetClan(r.Context(), clanID, region)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if lookup.NotFound {
		s.writeCode(w, r, CodeClanNotExist, nil)
		return
	}
	s.writeSuccess(w, r, newClanView(lookup.Clan), "")
}

func (s *TrackerServer) getOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.stats.Overview(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, r, overview, "")
}

func (s *TrackerServer) profileRequest(w http.ResponseWriter, r *http.Request) (service.ProfileRequest, bool) {
	region, err := domain.ParseRegion(chi.URLParam(r, "region"))
	if err != nil {
		s.writeError(w, r, err)
		return service.ProfileRequest{}, false
	}
	accountID, err := parseID(chi.URLParam(r, "accountID"))
	if err != nil {
		s.writeError(w, r, err)
		return service.ProfileRequest{}, false
	}
	return service.ProfileRequest{
		AccountID: accountID,
		Region:    region,
		Token:     r.URL.Query().Get("ac"),
	}, true
}

var errInvalidID = errors.New("invalid id")

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidID, s)
	}
	return id, nil
}
