package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"warships-tracker/internal/api"
	"warships-tracker/internal/constants"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type ShipFetcher interface {
	GetShips(ctx context.Context, accountID int64, region domain.Region, token string) (*api.ShipsResult, error)
	GetPvPShips(ctx context.Context, accountID int64, region domain.Region, token string) (*api.ShipsResult, error)
}

type ShipReport struct {
	NotFound bool
	Ships    []domain.ShipStats
}

type ShipService struct {
	remote ShipFetcher
	logger zerolog.Logger
}

func NewShipService(remote ShipFetcher, logger zerolog.Logger) *ShipService {
	return &ShipService{remote: remote, logger: logger}
}

func (s *ShipService) GetShipStats(ctx context.Context, req ProfileRequest) (*ShipReport, error) {
	if !req.Region.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidRegion, int(req.Region))
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	var all, pvp *api.ShipsResult
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = s.remote.GetShips(gCtx, req.AccountID, req.Region, req.Token)
		return err
	})
	g.Go(func() error {
		var err error
		pvp, err = s.remote.GetPvPShips(gCtx, req.AccountID, req.Region, req.Token)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int64("account_id", req.AccountID).Msg("failed to fetch ship statistics")
		return nil, remoteFailure(err)
	}

	if all == nil || pvp == nil || all.NotFound || pvp.NotFound {
		return &ShipReport{NotFound: true}, nil
	}

	ships := MergeShipStats(all, pvp)
	s.logger.Debug().Int64("account_id", req.AccountID).Int("ships", len(ships)).Msg("ship statistics merged")
	return &ShipReport{Ships: ships}, nil
}

// MergeShipStats joins battle counts per mode with the pvp detail block.
// Ships without random battles, or without pvp details, are left out.
func MergeShipStats(all, pvp *api.ShipsResult) []domain.ShipStats {
	result := make([]domain.ShipStats, 0, len(all.Ships))
	for key, modes := range all.Ships {
		if !modes.PvP.Present || modes.PvP.Value.BattlesCount <= 0 {
			continue
		}
		detail, ok := pvp.Ships[key]
		if !ok || !detail.PvP.Present {
			continue
		}
		shipID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}

		d := detail.PvP.Value
		result = append(result, domain.ShipStats{
			ShipID:         shipID,
			Battles:        modes.PvP.Value.BattlesCount,
			SoloBattles:    battles(modes.PvPSolo),
			Div2Battles:    battles(modes.PvPDiv2),
			Div3Battles:    battles(modes.PvPDiv3),
			Wins:           d.Wins,
			DamageDealt:    d.DamageDealt,
			Frags:          d.Frags,
			OriginalExp:    d.OriginalExp,
			Survived:       d.Survived,
			ScoutingDamage: d.ScoutingDamage,
			ArtAgro:        d.ArtAgro,
			PlanesKilled:   d.PlanesKilled,
			MaxExp:         d.MaxExp,
			MaxDamageDealt: d.MaxDamageDealt,
			MaxFrags:       d.MaxFrags,
		})
	}

	slices.SortFunc(result, func(a, b domain.ShipStats) int {
		switch {
		case a.ShipID < b.ShipID:
			return -1
		case a.ShipID > b.ShipID:
			return 1
		}
		return 0
	})
	return result
}

func battles(mode api.Object[api.ModeStatistics]) int64 {
	if !mode.Present {
		return 0
	}
	return mode.Value.BattlesCount
}
