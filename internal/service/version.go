package service

import (
	"context"
	"fmt"
	"warships-tracker/internal/constants"
	"warships-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type VersionSource interface {
	GetGameVersion(ctx context.Context, region domain.Region) (string, error)
}

type VersionService struct {
	remote VersionSource
	logger zerolog.Logger
}

func NewVersionService(remote VersionSource, logger zerolog.Logger) *VersionService {
	return &VersionService{remote: remote, logger: logger}
}

// GameVersion returns the live client version of region, or "" when the
// API does not report one.
func (s *VersionService) GameVersion(ctx context.Context, region domain.Region) (string, error) {
	if !region.Valid() {
		return "", fmt.Errorf("%w: %d", domain.ErrInvalidRegion, int(region))
	}
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	version, err := s.remote.GetGameVersion(ctx, region)
	if err != nil {
		s.logger.Error().Err(err).Str("region", region.String()).Msg("failed to fetch game version")
		return "", remoteFailure(err)
	}
	return version, nil
}
