package fx

import (
	"context"
	"database/sql"
	"warships-tracker/internal/api"
	"warships-tracker/internal/config"
	"warships-tracker/internal/constants"
	"warships-tracker/internal/database"
	"warships-tracker/internal/db"
	"warships-tracker/internal/logger"
	"warships-tracker/internal/metrics"
	"warships-tracker/internal/repository"
	"warships-tracker/internal/server"
	"warships-tracker/internal/service"
	"warships-tracker/internal/tasks"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideProfileService(users *repository.UserRepository, clans *repository.ClanRepository, remote *api.VortexClient, queue *tasks.Queue, m *metrics.Metrics, logger zerolog.Logger) *service.ProfileService {
	return service.NewProfileService(users, clans, remote, queue, m, logger)
}

func ProvideShipService(remote *api.VortexClient, logger zerolog.Logger) *service.ShipService {
	return service.NewShipService(remote, logger)
}

func ProvideClanService(clans *repository.ClanRepository, remote *api.VortexClient, queue *tasks.Queue, logger zerolog.Logger) *service.ClanService {
	return service.NewClanService(clans, remote, queue, logger)
}

func ProvideStatsService(repo *repository.StatsRepository, logger zerolog.Logger) *service.StatsService {
	return service.NewStatsService(repo, logger)
}

func ProvideRecentService(repo *repository.RecentRepository, logger zerolog.Logger) *service.RecentService {
	return service.NewRecentService(repo, logger)
}

func ProvideVersionService(remote *api.VortexClient, logger zerolog.Logger) *service.VersionService {
	return service.NewVersionService(remote, logger)
}

func ProvideTrackerServer(
	profiles *service.ProfileService,
	ships *service.ShipService,
	clans *service.ClanService,
	stats *service.StatsService,
	recent *service.RecentService,
	versions *service.VersionService,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *server.TrackerServer {
	return server.NewTrackerServer(profiles, ships, clans, stats, recent, versions, m, logger)
}

// closeDatabase is invoked before the queue hook so that, with OnStop
// running in reverse, the database outlives the draining workers.
func closeDatabase(lc fx.Lifecycle, sqlDB *sql.DB, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := sqlDB.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})
}

func runQueue(
	lc fx.Lifecycle,
	queue *tasks.Queue,
	users *repository.UserRepository,
	clans *repository.ClanRepository,
	activity *repository.ActivityRepository,
) {
	tasks.RegisterCorrections(queue, users, clans, activity)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			queue.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()
			return queue.Stop(stopCtx)
		},
	})
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	metrics.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewUserRepository),
	fx.Provide(repository.NewClanRepository),
	fx.Provide(repository.NewActivityRepository),
	fx.Provide(repository.NewStatsRepository),
	fx.Provide(repository.NewRecentRepository),
	// api client
	fx.Provide(api.NewVortexClient),
	// jobs
	fx.Provide(tasks.NewQueue),
	// svc
	fx.Provide(ProvideProfileService),
	fx.Provide(ProvideShipService),
	fx.Provide(ProvideClanService),
	fx.Provide(ProvideStatsService),
	fx.Provide(ProvideRecentService),
	fx.Provide(ProvideVersionService),
	// server
	fx.Provide(ProvideTrackerServer),
	fx.Invoke(closeDatabase),
	fx.Invoke(runQueue),
)
