package fx

import (
	"database/sql"

	"rocketleague-tracker/internal/api"
	"rocketleague-tracker/internal/config"
	"rocketleague-tracker/internal/database"
	"rocketleague-tracker/internal/db"
	"rocketleague-tracker/internal/logger"
	"rocketleague-tracker/internal/profile"
	"rocketleague-tracker/internal/repository"
	"rocketleague-tracker/internal/server"
	"rocketleague-tracker/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideProfileClient(tracker *api.TrackerClient, cfg *config.Config) *profile.Client {
	return profile.NewClient(tracker, cfg.TrackerURLTemplate)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewRatingRepository),
	// tracker client
	fx.Provide(api.NewTrackerClient),
	fx.Provide(ProvideProfileClient),
	// svc
	fx.Provide(service.NewProfileService),
	// server
	fx.Provide(server.NewTrackerServer),
)
