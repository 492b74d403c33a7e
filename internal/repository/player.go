package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rocketleague-tracker/internal/db"
	"rocketleague-tracker/internal/domain"

	"github.com/rs/zerolog"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewPlayerRepository(queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *PlayerRepository) Get(ctx context.Context, platform, platformUserID string) (*domain.Player, error) {
	player, err := r.queries.GetPlayer(ctx, db.GetPlayerParams{
		Platform:       platform,
		PlatformUserID: platformUserID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}

	return &domain.Player{
		Platform:       player.Platform,
		PlatformUserID: player.PlatformUserID,
		Handle:         player.Handle,
		UserIdentifier: player.UserIdentifier,
		AvatarURL:      player.AvatarUrl,
		LastLookupAt:   player.LastLookupAt,
		CreatedAt:      player.CreatedAt,
		UpdatedAt:      player.UpdatedAt,
	}, nil
}

// Upsert records a lookup of player. CreatedAt is kept from the first lookup.
func (r *PlayerRepository) Upsert(ctx context.Context, player *domain.Player) error {
	now := time.Now().UTC()
	if player.LastLookupAt.IsZero() {
		player.LastLookupAt = now
	}
	if player.CreatedAt.IsZero() {
		player.CreatedAt = now
	}
	player.UpdatedAt = now

	r.logger.Debug().
		Str("platform", player.Platform).
		Str("platform_user_id", player.PlatformUserID).
		Msg("upserting player")

	return r.queries.UpsertPlayer(ctx, db.UpsertPlayerParams{
		Platform:       player.Platform,
		PlatformUserID: player.PlatformUserID,
		Handle:         player.Handle,
		UserIdentifier: player.UserIdentifier,
		AvatarUrl:      player.AvatarURL,
		LastLookupAt:   player.LastLookupAt.UTC(),
		CreatedAt:      player.CreatedAt.UTC(),
		UpdatedAt:      player.UpdatedAt,
	})
}
