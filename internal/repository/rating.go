package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rocketleague-tracker/internal/db"
	"rocketleague-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type RatingRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewRatingRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *RatingRepository {
	return &RatingRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// RecordBatch stores every rating of one lookup in a single transaction.
func (r *RatingRepository) RecordBatch(ctx context.Context, records []domain.PlaylistRating) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()

	for i := range records {
		record := &records[i]
		if record.ID == "" {
			record.ID, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}
		if record.RecordedAt.IsZero() {
			record.RecordedAt = now
		}

		err := qtx.InsertPlaylistRating(ctx, db.InsertPlaylistRatingParams{
			ID:             record.ID,
			Platform:       record.Platform,
			PlatformUserID: record.PlatformUserID,
			Playlist:       record.Playlist,
			Rating:         int64(record.Rating),
			PeakRating:     int64(record.PeakRating),
			Tier:           int64(record.Tier),
			Division:       int64(record.Division),
			Rank:           sql.NullString{String: record.Rank, Valid: record.Rank != ""},
			MatchesPlayed:  int64(record.MatchesPlayed),
			WinStreak:      int64(record.WinStreak),
			RecordedAt:     record.RecordedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to insert rating for %s: %w", record.Playlist, err)
		}
	}

	r.logger.Debug().Int("count", len(records)).Msg("recorded playlist ratings")
	return tx.Commit()
}

// History returns the newest ratings first. An empty playlist matches all playlists.
func (r *RatingRepository) History(ctx context.Context, platform, platformUserID, playlist string, limit int) ([]domain.PlaylistRating, error) {
	rows, err := r.queries.ListPlaylistRatings(ctx, db.ListPlaylistRatingsParams{
		Platform:       platform,
		PlatformUserID: platformUserID,
		Playlist:       playlist,
		Limit:          int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.PlaylistRating, len(rows))
	for i, row := range rows {
		result[i] = domain.PlaylistRating{
			ID:             row.ID,
			Platform:       row.Platform,
			PlatformUserID: row.PlatformUserID,
			Playlist:       row.Playlist,
			Rating:         int(row.Rating),
			PeakRating:     int(row.PeakRating),
			Tier:           int(row.Tier),
			Division:       int(row.Division),
			Rank:           row.Rank.String,
			MatchesPlayed:  int(row.MatchesPlayed),
			WinStreak:      int(row.WinStreak),
			RecordedAt:     row.RecordedAt,
		}
	}
	return result, nil
}
