package db

import (
	"context"
	"database/sql"
	"time"
)

const upsertPlayer = `
INSERT INTO players (platform, platform_user_id, handle, user_identifier, avatar_url, last_lookup_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (platform, platform_user_id) DO UPDATE SET
    handle = excluded.handle,
    user_identifier = excluded.user_identifier,
    avatar_url = excluded.avatar_url,
    last_lookup_at = excluded.last_lookup_at,
    updated_at = excluded.updated_at
`

type UpsertPlayerParams struct {
	Platform       string
	PlatformUserID string
	Handle         string
	UserIdentifier string
	AvatarUrl      string
	LastLookupAt   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (q *Queries) UpsertPlayer(ctx context.Context, arg UpsertPlayerParams) error {
	_, err := q.db.ExecContext(ctx, upsertPlayer,
		arg.Platform,
		arg.PlatformUserID,
		arg.Handle,
		arg.UserIdentifier,
		arg.AvatarUrl,
		arg.LastLookupAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getPlayer = `
SELECT platform, platform_user_id, handle, user_identifier, avatar_url, last_lookup_at, created_at, updated_at
FROM players
WHERE platform = ? AND platform_user_id = ?
`

type GetPlayerParams struct {
	Platform       string
	PlatformUserID string
}

func (q *Queries) GetPlayer(ctx context.Context, arg GetPlayerParams) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayer, arg.Platform, arg.PlatformUserID)
	var i Player
	err := row.Scan(
		&i.Platform,
		&i.PlatformUserID,
		&i.Handle,
		&i.UserIdentifier,
		&i.AvatarUrl,
		&i.LastLookupAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertPlaylistRating = `
INSERT INTO playlist_ratings (id, platform, platform_user_id, playlist, rating, peak_rating, tier, division, rank_name, matches_played, win_streak, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertPlaylistRatingParams struct {
	ID             string
	Platform       string
	PlatformUserID string
	Playlist       string
	Rating         int64
	PeakRating     int64
	Tier           int64
	Division       int64
	Rank           sql.NullString
	MatchesPlayed  int64
	WinStreak      int64
	RecordedAt     time.Time
}

func (q *Queries) InsertPlaylistRating(ctx context.Context, arg InsertPlaylistRatingParams) error {
	_, err := q.db.ExecContext(ctx, insertPlaylistRating,
		arg.ID,
		arg.Platform,
		arg.PlatformUserID,
		arg.Playlist,
		arg.Rating,
		arg.PeakRating,
		arg.Tier,
		arg.Division,
		arg.Rank,
		arg.MatchesPlayed,
		arg.WinStreak,
		arg.RecordedAt,
	)
	return err
}

const listPlaylistRatings = `
SELECT id, platform, platform_user_id, playlist, rating, peak_rating, tier, division, rank_name, matches_played, win_streak, recorded_at
FROM playlist_ratings
WHERE platform = ? AND platform_user_id = ? AND (? = '' OR playlist = ?)
ORDER BY recorded_at DESC, id
LIMIT ?
`

type ListPlaylistRatingsParams struct {
	Platform       string
	PlatformUserID string
	Playlist       string
	Limit          int64
}

func (q *Queries) ListPlaylistRatings(ctx context.Context, arg ListPlaylistRatingsParams) ([]PlaylistRating, error) {
	rows, err := q.db.QueryContext(ctx, listPlaylistRatings,
		arg.Platform,
		arg.PlatformUserID,
		arg.Playlist,
		arg.Playlist,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PlaylistRating
	for rows.Next() {
		var i PlaylistRating
		if err := rows.Scan(
			&i.ID,
			&i.Platform,
			&i.PlatformUserID,
			&i.Playlist,
			&i.Rating,
			&i.PeakRating,
			&i.Tier,
			&i.Division,
			&i.Rank,
			&i.MatchesPlayed,
			&i.WinStreak,
			&i.RecordedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
