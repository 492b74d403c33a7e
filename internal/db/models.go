package db

import (
	"database/sql"
	"time"
)

type Player struct {
	Platform       string
	PlatformUserID string
	Handle         string
	UserIdentifier string
	AvatarUrl      string
	LastLookupAt   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type PlaylistRating struct {
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
