package domain

import (
	"time"

	"rocketleague-tracker/internal/profile"
)

// Profile is what a lookup returns to callers of the service.
type Profile struct {
	Platform profile.Platform  `json:"platform"`
	Username string            `json:"username"`
	User     profile.Userinfo  `json:"user"`
	Stats    *profile.AllStats `json:"stats"`
}

type Player struct {
	Platform       string
	PlatformUserID string
	Handle         string
	UserIdentifier string
	AvatarURL      string
	LastLookupAt   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PlaylistRating is one archived reading of a playlist's rank data.
type PlaylistRating struct {
	ID             string    `json:"id"` // nanoid
	Platform       string    `json:"platform"`
	PlatformUserID string    `json:"platformUserId"`
	Playlist       string    `json:"playlist"`
	Rating         int       `json:"rating"`
	PeakRating     int       `json:"peakRating"`
	Tier           int       `json:"tier"`
	Division       int       `json:"division"`
	Rank           string    `json:"rank"`
	MatchesPlayed  int       `json:"matchesPlayed"`
	WinStreak      int       `json:"winStreak"`
	RecordedAt     time.Time `json:"recordedAt"`
}
