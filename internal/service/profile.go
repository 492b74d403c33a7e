package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rocketleague-tracker/internal/constants"
	"rocketleague-tracker/internal/domain"
	"rocketleague-tracker/internal/profile"
	"rocketleague-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrTooManyAccounts = fmt.Errorf("at most %d accounts can be compared", constants.MaxCompareAccounts)
	ErrMissingPlaylist = errors.New("playlist is required")
	ErrMissingUserID   = errors.New("platform user id is required")
)

type ProfileService struct {
	client  *profile.Client
	players *repository.PlayerRepository
	ratings *repository.RatingRepository
	logger  zerolog.Logger
}

func NewProfileService(client *profile.Client, players *repository.PlayerRepository, ratings *repository.RatingRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{client: client, players: players, ratings: ratings, logger: logger}
}

// GetProfile fetches one snapshot and returns every view of it. The lookup is
// archived; archive failures are logged and do not fail the lookup.
func (s *ProfileService) GetProfile(ctx context.Context, platform profile.Platform, username string, opts profile.Options) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	snap, err := s.snapshot(ctx, platform, username)
	if err != nil {
		return nil, err
	}

	result, err := s.project(snap, opts)
	if err != nil {
		s.logger.Warn().Err(err).Str("platform", platform.String()).Str("username", username).Msg("failed to project profile")
		return nil, err
	}

	s.archive(ctx, result)

	s.logger.Info().
		Str("platform", platform.String()).
		Str("username", username).
		Int("gamemodes", len(result.Stats.Gamemodes)).
		Msg("profile fetched successfully")
	return result, nil
}

// GetPlaylist returns the rank data of one playlist. mode is either a short
// ranked mode ("1v1", "2v2", "3v3") or a provider playlist name.
func (s *ProfileService) GetPlaylist(ctx context.Context, platform profile.Platform, username, mode string, opts profile.Options) (*profile.PlaylistStats, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if strings.TrimSpace(mode) == "" {
		return nil, ErrMissingPlaylist
	}

	snap, err := s.snapshot(ctx, platform, username)
	if err != nil {
		return nil, err
	}

	var stats *profile.PlaylistStats
	switch name := profile.PlaylistName(mode); name {
	case profile.PlaylistDuel:
		stats, err = snap.Get1v1(opts)
	case profile.PlaylistDoubles:
		stats, err = snap.Get2v2(opts)
	case profile.PlaylistStandard:
		stats, err = snap.Get3v3(opts)
	default:
		stats, err = snap.Playlist(name, opts)
	}
	if err != nil {
		s.logger.Debug().Err(err).Str("playlist", mode).Str("username", username).Msg("playlist lookup failed")
		return nil, err
	}
	return stats, nil
}

func (s *ProfileService) GetUserinfo(ctx context.Context, platform profile.Platform, username string) (*profile.Userinfo, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	snap, err := s.snapshot(ctx, platform, username)
	if err != nil {
		return nil, err
	}
	return snap.Userinfo()
}

// Compare looks up several accounts on one platform concurrently. Each
// account gets its own snapshot; the first failure cancels the rest.
func (s *ProfileService) Compare(ctx context.Context, platform profile.Platform, usernames []string) ([]*domain.Profile, error) {
	if len(usernames) == 0 {
		return nil, profile.ErrEmptyUsername
	}
	if len(usernames) > constants.MaxCompareAccounts {
		return nil, ErrTooManyAccounts
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	results := make([]*domain.Profile, len(usernames))
	g, gctx := errgroup.WithContext(ctx)
	for i, username := range usernames {
		g.Go(func() error {
			snap, err := s.snapshot(gctx, platform, username)
			if err != nil {
				return fmt.Errorf("%s: %w", username, err)
			}
			result, err := s.project(snap, profile.Options{})
			if err != nil {
				return fmt.Errorf("%s: %w", username, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn().Err(err).Strs("usernames", usernames).Msg("comparison failed")
		return nil, err
	}

	for _, result := range results {
		s.archive(ctx, result)
	}

	s.logger.Info().Str("platform", platform.String()).Int("accounts", len(results)).Msg("comparison completed")
	return results, nil
}

// RatingHistory reads archived readings, newest first.
func (s *ProfileService) RatingHistory(ctx context.Context, platform profile.Platform, platformUserID, mode string, limit int) ([]domain.PlaylistRating, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if !platform.Valid() {
		return nil, profile.ErrInvalidPlatform
	}
	if strings.TrimSpace(platformUserID) == "" {
		return nil, ErrMissingUserID
	}
	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}
	if limit > constants.MaxHistoryLimit {
		limit = constants.MaxHistoryLimit
	}

	playlist := ""
	if mode != "" {
		playlist = profile.PlaylistName(mode)
	}

	history, err := s.ratings.History(ctx, platform.String(), platformUserID, playlist, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("platform_user_id", platformUserID).Msg("failed to read rating history")
		return nil, err
	}
	return history, nil
}

func (s *ProfileService) snapshot(ctx context.Context, platform profile.Platform, username string) (*profile.Snapshot, error) {
	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	s.logger.Debug().Str("platform", platform.String()).Str("username", username).Msg("fetching profile snapshot")

	snap, err := s.client.Snapshot(apiCtx, platform, username)
	if err != nil {
		s.logger.Error().Err(err).Str("platform", platform.String()).Str("username", username).Msg("failed to fetch profile")
		return nil, err
	}
	return snap, nil
}

func (s *ProfileService) project(snap *profile.Snapshot, opts profile.Options) (*domain.Profile, error) {
	stats, err := snap.Data(opts)
	if err != nil {
		return nil, err
	}
	user, err := snap.Userinfo()
	if err != nil {
		return nil, err
	}
	return &domain.Profile{
		Platform: snap.Platform,
		Username: snap.Username,
		User:     *user,
		Stats:    stats,
	}, nil
}

func (s *ProfileService) archive(ctx context.Context, p *domain.Profile) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DatabaseTimeout)
	defer cancel()

	userID := archiveKey(p.User)
	if userID == "" {
		s.logger.Debug().Str("username", p.Username).Msg("profile has no platform user id, skipping archive")
		return
	}

	player := &domain.Player{
		Platform:       p.Platform.String(),
		PlatformUserID: userID,
		Handle:         p.User.Name,
		UserIdentifier: p.User.UserID,
		AvatarURL:      p.User.Avatar,
	}
	if err := s.players.Upsert(ctx, player); err != nil {
		s.logger.Warn().Err(err).Str("platform_user_id", userID).Msg("failed to archive player")
		return
	}

	records := make([]domain.PlaylistRating, 0, len(p.Stats.Gamemodes))
	for name, stats := range p.Stats.Gamemodes {
		record := domain.PlaylistRating{
			Platform:       player.Platform,
			PlatformUserID: userID,
			Playlist:       name,
			Rating:         stats.Rating,
			PeakRating:     stats.PeakRating,
			Tier:           stats.Tier,
			Division:       stats.Division,
			MatchesPlayed:  stats.MatchesPlayed,
			WinStreak:      stats.WinStreak,
			RecordedAt:     player.LastLookupAt,
		}
		if stats.Rank != nil {
			record.Rank = *stats.Rank
		}
		records = append(records, record)
	}
	if err := s.ratings.RecordBatch(ctx, records); err != nil {
		s.logger.Warn().Err(err).Str("platform_user_id", userID).Msg("failed to archive ratings")
	}
}

// archiveKey prefers the provider's stable user id over the public identifier.
func archiveKey(u profile.Userinfo) string {
	if u.UUID != "" {
		return u.UUID
	}
	return u.UserID
}
