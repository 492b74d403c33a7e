package profile

import (
	"errors"
	"strconv"
)

const (
	SegmentOverview = "overview"
	SegmentPlaylist = "playlist"
)

const (
	PlaylistDuel     = "Ranked Duel 1v1"
	PlaylistDoubles  = "Ranked Doubles 2v2"
	PlaylistStandard = "Ranked Standard 3v3"
)

// Options configures a projection.
type Options struct {
	// Raw attaches the matched segment to the result.
	Raw bool
}

type OverviewStats struct {
	Assists           int      `json:"assists"`
	Goals             int      `json:"goals"`
	GoalShotRatio     float64  `json:"goalShotRatio"`
	MVPs              int      `json:"mVPs"`
	Saves             int      `json:"saves"`
	Score             int      `json:"score"`
	SeasonRewardLevel int      `json:"seasonRewardLevel"`
	SeasonRewardWins  int      `json:"seasonRewardWins"`
	Shots             int      `json:"shots"`
	TRNRating         float64  `json:"tRNRating"`
	Wins              int      `json:"wins"`
	Raw               *Segment `json:"_raw,omitempty"`
}

// PlaylistStats is the rank data of one playlist. DeltaUp, DeltaDown and
// Rank are nil when the provider did not report them.
type PlaylistStats struct {
	Division      int      `json:"division"`
	DeltaUp       *int     `json:"deltaUp"`
	DeltaDown     *int     `json:"deltaDown"`
	MatchesPlayed int      `json:"matchesPlayed"`
	PeakRating    int      `json:"peakRating"`
	Rank          *string  `json:"rank"`
	Rating        int      `json:"rating"`
	Tier          int      `json:"tier"`
	WinStreak     int      `json:"winStreak"`
	Raw           *Segment `json:"_raw,omitempty"`
}

type AllStats struct {
	Overview  OverviewStats            `json:"overview"`
	Gamemodes map[string]PlaylistStats `json:"gamemodes"`
}

type Userinfo struct {
	Platform string `json:"platform"`
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	UserID   string `json:"userid"`
	Avatar   string `json:"avatar"`
}

// Overview projects the overview segment.
func (s *Snapshot) Overview(opts Options) (*OverviewStats, error) {
	seg, err := s.findSegment(SegmentOverview, func(seg Segment) bool {
		return seg.Type == SegmentOverview
	})
	if err != nil {
		return nil, err
	}

	r := statReader{segment: SegmentOverview, stats: seg.Stats}
	out := &OverviewStats{
		Assists:           r.intValue("assists"),
		Goals:             r.intValue("goals"),
		GoalShotRatio:     r.number("goalShotRatio"),
		MVPs:              r.intValue("mVPs"),
		Saves:             r.intValue("saves"),
		Score:             r.intValue("score"),
		SeasonRewardLevel: r.intValue("seasonRewardLevel"),
		SeasonRewardWins:  r.intValue("seasonRewardWins"),
		Shots:             r.intValue("shots"),
		TRNRating:         r.number("tRNRating"),
		Wins:              r.intValue("wins"),
	}
	if r.err != nil {
		return nil, r.err
	}
	if opts.Raw {
		dup := seg.clone()
		out.Raw = &dup
	}
	return out, nil
}

// Playlist projects the playlist segment with the given name.
func (s *Snapshot) Playlist(name string, opts Options) (*PlaylistStats, error) {
	seg, err := s.findSegment(name, func(seg Segment) bool {
		return seg.Type == SegmentPlaylist && seg.Metadata.Name == name
	})
	if err != nil {
		return nil, err
	}
	return playlistStats(seg, opts.Raw)
}

func (s *Snapshot) Get1v1(opts Options) (*PlaylistStats, error) {
	return s.Playlist(PlaylistDuel, opts)
}

func (s *Snapshot) Get2v2(opts Options) (*PlaylistStats, error) {
	return s.Playlist(PlaylistDoubles, opts)
}

func (s *Snapshot) Get3v3(opts Options) (*PlaylistStats, error) {
	return s.Playlist(PlaylistStandard, opts)
}

var rankedModes = map[string]string{
	"1v1": PlaylistDuel,
	"2v2": PlaylistDoubles,
	"3v3": PlaylistStandard,
}

// PlaylistName maps the short ranked mode names to provider playlist names.
// Anything else is taken to be a provider playlist name already.
func PlaylistName(mode string) string {
	if name, ok := rankedModes[mode]; ok {
		return name
	}
	return mode
}

// Data returns the overview plus every playlist segment keyed by name.
// Playlists whose stats cannot be read are left out.
func (s *Snapshot) Data(opts Options) (*AllStats, error) {
	overview, err := s.Overview(opts)
	if err != nil {
		return nil, err
	}

	out := &AllStats{
		Overview:  *overview,
		Gamemodes: make(map[string]PlaylistStats),
	}
	for _, seg := range s.segmentsOfType(SegmentPlaylist) {
		stats, err := playlistStats(seg, false)
		if err != nil {
			var se *StatError
			if errors.As(err, &se) {
				continue
			}
			return nil, err
		}
		out.Gamemodes[seg.Metadata.Name] = *stats
	}
	return out, nil
}

// Userinfo reads the account identity section.
func (s *Snapshot) Userinfo() (*Userinfo, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}
	info := s.doc.Data.PlatformInfo
	return &Userinfo{
		Platform: info.PlatformSlug,
		UUID:     info.PlatformUserID,
		Name:     info.PlatformUserHandle,
		UserID:   info.PlatformUserIdentifier,
		Avatar:   info.AvatarURL,
	}, nil
}

func playlistStats(seg Segment, raw bool) (*PlaylistStats, error) {
	r := statReader{segment: seg.Metadata.Name, stats: seg.Stats}
	out := &PlaylistStats{
		Division:      r.intValue("division"),
		MatchesPlayed: r.intValue("matchesPlayed"),
		PeakRating:    r.intValue("peakRating"),
		Rating:        r.intValue("rating"),
		Tier:          r.intValue("tier"),
		WinStreak:     r.winStreak(),
	}
	if r.err != nil {
		return nil, r.err
	}

	division := seg.Stats["division"]
	out.DeltaUp = toInt(division.metaNumber("deltaUp"))
	out.DeltaDown = toInt(division.metaNumber("deltaDown"))
	out.Rank = seg.Stats["tier"].metaString("name")

	if raw {
		dup := seg.clone()
		out.Raw = &dup
	}
	return out, nil
}

// statReader reads stats of one segment and keeps the first failure.
type statReader struct {
	segment string
	stats   map[string]StatValue
	err     error
}

func (r *statReader) stat(key string) (StatValue, bool) {
	v, ok := r.stats[key]
	if !ok && r.err == nil {
		r.err = &StatError{Segment: r.segment, Stat: key, Err: errMissingStat}
	}
	return v, ok
}

func (r *statReader) number(key string) float64 {
	v, ok := r.stat(key)
	if !ok {
		return 0
	}
	if v.Value == nil {
		if r.err == nil {
			r.err = &StatError{Segment: r.segment, Stat: key, Err: errMissingStat}
		}
		return 0
	}
	return *v.Value
}

func (r *statReader) intValue(key string) int {
	return int(r.number(key))
}

// winStreak reads the display value; the numeric value is not reliable upstream.
func (r *statReader) winStreak() int {
	v, ok := r.stat("winStreak")
	if !ok {
		return 0
	}
	n, err := parseWinStreak(v.DisplayValue)
	if err != nil && r.err == nil {
		r.err = &StatError{Segment: r.segment, Stat: "winStreak", Err: err}
	}
	return n
}

func parseWinStreak(display string) (int, error) {
	if display == "0" {
		return 0, nil
	}
	return strconv.Atoi(display)
}

func toInt(f *float64) *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
