package profile

import (
	"context"
	"errors"
	"strings"
)

// Fetcher retrieves the provider document behind a profile URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Document, error)
}

// Client builds snapshots from a Fetcher and a profile URL template.
type Client struct {
	fetcher  Fetcher
	template string
}

func NewClient(fetcher Fetcher, template string) *Client {
	if template == "" {
		template = DefaultURLTemplate
	}
	return &Client{fetcher: fetcher, template: template}
}

// Snapshot fetches the profile of username on platform exactly once and
// validates it. It never returns a partially loaded snapshot.
func (c *Client) Snapshot(ctx context.Context, platform Platform, username string) (*Snapshot, error) {
	if !platform.Valid() {
		return nil, ErrInvalidPlatform
	}
	if strings.TrimSpace(username) == "" {
		return nil, ErrEmptyUsername
	}

	url := ProfileURL(c.template, platform, username)
	doc, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		var fe *FetchError
		var pe *ParseError
		if errors.As(err, &fe) || errors.As(err, &pe) {
			return nil, err
		}
		return nil, &FetchError{URL: url, Err: err}
	}

	return FromDocument(platform, username, doc)
}

// Snapshot is one validated profile document. It is either unloaded, in which
// case every projection fails with ErrNotLoaded, or loaded and read-only.
type Snapshot struct {
	Platform Platform
	Username string

	doc *Document
}

// NewSnapshot returns an unloaded snapshot.
func NewSnapshot(platform Platform, username string) *Snapshot {
	return &Snapshot{Platform: platform, Username: username}
}

// FromDocument validates doc and wraps it in a loaded snapshot.
func FromDocument(platform Platform, username string, doc *Document) (*Snapshot, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &Snapshot{Platform: platform, Username: username, doc: doc}, nil
}

func (s *Snapshot) Loaded() bool { return s != nil && s.doc != nil }

// Raw returns a copy of the stored document, or nil when unloaded. Changes to
// the copy do not reach the snapshot.
func (s *Snapshot) Raw() *Document {
	if s == nil {
		return nil
	}
	return s.doc.clone()
}

// findSegment scans the segment list in order and returns a copy of the first match.
func (s *Snapshot) findSegment(key string, match func(Segment) bool) (Segment, error) {
	if !s.Loaded() {
		return Segment{}, ErrNotLoaded
	}
	for _, seg := range s.doc.Data.Segments {
		if match(seg) {
			return seg, nil
		}
	}
	return Segment{}, &SegmentNotFoundError{Key: key}
}

func (s *Snapshot) segmentsOfType(typ string) []Segment {
	var out []Segment
	for _, seg := range s.doc.Data.Segments {
		if seg.Type == typ {
			out = append(out, seg)
		}
	}
	return out
}
