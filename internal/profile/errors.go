package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned by projections on a snapshot that holds no document.
	ErrNotLoaded       = errors.New("no profile data loaded")
	ErrInvalidPlatform = errors.New("invalid platform")
	ErrEmptyUsername   = errors.New("username is required")
)

// FetchError means the provider could not be reached or answered with a
// failure status and no usable body.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError means the response body is not a profile document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse profile document: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// ProviderError carries the first error the provider reported.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return "provider returned an error"
	}
	return e.Message
}

// SegmentNotFoundError names the segment type or playlist that was looked up.
type SegmentNotFoundError struct {
	Key string
}

func (e *SegmentNotFoundError) Error() string {
	return fmt.Sprintf("no %s data found", e.Key)
}

// StatError means a required stat of a matched segment is absent or unreadable.
type StatError struct {
	Segment string
	Stat    string
	Err     error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("segment %q: stat %q: %v", e.Segment, e.Stat, e.Err)
}

func (e *StatError) Unwrap() error { return e.Err }

var errMissingStat = errors.New("missing")

func AsSegmentNotFound(err error) (*SegmentNotFoundError, bool) {
	var nf *SegmentNotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
