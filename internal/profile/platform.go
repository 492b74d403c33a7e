package profile

import (
	"fmt"
	"strings"
)

// Platform is the provider slug of a gaming platform.
type Platform string

const (
	Steam       Platform = "steam"
	Epic        Platform = "epic"
	Playstation Platform = "psn"
	Xbox        Platform = "xbl"
)

var platformNames = map[string]Platform{
	"steam":       Steam,
	"epic":        Epic,
	"playstation": Playstation,
	"psn":         Playstation,
	"xbox":        Xbox,
	"xbl":         Xbox,
}

// ParsePlatform accepts either a platform name ("Playstation") or its slug ("psn").
func ParsePlatform(s string) (Platform, error) {
	p, ok := platformNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlatform, s)
	}
	return p, nil
}

func (p Platform) Valid() bool {
	switch p {
	case Steam, Epic, Playstation, Xbox:
		return true
	}
	return false
}

func (p Platform) String() string { return string(p) }
