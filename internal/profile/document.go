package profile

import (
	"encoding/json"
	"errors"
)

// Document is one profile response from the stats provider.
type Document struct {
	Data   *ProfileData `json:"data"`
	Errors []APIError   `json:"errors,omitempty"`
}

type APIError struct {
	Message string `json:"message"`
}

type ProfileData struct {
	PlatformInfo PlatformInfo `json:"platformInfo"`
	Segments     []Segment    `json:"segments"`
}

type PlatformInfo struct {
	PlatformSlug           string `json:"platformSlug"`
	PlatformUserID         string `json:"platformUserId"`
	PlatformUserHandle     string `json:"platformUserHandle"`
	PlatformUserIdentifier string `json:"platformUserIdentifier"`
	AvatarURL              string `json:"avatarUrl"`
}

// Segment is one stat category of a profile. The bytes it was decoded from
// are kept so it can be handed back to callers unmodified.
type Segment struct {
	Type     string
	Metadata SegmentMetadata
	Stats    map[string]StatValue

	raw json.RawMessage
}

type SegmentMetadata struct {
	Name string `json:"name"`
}

type segmentFields struct {
	Type     string               `json:"type"`
	Metadata SegmentMetadata      `json:"metadata"`
	Stats    map[string]StatValue `json:"stats"`
}

func (s *Segment) UnmarshalJSON(b []byte) error {
	var f segmentFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	s.Type = f.Type
	s.Metadata = f.Metadata
	s.Stats = f.Stats
	s.raw = append(json.RawMessage(nil), b...)
	return nil
}

func (s Segment) MarshalJSON() ([]byte, error) {
	if len(s.raw) > 0 {
		return s.raw, nil
	}
	return json.Marshal(segmentFields{Type: s.Type, Metadata: s.Metadata, Stats: s.Stats})
}

// StatValue is a single measured quantity inside a segment.
type StatValue struct {
	Value        *float64       `json:"value"`
	DisplayValue string         `json:"displayValue"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

func (v StatValue) metaNumber(key string) *float64 {
	n, ok := v.Metadata[key].(float64)
	if !ok {
		return nil
	}
	return &n
}

func (v StatValue) metaString(key string) *string {
	s, ok := v.Metadata[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// DecodeDocument parses a provider response body. It does not validate it.
func DecodeDocument(body []byte) (*Document, error) {
	var doc *Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc == nil {
		return nil, &ParseError{Err: errors.New("empty document")}
	}
	return doc, nil
}

// Validate reports whether the document denotes a successful lookup. Only
// the first provider error is surfaced.
func (d *Document) Validate() error {
	if d == nil {
		return &ParseError{Err: errors.New("empty document")}
	}
	if len(d.Errors) > 0 {
		return &ProviderError{Message: d.Errors[0].Message}
	}
	if d.Data == nil {
		return &ParseError{Err: errors.New("missing data section")}
	}
	return nil
}

// clone returns a copy of s that shares no maps or bytes with it.
func (s Segment) clone() Segment {
	out := Segment{
		Type:     s.Type,
		Metadata: s.Metadata,
		raw:      append(json.RawMessage(nil), s.raw...),
	}
	if s.Stats != nil {
		out.Stats = make(map[string]StatValue, len(s.Stats))
		for k, v := range s.Stats {
			out.Stats[k] = v.clone()
		}
	}
	return out
}

func (v StatValue) clone() StatValue {
	out := StatValue{DisplayValue: v.DisplayValue}
	if v.Value != nil {
		n := *v.Value
		out.Value = &n
	}
	if v.Metadata != nil {
		out.Metadata, _ = cloneJSON(v.Metadata).(map[string]any)
	}
	return out
}

// cloneJSON deep-copies a value produced by encoding/json.
func cloneJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneJSON(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneJSON(e)
		}
		return s
	}
	return v
}

func (d *Document) clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Errors: append([]APIError(nil), d.Errors...)}
	if d.Data != nil {
		data := &ProfileData{PlatformInfo: d.Data.PlatformInfo}
		if d.Data.Segments != nil {
			data.Segments = make([]Segment, len(d.Data.Segments))
			for i, seg := range d.Data.Segments {
				data.Segments[i] = seg.clone()
			}
		}
		out.Data = data
	}
	return out
}
