package profile

import (
	"context"
	"errors"
	"testing"
)

func TestClientSnapshotFetchesTemplatedURLOnce(t *testing.T) {
	body := loadFixture(t)
	var urls []string
	client := NewClient(fetcherFunc(func(ctx context.Context, url string) (*Document, error) {
		urls = append(urls, url)
		return DecodeDocument(body)
	}), "")

	snap, err := client.Snapshot(context.Background(), Playstation, "some player")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.Loaded() || snap.Raw() == nil {
		t.Fatalf("expected loaded snapshot")
	}
	if len(urls) != 1 {
		t.Fatalf("expected exactly one fetch, got %d", len(urls))
	}
	want := "https://api.tracker.gg/api/v2/rocket-league/standard/profile/psn/some player"
	if urls[0] != want {
		t.Fatalf("expected url %q, got %q", want, urls[0])
	}
	if snap.Platform != Playstation || snap.Username != "some player" {
		t.Fatalf("unexpected identity %+v", snap)
	}
}

func TestClientSnapshotReturnsFirstProviderError(t *testing.T) {
	client := NewClient(fetcherFunc(func(ctx context.Context, url string) (*Document, error) {
		return DecodeDocument([]byte(`{"errors":[
			{"code":"CollectorResultStatus::NotFound","message":"We could not find the player","data":{}},
			{"message":"second"},
			{"message":"third"}
		]}`))
	}), "")

	_, err := client.Snapshot(context.Background(), Steam, "ghost")
	pe, ok := AsProviderError(err)
	if !ok {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pe.Message != "We could not find the player" {
		t.Fatalf("unexpected message %q", pe.Message)
	}
}

func TestClientSnapshotWrapsTransportFailure(t *testing.T) {
	boom := errors.New("connection refused")
	client := NewClient(fetcherFunc(func(ctx context.Context, url string) (*Document, error) {
		return nil, boom
	}), "http://tracker.test/{PLATFORM}/{USERNAME}")

	_, err := client.Snapshot(context.Background(), Xbox, "someone")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.URL != "http://tracker.test/xbl/someone" {
		t.Fatalf("unexpected url %q", fe.URL)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped cause")
	}
}

func TestClientSnapshotPassesParseErrorThrough(t *testing.T) {
	client := NewClient(fetcherFunc(func(ctx context.Context, url string) (*Document, error) {
		return DecodeDocument([]byte(`<html>blocked</html>`))
	}), "")

	_, err := client.Snapshot(context.Background(), Epic, "someone")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestClientSnapshotValidatesInput(t *testing.T) {
	called := false
	client := NewClient(fetcherFunc(func(ctx context.Context, url string) (*Document, error) {
		called = true
		return nil, nil
	}), "")

	if _, err := client.Snapshot(context.Background(), Platform("switch"), "someone"); !errors.Is(err, ErrInvalidPlatform) {
		t.Fatalf("expected ErrInvalidPlatform, got %v", err)
	}
	if _, err := client.Snapshot(context.Background(), Steam, "  "); !errors.Is(err, ErrEmptyUsername) {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
	if called {
		t.Fatalf("fetcher should not be called for invalid input")
	}
}

func TestDocumentValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{name: "missing data", body: `{}`, want: &ParseError{}},
		{name: "null data", body: `{"data":null}`, want: &ParseError{}},
		{name: "empty error list", body: `{"data":{"segments":[]},"errors":[]}`, want: nil},
		{name: "provider error", body: `{"data":{"segments":[]},"errors":[{"message":"rate limited"}]}`, want: &ProviderError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeDocument([]byte(tt.body))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			err = doc.Validate()
			switch tt.want.(type) {
			case nil:
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
			case *ParseError:
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("expected ParseError, got %v", err)
				}
			case *ProviderError:
				if _, ok := AsProviderError(err); !ok {
					t.Fatalf("expected ProviderError, got %v", err)
				}
			}
		})
	}
}

func TestDecodeDocumentRejectsNullAndGarbage(t *testing.T) {
	for _, body := range []string{`null`, `not json`, `{"data":{"segments":{}}}`} {
		_, err := DecodeDocument([]byte(body))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%s: expected ParseError, got %v", body, err)
		}
	}
}
