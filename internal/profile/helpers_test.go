package profile

import (
	"context"
	"os"
	"testing"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	body, err := os.ReadFile("testdata/profile.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return body
}

func loadedSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	doc, err := DecodeDocument(loadFixture(t))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	snap, err := FromDocument(Epic, "Kaiser", doc)
	if err != nil {
		t.Fatalf("validate fixture: %v", err)
	}
	return snap
}

func snapshotFromJSON(t *testing.T, body string) *Snapshot {
	t.Helper()
	doc, err := DecodeDocument([]byte(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	snap, err := FromDocument(Steam, "someone", doc)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	return snap
}

type fetcherFunc func(ctx context.Context, url string) (*Document, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) (*Document, error) {
	return f(ctx, url)
}
