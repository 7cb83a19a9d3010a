package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCloudRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewFileCloud(filepath.Join(t.TempDir(), "cloud.json"))

	got, err := c.Get(ctx, []string{"turf_state_v1"})
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no values, got %v", got)
	}

	ok, err := c.Set(ctx, map[string]string{"turf_state_v1": `{"score_total":5}`})
	if err != nil || !ok {
		t.Fatalf("set: ok=%v err=%v", ok, err)
	}

	got, err = c.Get(ctx, []string{"turf_state_v1", "other"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["turf_state_v1"] != `{"score_total":5}` {
		t.Fatalf("got %v", got)
	}
	if _, ok := got["other"]; ok {
		t.Fatal("unexpected key returned")
	}
}

func TestFileCloudCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloud.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := NewFileCloud(path)
	if _, err := c.Get(context.Background(), []string{"k"}); err == nil {
		t.Fatal("expected decode error")
	}
}

type fakeLocator struct {
	fix   Position
	err   error
	calls int
}

func (f *fakeLocator) Position(ctx context.Context) (Position, error) {
	f.calls++
	if f.err != nil {
		return Position{}, f.err
	}
	return f.fix, nil
}

func TestCachedLocatorReusesRecentFix(t *testing.T) {
	inner := &fakeLocator{fix: Position{Lat: 45.6, Lon: 63.3}}
	loc := NewCachedLocator(inner)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	loc.now = func() time.Time { return now }

	if _, err := loc.Position(context.Background()); err != nil {
		t.Fatalf("first fix: %v", err)
	}
	now = now.Add(60 * time.Second)
	if _, err := loc.Position(context.Background()); err != nil {
		t.Fatalf("cached fix: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner called %d times, want 1", inner.calls)
	}

	now = now.Add(fixMaxAge + time.Second)
	if _, err := loc.Position(context.Background()); err != nil {
		t.Fatalf("refresh fix: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("inner called %d times, want 2", inner.calls)
	}
}

func TestCachedLocatorNoSensor(t *testing.T) {
	loc := NewCachedLocator(nil)
	if _, err := loc.Position(context.Background()); !errors.Is(err, ErrNoPosition) {
		t.Fatalf("err = %v, want ErrNoPosition", err)
	}
}
