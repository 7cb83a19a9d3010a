package engine

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"turf/internal/platform"
	"turf/internal/storage"
)

func newStoreWithRepo(t *testing.T, cloud platform.CloudStore, noSync bool) (*Store, *storage.BlobRepo) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := storage.NewBlobRepo(db)
	return NewStore(repo, cloud, noSync), repo
}

func TestLoadMissingYieldsDefaults(t *testing.T) {
	st, _ := newStoreWithRepo(t, nil, false)
	rec := st.Load(context.Background())
	if rec.Energy != MaxEnergy || rec.ScoreTotal != 0 || rec.Version != SchemaVersion {
		t.Fatalf("defaults = %+v", rec)
	}
}

func TestLoadCorruptBlobSelfHeals(t *testing.T) {
	st, repo := newStoreWithRepo(t, nil, false)
	ctx := context.Background()

	if err := repo.Put(ctx, storage.ProgressKey, "{definitely not json"); err != nil {
		t.Fatalf("put: %v", err)
	}
	rec := st.Load(ctx)
	if rec.ScoreTotal != 0 || rec.Energy != MaxEnergy {
		t.Fatalf("corrupt blob did not heal to defaults: %+v", rec)
	}
}

func TestLoadNormalizesOutOfRangeValues(t *testing.T) {
	st, repo := newStoreWithRepo(t, nil, false)
	ctx := context.Background()

	blob := `{"version":1,"score_total":-4,"energy":99,"streak":-1}`
	if err := repo.Put(ctx, storage.ProgressKey, blob); err != nil {
		t.Fatalf("put: %v", err)
	}
	rec := st.Load(ctx)
	if rec.Energy != MaxEnergy {
		t.Fatalf("energy = %d, want clamped to %d", rec.Energy, MaxEnergy)
	}
	if rec.ScoreTotal != 0 || rec.Streak != 0 {
		t.Fatalf("negative counters not repaired: %+v", rec)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	st, _ := newStoreWithRepo(t, nil, false)
	ctx := context.Background()

	rec := DefaultRecord()
	rec.DistrictID = "pad9"
	rec.ScoreTotal = 42
	rec.Bests["patrol"] = 17
	rec.User = &platform.User{ID: 7, FirstName: "Ada"}

	if err := st.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := st.Load(ctx)
	if got.DistrictID != "pad9" || got.ScoreTotal != 42 || got.Best(ActivityPatrol) != 17 {
		t.Fatalf("round trip = %+v", got)
	}
	if got.User == nil || got.User.FirstName != "Ada" {
		t.Fatalf("user lost in round trip: %+v", got.User)
	}
}

func TestSaveMirrorsToCloud(t *testing.T) {
	cloud := platform.NewFileCloud(filepath.Join(t.TempDir(), "cloud.json"))
	st, _ := newStoreWithRepo(t, cloud, false)
	ctx := context.Background()

	rec := DefaultRecord()
	rec.ScoreTotal = 99
	if err := st.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	st.Flush()

	values, err := cloud.Get(ctx, []string{cloudKey})
	if err != nil {
		t.Fatalf("cloud get: %v", err)
	}
	var mirrored ProgressRecord
	if err := json.Unmarshal([]byte(values[cloudKey]), &mirrored); err != nil {
		t.Fatalf("mirrored blob: %v", err)
	}
	if mirrored.ScoreTotal != 99 {
		t.Fatalf("mirrored total = %d, want 99", mirrored.ScoreTotal)
	}
}

func TestSaveLocalDoesNotMirror(t *testing.T) {
	cloud := platform.NewFileCloud(filepath.Join(t.TempDir(), "cloud.json"))
	st, _ := newStoreWithRepo(t, cloud, false)
	ctx := context.Background()

	if err := st.SaveLocal(ctx, DefaultRecord()); err != nil {
		t.Fatalf("save local: %v", err)
	}
	st.Flush()
	values, err := cloud.Get(ctx, []string{cloudKey})
	if err != nil {
		t.Fatalf("cloud get: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("SaveLocal leaked to cloud: %v", values)
	}
}

func TestNoSyncSuppressesMirror(t *testing.T) {
	cloud := platform.NewFileCloud(filepath.Join(t.TempDir(), "cloud.json"))
	st, _ := newStoreWithRepo(t, cloud, true)
	ctx := context.Background()

	if err := st.Save(ctx, DefaultRecord()); err != nil {
		t.Fatalf("save: %v", err)
	}
	st.Flush()
	values, _ := cloud.Get(ctx, []string{cloudKey})
	if len(values) != 0 {
		t.Fatalf("noSync leaked to cloud: %v", values)
	}
}

// journalCloud records every Set in call order and can stall writes to widen
// the window between queued mirrors.
type journalCloud struct {
	mu    sync.Mutex
	stall time.Duration
	blobs []string
}

func (c *journalCloud) Get(ctx context.Context, keys []string) (map[string]string, error) {
	return nil, nil
}

func (c *journalCloud) Set(ctx context.Context, values map[string]string) (bool, error) {
	if c.stall > 0 {
		time.Sleep(c.stall)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blobs = append(c.blobs, values[cloudKey])
	return true, nil
}

func TestMirrorConvergesOnNewestSave(t *testing.T) {
	cloud := &journalCloud{stall: 5 * time.Millisecond}
	st, _ := newStoreWithRepo(t, cloud, false)
	ctx := context.Background()

	rec := DefaultRecord()
	for total := 10; total <= 50; total += 10 {
		rec.ScoreTotal = total
		if err := st.Save(ctx, rec); err != nil {
			t.Fatalf("save %d: %v", total, err)
		}
	}
	st.Flush()

	if len(cloud.blobs) == 0 {
		t.Fatal("no mirror writes landed")
	}
	var last ProgressRecord
	if err := json.Unmarshal([]byte(cloud.blobs[len(cloud.blobs)-1]), &last); err != nil {
		t.Fatalf("final mirrored blob: %v", err)
	}
	if last.ScoreTotal != 50 {
		t.Fatalf("remote finished on total %d, want the newest 50", last.ScoreTotal)
	}
	// Intermediate states may coalesce away, but order never regresses.
	prev := -1
	for i, blob := range cloud.blobs {
		var snap ProgressRecord
		if err := json.Unmarshal([]byte(blob), &snap); err != nil {
			t.Fatalf("mirrored blob %d: %v", i, err)
		}
		if snap.ScoreTotal < prev {
			t.Fatalf("mirror order regressed: %d after %d", snap.ScoreTotal, prev)
		}
		prev = snap.ScoreTotal
	}
}

func TestFetchRemote(t *testing.T) {
	ctx := context.Background()

	// Absent collaborator: silent miss.
	st, _ := newStoreWithRepo(t, nil, false)
	if _, ok := st.FetchRemote(ctx); ok {
		t.Fatal("nil cloud returned a snapshot")
	}

	cloud := platform.NewFileCloud(filepath.Join(t.TempDir(), "cloud.json"))
	st, _ = newStoreWithRepo(t, cloud, false)

	// Empty store: silent miss.
	if _, ok := st.FetchRemote(ctx); ok {
		t.Fatal("empty cloud returned a snapshot")
	}

	// Unparsable snapshot: silent miss.
	if _, err := cloud.Set(ctx, map[string]string{cloudKey: "{broken"}); err != nil {
		t.Fatalf("seed cloud: %v", err)
	}
	if _, ok := st.FetchRemote(ctx); ok {
		t.Fatal("corrupt snapshot should be ignored")
	}

	// Valid snapshot with missing fields defaults the rest.
	if _, err := cloud.Set(ctx, map[string]string{cloudKey: `{"score_total":250}`}); err != nil {
		t.Fatalf("seed cloud: %v", err)
	}
	rec, ok := st.FetchRemote(ctx)
	if !ok {
		t.Fatal("expected snapshot")
	}
	if rec.ScoreTotal != 250 || rec.Energy != MaxEnergy {
		t.Fatalf("remote decode = %+v", rec)
	}
}

func TestBootstrapAdoptsRicherRemote(t *testing.T) {
	cloud := platform.NewFileCloud(filepath.Join(t.TempDir(), "cloud.json"))
	st, repo := newStoreWithRepo(t, cloud, false)
	ctx := context.Background()

	today := DayStamp(day1)
	local := `{"version":1,"score_total":100,"streak":9,"last_day":"` + today + `"}`
	if err := repo.Put(ctx, storage.ProgressKey, local); err != nil {
		t.Fatalf("seed local: %v", err)
	}
	remote := `{"version":1,"score_total":250,"streak":1,"district_id":"prom","last_day":"` + today + `"}`
	if _, err := cloud.Set(ctx, map[string]string{cloudKey: remote}); err != nil {
		t.Fatalf("seed cloud: %v", err)
	}

	svc := NewService(Params{Store: st})
	svc.now = func() time.Time { return day1 }
	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	rec := svc.Record()
	if rec.ScoreTotal != 250 || rec.DistrictID != "prom" {
		t.Fatalf("remote not adopted: %+v", rec)
	}
	// The coarse merge drops the higher local streak with the rest.
	if rec.Streak != 1 {
		t.Fatalf("streak = %d, want remote's 1", rec.Streak)
	}

	// Adoption was persisted locally.
	if got := st.Load(ctx); got.ScoreTotal != 250 {
		t.Fatalf("adoption not persisted: %+v", got)
	}
}

func TestBootstrapKeepsRicherLocal(t *testing.T) {
	cloud := platform.NewFileCloud(filepath.Join(t.TempDir(), "cloud.json"))
	st, repo := newStoreWithRepo(t, cloud, false)
	ctx := context.Background()

	today := DayStamp(day1)
	local := `{"version":1,"score_total":300,"last_day":"` + today + `"}`
	if err := repo.Put(ctx, storage.ProgressKey, local); err != nil {
		t.Fatalf("seed local: %v", err)
	}
	if _, err := cloud.Set(ctx, map[string]string{cloudKey: `{"version":1,"score_total":250}`}); err != nil {
		t.Fatalf("seed cloud: %v", err)
	}

	svc := NewService(Params{Store: st})
	svc.now = func() time.Time { return day1 }
	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if got := svc.Record().ScoreTotal; got != 300 {
		t.Fatalf("local lost to poorer remote: total %d", got)
	}
}

func TestBootstrapCapturesIdentity(t *testing.T) {
	st, _ := newStoreWithRepo(t, nil, false)
	svc := NewService(Params{
		Store:    st,
		Identity: platform.StaticIdentity{User: &platform.User{ID: 5, Username: "ada"}},
	})
	svc.now = func() time.Time { return day1 }

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	rec := svc.Record()
	if rec.User == nil || rec.User.Username != "ada" {
		t.Fatalf("identity not captured: %+v", rec.User)
	}
}
