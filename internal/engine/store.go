package engine

import (
	"context"
	"encoding/json"
	"sync"

	"turf/internal/platform"
	"turf/internal/storage"
)

// cloudKey is the remote key the record mirrors to. It is shared across all
// devices of one identity; last writer wins at whole-record granularity.
const cloudKey = "turf_state"

// Store wraps the local blob repo and the optional cloud collaborator. Local
// writes are authoritative; mirroring is best-effort and never blocks or
// fails the caller.
type Store struct {
	repo   *storage.BlobRepo
	cloud  platform.CloudStore
	noSync bool

	mirrors sync.WaitGroup

	mu        sync.Mutex
	pending   string // newest blob awaiting a mirror write, "" when none
	mirroring bool
}

func NewStore(repo *storage.BlobRepo, cloud platform.CloudStore, noSync bool) *Store {
	return &Store{repo: repo, cloud: cloud, noSync: noSync}
}

// Load reads the persisted record. Absence, read failure and unparsable
// blobs all self-heal to the default record; corruption is never surfaced.
func (s *Store) Load(ctx context.Context) *ProgressRecord {
	blob, ok, err := s.repo.Get(ctx, storage.ProgressKey)
	if err != nil || !ok {
		return DefaultRecord()
	}
	return decodeRecord(blob)
}

// Save persists the record locally and, unless suppressed, hands the blob to
// the mirror worker. A single worker drains the newest pending blob, so rapid
// saves coalesce and the remote always converges on the latest local write.
// A failed mirror does not roll back the local write.
func (s *Store) Save(ctx context.Context, rec *ProgressRecord) error {
	blob, err := s.saveLocal(ctx, rec)
	if err != nil {
		return err
	}
	if s.cloud == nil || s.noSync {
		return nil
	}
	s.mu.Lock()
	s.pending = blob
	if !s.mirroring {
		s.mirroring = true
		s.mirrors.Add(1)
		go s.mirror()
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) mirror() {
	defer s.mirrors.Done()
	for {
		s.mu.Lock()
		blob := s.pending
		s.pending = ""
		if blob == "" {
			s.mirroring = false
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
		// Remote failure is fully silent: local-only mode continues.
		_, _ = s.cloud.Set(context.Background(), map[string]string{cloudKey: blob})
	}
}

// SaveLocal persists without touching the remote store. Used when adopting a
// reconciled remote record, so the inbound path never triggers a redundant
// round-trip.
func (s *Store) SaveLocal(ctx context.Context, rec *ProgressRecord) error {
	_, err := s.saveLocal(ctx, rec)
	return err
}

func (s *Store) saveLocal(ctx context.Context, rec *ProgressRecord) (string, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	if err := s.repo.Put(ctx, storage.ProgressKey, string(raw)); err != nil {
		return "", err
	}
	return string(raw), nil
}

// FetchRemote pulls the remote snapshot. Any failure, absence or parse error
// yields (nil, false) with no error surface.
func (s *Store) FetchRemote(ctx context.Context) (*ProgressRecord, bool) {
	if s.cloud == nil {
		return nil, false
	}
	values, err := s.cloud.Get(ctx, []string{cloudKey})
	if err != nil {
		return nil, false
	}
	blob, ok := values[cloudKey]
	if !ok || blob == "" {
		return nil, false
	}
	rec := DefaultRecord()
	if err := json.Unmarshal([]byte(blob), rec); err != nil {
		return nil, false
	}
	rec.normalize()
	return rec, true
}

// Flush waits for pending mirror writes. Called on shutdown so the last
// fire-and-forget write gets its chance to land.
func (s *Store) Flush() {
	s.mirrors.Wait()
}

// decodeRecord unmarshals over defaults so missing fields keep their default
// values, then repairs ranges. A blob that fails to parse yields defaults.
func decodeRecord(blob string) *ProgressRecord {
	rec := DefaultRecord()
	if err := json.Unmarshal([]byte(blob), rec); err != nil {
		return DefaultRecord()
	}
	rec.normalize()
	return rec
}
