package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileCloud is a CloudStore backed by a single JSON file. It stands in for
// the hosted key-value store when the game runs outside the host platform,
// e.g. pointed at a synced folder shared between machines.
type FileCloud struct {
	path string
}

func NewFileCloud(path string) *FileCloud {
	return &FileCloud{path: path}
}

func (c *FileCloud) readAll() (map[string]string, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cloud read: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("cloud decode: %w", err)
	}
	return values, nil
}

func (c *FileCloud) Get(ctx context.Context, keys []string) (map[string]string, error) {
	all, err := c.readAll()
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	for _, k := range keys {
		if v, ok := all[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (c *FileCloud) Set(ctx context.Context, values map[string]string) (bool, error) {
	all, err := c.readAll()
	if err != nil {
		return false, err
	}
	for k, v := range values {
		all[k] = v
	}
	raw, err := json.Marshal(all)
	if err != nil {
		return false, fmt.Errorf("cloud encode: %w", err)
	}
	// Write-then-rename so a concurrent reader never sees a torn file.
	tmp := c.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return false, fmt.Errorf("cloud mkdir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return false, fmt.Errorf("cloud write: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return false, fmt.Errorf("cloud rename: %w", err)
	}
	return true, nil
}

// StaticIdentity returns a fixed user, or nil when none is configured.
type StaticIdentity struct {
	User *User
}

func (s StaticIdentity) CurrentUser() *User { return s.User }

// NoopHaptics satisfies Haptics where the terminal has no feedback channel.
type NoopHaptics struct{}

func (NoopHaptics) Pulse(HapticKind) {}

// StaticLocator reports a fixed position, e.g. from command-line flags.
type StaticLocator struct {
	Fix Position
}

func (s StaticLocator) Position(ctx context.Context) (Position, error) {
	return s.Fix, nil
}

const (
	locatorTimeout = 9 * time.Second
	fixMaxAge      = 120 * time.Second
)

// CachedLocator wraps a Locator with the sensor contract from the host
// platform: a single-shot acquisition with a ~9 s timeout, reusing a cached
// fix up to ~120 s old.
type CachedLocator struct {
	Inner Locator

	now     func() time.Time
	fix     Position
	fixedAt time.Time
}

func NewCachedLocator(inner Locator) *CachedLocator {
	return &CachedLocator{Inner: inner, now: time.Now}
}

func (c *CachedLocator) Position(ctx context.Context) (Position, error) {
	if c.Inner == nil {
		return Position{}, ErrNoPosition
	}
	if !c.fixedAt.IsZero() && c.now().Sub(c.fixedAt) <= fixMaxAge {
		return c.fix, nil
	}
	ctx, cancel := context.WithTimeout(ctx, locatorTimeout)
	defer cancel()
	fix, err := c.Inner.Position(ctx)
	if err != nil {
		return Position{}, err
	}
	c.fix = fix
	c.fixedAt = c.now()
	return fix, nil
}
