// Package platform defines the host-platform collaborators the engine talks
// to: a key-value cloud store, an identity source, haptic feedback and a
// geolocation sensor. Every implementation is optional; a nil collaborator
// means the capability is absent and the game degrades to local-only.
package platform

import (
	"context"
	"errors"
)

// User is the externally supplied identity descriptor. The engine treats it
// as opaque and persists it for convenience only.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// DisplayName joins the name parts, falling back to the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = u.Username
	}
	return name
}

// CloudStore is a remote key-value store shared across devices for one
// identity. Calls are best-effort: a failed Set is reported, never retried.
type CloudStore interface {
	Get(ctx context.Context, keys []string) (map[string]string, error)
	Set(ctx context.Context, values map[string]string) (bool, error)
}

// Identity looks up the current platform user, or nil when unknown.
type Identity interface {
	CurrentUser() *User
}

type HapticKind string

const (
	HapticLight   HapticKind = "light"
	HapticSuccess HapticKind = "success"
	HapticError   HapticKind = "error"
)

// Haptics is fire-and-forget tactile feedback. Pulse never fails the caller.
type Haptics interface {
	Pulse(kind HapticKind)
}

// Position is a single geolocation fix.
type Position struct {
	Lat float64
	Lon float64
}

// ErrNoPosition is returned when no fix can be acquired, either because the
// sensor is absent or the user denied it.
var ErrNoPosition = errors.New("position unavailable")

// Locator acquires a single-shot position fix.
type Locator interface {
	Position(ctx context.Context) (Position, error)
}
