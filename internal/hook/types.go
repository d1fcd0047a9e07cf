// Package hook runs user executables when the gesture crosses a notable
// boundary: a hand appears or leaves, the mode flips, or circling starts and
// stops. Each hook lives in its own directory with a hook.json manifest and
// receives one JSON Request on stdin per event.
package hook

import (
	"encoding/json"
	"slices"

	"github.com/ayusman/glimmer/internal/gesture"
)

// Event names a gesture transition.
type Event string

const (
	EventHandFound    Event = "hand-found"
	EventHandLost     Event = "hand-lost"
	EventModeChanged  Event = "mode-changed"
	EventMagicStarted Event = "magic-started"
	EventMagicStopped Event = "magic-stopped"
)

// Manifest describes a hook and the events it subscribes to.
type Manifest struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Executable  string          `json:"executable"`
	Events      []Event         `json:"events"`
	Config      json.RawMessage `json:"config,omitempty"`
}

// Request is written to the hook's stdin.
type Request struct {
	Event  Event           `json:"event"`
	Mode   gesture.Mode    `json:"mode"`
	State  gesture.State   `json:"state"`
	Config json.RawMessage `json:"config,omitempty"`
}

// Response is read from the hook's stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Hook is a discovered hook with its manifest and location.
type Hook struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Handles reports whether the hook subscribes to ev.
func (h *Hook) Handles(ev Event) bool {
	return slices.Contains(h.Manifest.Events, ev)
}
