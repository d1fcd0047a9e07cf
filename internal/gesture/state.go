// Package gesture turns raw hand landmarks into the smoothed gesture signals
// that drive the tree: pinch distance, open/pinch mode, and rotation speed.
package gesture

import "fmt"

// Mode names the two color families of the tree.
type Mode string

const (
	// ModeMerry is the open-hand mode (warm palette, full size).
	ModeMerry Mode = "MERRY"
	// ModeSilent is the pinch mode (cool palette, shrunken tree).
	ModeSilent Mode = "SILENT"
)

// MagicSpeed is the rotation speed above which the status readout switches to
// its "creating magic" message.
const MagicSpeed = 0.05

// State is the gesture record produced on every detection tick.
type State struct {
	PinchDistance float64 `json:"pinchDistance"`
	IsOpen        bool    `json:"isOpen"`
	IsPinching    bool    `json:"isPinching"`
	Active        bool    `json:"active"`
	RotationSpeed float64 `json:"rotationSpeed"` // radians per detection tick
}

// NeutralState is the state before any hand has been seen.
func NeutralState() State {
	return State{
		PinchDistance: 1,
		IsOpen:        true,
		IsPinching:    false,
		Active:        false,
		RotationSpeed: 0,
	}
}

// Mode reports the color family selected by the state.
func (s State) Mode() Mode {
	if s.IsOpen {
		return ModeMerry
	}
	return ModeSilent
}

// Describe returns the one-line status readout for s.
func Describe(s State) string {
	switch {
	case !s.Active:
		return "Show your hand to the camera"
	case s.RotationSpeed > MagicSpeed:
		return "Creating Magic"
	default:
		return fmt.Sprintf("Mode: %s", s.Mode())
	}
}

// Telemetry returns the small diagnostic readout: hand presence and motion velocity.
func Telemetry(s State) string {
	active := "NO"
	if s.Active {
		active = "YES"
	}
	return fmt.Sprintf("Hand Active: %s\nMotion Velocity: %.0f%%", active, s.RotationSpeed*100)
}
