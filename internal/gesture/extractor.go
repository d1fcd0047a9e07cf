package gesture

import (
	"math"

	"github.com/ayusman/glimmer/internal/detector"
)

// Config holds the signal extraction constants.
type Config struct {
	// PinchThreshold is the thumb-index distance below which the hand is pinching.
	PinchThreshold float64
	// CenterSmoothing is the per-tick lerp factor pulling the rotation center toward the wrist.
	CenterSmoothing float64
	// InitialCenter is the rotation center before any hand is seen.
	InitialCenter detector.Point3D
}

// DefaultConfig returns the tuned extraction constants.
func DefaultConfig() Config {
	return Config{
		PinchThreshold:  0.07,
		CenterSmoothing: 0.1,
		InitialCenter:   detector.Point3D{X: 0.5, Y: 0.5},
	}
}

// Extractor derives a State from each detection result. It is not safe for
// concurrent use; one producer goroutine owns it.
type Extractor struct {
	config    Config
	center    detector.Point3D
	prevAngle float64
	hasPrev   bool
	state     State
}

// NewExtractor creates an Extractor in the neutral state.
func NewExtractor(config Config) *Extractor {
	return &Extractor{
		config: config,
		center: config.InitialCenter,
		state:  NeutralState(),
	}
}

// Update consumes one detection tick. A nil hand means no hand was found.
//
// With a hand:
// 1. Smooth the rotation center toward the wrist
// 2. Measure thumb-index distance and classify pinch/open
// 3. Take the index tip angle around the center
// 4. Rotation speed is the wrapped angle delta since the last tick (0 on reacquire)
//
// Without a hand the state goes inactive and the previous angle is dropped so
// the next reacquired hand does not produce a spurious delta.
func (e *Extractor) Update(hand *detector.HandLandmarks) State {
	if hand == nil {
		e.state.Active = false
		e.state.RotationSpeed = 0
		e.hasPrev = false
		return e.state
	}

	wrist := hand.Wrist()
	e.center.X = lerp(e.center.X, wrist.X, e.config.CenterSmoothing)
	e.center.Y = lerp(e.center.Y, wrist.Y, e.config.CenterSmoothing)

	dist := hand.PinchDistance()
	pinching, open := Classify(dist, e.config.PinchThreshold)

	index := hand.IndexTip()
	angle := math.Atan2(index.Y-e.center.Y, index.X-e.center.X)

	speed := 0.0
	if e.hasPrev {
		speed = math.Abs(WrapAngle(angle - e.prevAngle))
	}
	e.prevAngle = angle
	e.hasPrev = true

	e.state = State{
		PinchDistance: dist,
		IsPinching:    pinching,
		IsOpen:        open,
		Active:        true,
		RotationSpeed: speed,
	}
	return e.state
}

// State returns the most recent state without consuming a tick.
func (e *Extractor) State() State {
	return e.state
}

// Center returns the current rotation center.
func (e *Extractor) Center() detector.Point3D {
	return e.center
}

// Classify splits a pinch distance into the two mutually exclusive flags.
// The comparison is strict: a distance equal to threshold is open.
func Classify(distance, threshold float64) (pinching, open bool) {
	pinching = distance < threshold
	return pinching, !pinching
}

// WrapAngle folds a raw angle delta into [-π, π] by adding or subtracting 2π once.
func WrapAngle(delta float64) float64 {
	if delta > math.Pi {
		delta -= 2 * math.Pi
	}
	if delta < -math.Pi {
		delta += 2 * math.Pi
	}
	return delta
}

func lerp(start, end, amt float64) float64 {
	return (1-amt)*start + amt*end
}
