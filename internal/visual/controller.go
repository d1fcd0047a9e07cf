// Package visual eases the tree's whole-object parameters (spin speed, glow,
// scale) toward targets chosen from the current gesture.
package visual

import "github.com/ayusman/glimmer/internal/gesture"

// Params are the smoothed per-frame visual parameters.
type Params struct {
	Size  float64 `json:"size"`
	Speed float64 `json:"speed"` // tree rotation per frame, radians
	Glow  float64 `json:"glow"`  // point light intensity
}

// Config holds targets, easing factors and the rotating threshold.
type Config struct {
	// RotatingThreshold is the rotation speed above which the hand counts as circling.
	// It is independent of the trail emission threshold.
	RotatingThreshold float64

	SpeedRotating float64
	SpeedOpen     float64
	SpeedPinch    float64

	GlowRotating float64
	GlowIdle     float64

	ScaleOpen  float64
	ScalePinch float64

	SpeedEasing float64
	ScaleEasing float64
	GlowEasing  float64 // slower than the others so the glow ramps visibly

	Initial Params
}

// DefaultConfig returns the tuned controller constants.
func DefaultConfig() Config {
	return Config{
		RotatingThreshold: 0.015,
		SpeedRotating:     0.045,
		SpeedOpen:         0.015,
		SpeedPinch:        0.002,
		GlowRotating:      3.0,
		GlowIdle:          0.5,
		ScaleOpen:         1.0,
		ScalePinch:        0.6,
		SpeedEasing:       0.05,
		ScaleEasing:       0.05,
		GlowEasing:        0.03,
		Initial:           Params{Size: 1.0, Speed: 0.01, Glow: 0},
	}
}

// Controller holds the current Params between frames.
type Controller struct {
	config  Config
	current Params
}

// NewController creates a Controller at the configured initial parameters.
func NewController(config Config) *Controller {
	return &Controller{
		config:  config,
		current: config.Initial,
	}
}

// IsRotating reports whether s counts as circling motion.
func (c *Controller) IsRotating(s gesture.State) bool {
	return s.RotationSpeed > c.config.RotatingThreshold
}

// Targets returns the parameters the controller is easing toward for s.
func (c *Controller) Targets(s gesture.State) Params {
	rotating := c.IsRotating(s)

	var t Params
	switch {
	case rotating:
		t.Speed = c.config.SpeedRotating
	case s.IsOpen:
		t.Speed = c.config.SpeedOpen
	default:
		t.Speed = c.config.SpeedPinch
	}

	if rotating {
		t.Glow = c.config.GlowRotating
	} else {
		t.Glow = c.config.GlowIdle
	}

	if s.IsOpen {
		t.Size = c.config.ScaleOpen
	} else {
		t.Size = c.config.ScalePinch
	}
	return t
}

// Step eases every parameter one frame toward its target and returns the result.
func (c *Controller) Step(s gesture.State) Params {
	t := c.Targets(s)
	c.current.Speed = Lerp(c.current.Speed, t.Speed, c.config.SpeedEasing)
	c.current.Glow = Lerp(c.current.Glow, t.Glow, c.config.GlowEasing)
	c.current.Size = Lerp(c.current.Size, t.Size, c.config.ScaleEasing)
	return c.current
}

// Current returns the parameters produced by the last Step.
func (c *Controller) Current() Params {
	return c.current
}

// Lerp moves start toward end by the fraction amt.
func Lerp(start, end, amt float64) float64 {
	return (1-amt)*start + amt*end
}
