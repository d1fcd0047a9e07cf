// Package trail simulates the helical light trail: a fixed ring of emissive
// particles that fade out and are rewritten in cursor order.
package trail

import (
	"math"

	"github.com/ayusman/glimmer/internal/gesture"
	"github.com/ayusman/glimmer/internal/scene"
)

// Config holds the trail constants.
type Config struct {
	// Capacity is the number of ring slots (N).
	Capacity int
	// Decay is subtracted from every live particle's life each frame.
	Decay float64
	// EmitThreshold gates emission on rotation speed. It is independent of the
	// controller's rotating threshold.
	EmitThreshold float64
	// EmitGain converts rotation speed into particles per frame.
	EmitGain float64
	// MaxPerFrame caps emission regardless of speed.
	MaxPerFrame int
	// ThetaStep and HeightStep advance the helix per emitted particle.
	ThetaStep  float64
	HeightStep float64
	// RadiusOffset pushes the helix just outside the tree surface.
	RadiusOffset float64
	// HueRate maps helix angle to hue; the offsets pick the color family.
	HueRate        float64
	HueOffsetOpen  float64
	HueOffsetPinch float64
	Saturation     float64
	Lightness      float64
}

// DefaultConfig returns the tuned trail constants.
func DefaultConfig() Config {
	return Config{
		Capacity:       2000,
		Decay:          0.012,
		EmitThreshold:  0.01,
		EmitGain:       150,
		MaxPerFrame:    30,
		ThetaStep:      0.18,
		HeightStep:     0.06,
		RadiusOffset:   0.2,
		HueRate:        0.05,
		HueOffsetOpen:  0.0,
		HueOffsetPinch: 0.6,
		Saturation:     0.9,
		Lightness:      0.6,
	}
}

// Simulator owns the ring buffer. Only Step writes slots; everything else
// reads through Particles.
type Simulator struct {
	config    Config
	shape     scene.Silhouette
	particles []scene.Point
	cursor    int // monotonic; slot = cursor % capacity
	theta     float64
	height    float64
}

// NewSimulator allocates a ring with every slot inactive.
func NewSimulator(config Config, shape scene.Silhouette) *Simulator {
	if config.Capacity <= 0 {
		config.Capacity = DefaultConfig().Capacity
	}
	return &Simulator{
		config:    config,
		shape:     shape,
		particles: make([]scene.Point, config.Capacity),
	}
}

// EmissionCount returns how many particles a state emits this frame.
func (s *Simulator) EmissionCount(state gesture.State) int {
	if !state.Active || state.RotationSpeed <= s.config.EmitThreshold {
		return 0
	}
	n := int(math.Floor(state.RotationSpeed * s.config.EmitGain))
	if n > s.config.MaxPerFrame {
		n = s.config.MaxPerFrame
	}
	return n
}

// Step advances one frame: decay every slot, then emit for the current
// gesture. size is the eased tree scale, applied to new particles only.
// It returns the number of particles emitted.
func (s *Simulator) Step(state gesture.State, size float64) int {
	s.decay()

	n := s.EmissionCount(state)
	hueOffset := s.config.HueOffsetOpen
	if !state.IsOpen {
		hueOffset = s.config.HueOffsetPinch
	}
	for i := 0; i < n; i++ {
		s.emit(size, hueOffset)
	}
	return n
}

func (s *Simulator) decay() {
	for i := range s.particles {
		p := &s.particles[i]
		if p.Life > 0 {
			p.Life -= s.config.Decay
			if p.Life < 0 {
				p.Life = 0
			}
		}
	}
}

func (s *Simulator) emit(size, hueOffset float64) {
	s.theta += s.config.ThetaStep
	s.height = math.Mod(s.height+s.config.HeightStep, s.shape.Height)

	r := s.shape.RadiusAt(s.height) + s.config.RadiusOffset
	pos := scene.Vec3{
		X: math.Cos(s.theta) * r,
		Y: s.shape.Centered(s.height),
		Z: math.Sin(s.theta) * r,
	}

	hue := math.Mod(s.theta*s.config.HueRate+hueOffset, 1.0)

	slot := s.NextSlot()
	s.particles[slot] = scene.Point{
		Position: pos.Scale(size),
		Color:    scene.HSL(hue, s.config.Saturation, s.config.Lightness),
		Life:     1.0,
	}
	s.cursor++
}

// NextSlot is the ring index the next emitted particle will occupy.
func (s *Simulator) NextSlot() int {
	return s.cursor % len(s.particles)
}

// Cursor returns the total number of particles ever emitted.
func (s *Simulator) Cursor() int {
	return s.cursor
}

// Len returns the ring capacity.
func (s *Simulator) Len() int {
	return len(s.particles)
}

// Particles exposes the ring in slot order. Callers must not modify it.
func (s *Simulator) Particles() []scene.Point {
	return s.particles
}

// ActiveCount returns the number of slots with life remaining.
func (s *Simulator) ActiveCount() int {
	n := 0
	for i := range s.particles {
		if s.particles[i].Life > 0 {
			n++
		}
	}
	return n
}
