// Package tree holds the static particle field that forms the tree body.
// Positions are fixed at creation; colors are rewritten every frame.
package tree

import (
	"math"
	"math/rand/v2"

	"github.com/ayusman/glimmer/internal/scene"
)

// Config controls field size and twinkle.
type Config struct {
	Count int
	Shape scene.Silhouette
	// TwinkleRate converts milliseconds into twinkle phase.
	TwinkleRate float64
	// Boost brightens the lead channel of each palette while the hand circles.
	Boost float64
}

// DefaultConfig returns the tuned field constants.
func DefaultConfig() Config {
	return Config{
		Count:       4500,
		Shape:       scene.DefaultSilhouette(),
		TwinkleRate: 0.005,
		Boost:       1.6,
	}
}

// Field is a fixed set of points inside the tree cone.
type Field struct {
	config    Config
	positions []scene.Vec3
	colors    []scene.RGB
}

// NewField places config.Count points uniformly inside the cone using rng.
func NewField(config Config, rng *rand.Rand) *Field {
	if config.Count < 0 {
		config.Count = 0
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	f := &Field{
		config:    config,
		positions: make([]scene.Vec3, config.Count),
		colors:    make([]scene.RGB, config.Count),
	}

	shape := config.Shape
	for i := range f.positions {
		y := rng.Float64() * shape.Height
		r := rng.Float64() * shape.RadiusAt(y)
		angle := rng.Float64() * 2 * math.Pi
		f.positions[i] = scene.Vec3{
			X: math.Cos(angle) * r,
			Y: shape.Centered(y),
			Z: math.Sin(angle) * r,
		}
	}
	return f
}

// Colorize recomputes every color for the wall-clock time nowMs. open picks the
// palette family; rotating applies the boost.
func (f *Field) Colorize(nowMs float64, open, rotating bool) {
	boost := 1.0
	if rotating {
		boost = f.config.Boost
	}
	phase := nowMs * f.config.TwinkleRate

	for i := range f.colors {
		tw := math.Sin(phase+float64(i))*0.5 + 0.5
		if open {
			f.colors[i] = openColor(i, tw, boost)
		} else {
			f.colors[i] = pinchColor(i, tw, boost)
		}
	}
}

// Gold, red and green.
func openColor(i int, tw, boost float64) scene.RGB {
	switch i % 3 {
	case 0:
		return scene.RGB{R: 1 * boost, G: 0.8 * tw, B: 0.2}
	case 1:
		return scene.RGB{R: tw, G: 0.1, B: 0.1}
	default:
		return scene.RGB{R: 0.2, G: 0.9 * tw, B: 0.2}
	}
}

// Blue and ice.
func pinchColor(i int, tw, boost float64) scene.RGB {
	if i%2 == 0 {
		return scene.RGB{R: 0.1, G: 0.3 * tw, B: 1 * boost}
	}
	return scene.RGB{R: 0.8 * tw, G: 0.9, B: 1}
}

// Positions returns the fixed point positions. Callers must not modify them.
func (f *Field) Positions() []scene.Vec3 {
	return f.positions
}

// Colors returns the colors written by the last Colorize.
func (f *Field) Colors() []scene.RGB {
	return f.colors
}

// Len returns the number of points.
func (f *Field) Len() int {
	return len(f.positions)
}
