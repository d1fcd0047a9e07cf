// Package scene holds the geometry shared by the particle systems and the
// per-frame description handed to the renderer.
package scene

import "math"

// Vec3 is a position in world units. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// RotateY rotates v about the vertical axis by angle radians.
func (v Vec3) RotateY(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// RGB is a linear color. Components may exceed 1 when boosted; the renderer clamps.
type RGB struct {
	R, G, B float64
}

// Silhouette is the cone shared by the static field and the trail helix.
type Silhouette struct {
	Height     float64
	BaseRadius float64
}

// DefaultSilhouette is the tree outline: 8 units tall, 3.5 units wide at the base.
func DefaultSilhouette() Silhouette {
	return Silhouette{Height: 8, BaseRadius: 3.5}
}

// RadiusAt returns the cone radius at height y measured from the base.
func (s Silhouette) RadiusAt(y float64) float64 {
	return (1 - y/s.Height) * s.BaseRadius
}

// Centered converts a height from the base into a y coordinate centered on the tree.
func (s Silhouette) Centered(y float64) float64 {
	return y - s.Height/2
}
