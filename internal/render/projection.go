package render

import (
	"math"

	"github.com/ayusman/glimmer/internal/scene"
)

// Camera is a pinhole camera looking down -Z from Eye.
type Camera struct {
	Eye    scene.Vec3
	FovY   float64 // vertical field of view, radians
	Near   float64
	Width  float64
	Height float64
}

// DefaultCamera sits slightly above the tree, 11 units back, with a 75 degree view.
func DefaultCamera(width, height float64) Camera {
	return Camera{
		Eye:    scene.Vec3{X: 0, Y: 2, Z: 11},
		FovY:   75 * math.Pi / 180,
		Near:   0.1,
		Width:  width,
		Height: height,
	}
}

// Projected is a point on screen. PxPerUnit converts world sizes at that depth
// into pixels.
type Projected struct {
	X, Y      float64
	PxPerUnit float64
}

// Project maps p to screen space. ok is false for points behind the near plane.
func (c Camera) Project(p scene.Vec3) (Projected, bool) {
	depth := c.Eye.Z - p.Z
	if depth < c.Near {
		return Projected{}, false
	}

	focal := (c.Height / 2) / math.Tan(c.FovY/2)
	return Projected{
		X:         c.Width/2 + (p.X-c.Eye.X)*focal/depth,
		Y:         c.Height/2 - (p.Y-c.Eye.Y)*focal/depth,
		PxPerUnit: (c.Height / 2) / depth,
	}, true
}

// PointSize converts an attenuated world point size to pixels, never below one.
func PointSize(worldSize, pxPerUnit float64) float64 {
	return math.Max(1, worldSize*pxPerUnit)
}
