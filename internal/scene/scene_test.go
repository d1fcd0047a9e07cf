package scene

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestHSL(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		want    RGB
	}{
		{"red", 0, 1, 0.5, RGB{1, 0, 0}},
		{"green", 1.0 / 3, 1, 0.5, RGB{0, 1, 0}},
		{"blue", 2.0 / 3, 1, 0.5, RGB{0, 0, 1}},
		{"grey when unsaturated", 0.3, 0, 0.4, RGB{0.4, 0.4, 0.4}},
		{"hue wraps", 1.0, 1, 0.5, RGB{1, 0, 0}},
		{"trail red", 0, 0.9, 0.6, RGB{0.96, 0.24, 0.24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSL(tt.h, tt.s, tt.l)
			if !near(got.R, tt.want.R) || !near(got.G, tt.want.G) || !near(got.B, tt.want.B) {
				t.Errorf("HSL(%f, %f, %f) = %+v, want %+v", tt.h, tt.s, tt.l, got, tt.want)
			}
		})
	}
}

func TestHSL_StaysInGamut(t *testing.T) {
	for h := -1.0; h <= 2.0; h += 0.01 {
		c := HSL(h, 0.9, 0.6)
		for _, v := range []float64{c.R, c.G, c.B} {
			if v < -epsilon || v > 1+epsilon {
				t.Fatalf("HSL(%f) = %+v out of gamut", h, c)
			}
		}
	}
}

func TestSilhouette(t *testing.T) {
	s := DefaultSilhouette()

	if got := s.RadiusAt(0); got != 3.5 {
		t.Errorf("RadiusAt(0) = %f, want 3.5", got)
	}
	if got := s.RadiusAt(8); got != 0 {
		t.Errorf("RadiusAt(8) = %f, want 0", got)
	}
	if got := s.RadiusAt(4); got != 1.75 {
		t.Errorf("RadiusAt(4) = %f, want 1.75", got)
	}
	if got := s.Centered(0); got != -4 {
		t.Errorf("Centered(0) = %f, want -4", got)
	}
}

func TestVec3_RotateY(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 0}

	r := v.RotateY(math.Pi / 2)
	if !near(r.X, 0) || r.Y != 2 || !near(math.Abs(r.Z), 1) {
		t.Errorf("RotateY(pi/2) = %+v", r)
	}

	full := v.RotateY(2 * math.Pi)
	if !near(full.X, v.X) || !near(full.Z, v.Z) {
		t.Errorf("RotateY(2pi) = %+v, want %+v", full, v)
	}
}

func TestRGB_Clamped(t *testing.T) {
	c := RGB{R: 1.6, G: -0.2, B: 0.5}.Clamped()
	if c != (RGB{R: 1, G: 0, B: 0.5}) {
		t.Errorf("Clamped() = %+v", c)
	}
}

func TestVec3_Add(t *testing.T) {
	got := Vec3{X: 1, Y: 2, Z: 3}.Add(Vec3{X: -1, Y: 0.5, Z: 1})
	if got != (Vec3{X: 0, Y: 2.5, Z: 4}) {
		t.Errorf("Add() = %+v", got)
	}
}
