package scene

import "math"

// HSL converts hue, saturation and lightness (all in [0,1]) to RGB.
func HSL(h, s, l float64) RGB {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	s = clamp01(s)
	l = clamp01(l)

	if s == 0 {
		return RGB{R: l, G: l, B: l}
	}

	var q float64
	if l <= 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: hueToChannel(p, q, h+1.0/3),
		G: hueToChannel(p, q, h),
		B: hueToChannel(p, q, h-1.0/3),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*6*(2.0/3-t)
	default:
		return p
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamped returns c with every component limited to [0,1].
func (c RGB) Clamped() RGB {
	return RGB{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}
