// Package tuning maps stored setting keys onto the App configuration.
package tuning

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"

	"github.com/ayusman/glimmer/internal/app"
	"github.com/ayusman/glimmer/internal/store"
)

// ErrUnknownKey is returned for a key with no matching tunable.
var ErrUnknownKey = errors.New("unknown setting")

// Source lists stored overrides. store.SettingsRepository satisfies it.
type Source interface {
	List() ([]store.Setting, error)
}

type tunable struct {
	field   func(c *app.Config) *float64
	integer func(c *app.Config) *int
	min     float64
	max     float64
}

var tunables = map[string]tunable{
	"gesture.pinch_threshold":  floatKey(func(c *app.Config) *float64 { return &c.Gesture.PinchThreshold }, 0, 1),
	"gesture.center_smoothing": floatKey(func(c *app.Config) *float64 { return &c.Gesture.CenterSmoothing }, 0, 1),

	"visual.rotating_threshold": floatKey(func(c *app.Config) *float64 { return &c.Visual.RotatingThreshold }, 0, math.Pi),
	"visual.speed_rotating":     floatKey(func(c *app.Config) *float64 { return &c.Visual.SpeedRotating }, 0, 1),
	"visual.speed_open":         floatKey(func(c *app.Config) *float64 { return &c.Visual.SpeedOpen }, 0, 1),
	"visual.speed_pinch":        floatKey(func(c *app.Config) *float64 { return &c.Visual.SpeedPinch }, 0, 1),
	"visual.glow_rotating":      floatKey(func(c *app.Config) *float64 { return &c.Visual.GlowRotating }, 0, 20),
	"visual.glow_idle":          floatKey(func(c *app.Config) *float64 { return &c.Visual.GlowIdle }, 0, 20),
	"visual.scale_open":         floatKey(func(c *app.Config) *float64 { return &c.Visual.ScaleOpen }, 0.05, 5),
	"visual.scale_pinch":        floatKey(func(c *app.Config) *float64 { return &c.Visual.ScalePinch }, 0.05, 5),
	"visual.speed_easing":       floatKey(func(c *app.Config) *float64 { return &c.Visual.SpeedEasing }, 0, 1),
	"visual.scale_easing":       floatKey(func(c *app.Config) *float64 { return &c.Visual.ScaleEasing }, 0, 1),
	"visual.glow_easing":        floatKey(func(c *app.Config) *float64 { return &c.Visual.GlowEasing }, 0, 1),

	"trail.decay":          floatKey(func(c *app.Config) *float64 { return &c.Trail.Decay }, 0, 1),
	"trail.emit_threshold": floatKey(func(c *app.Config) *float64 { return &c.Trail.EmitThreshold }, 0, math.Pi),
	"trail.emit_gain":      floatKey(func(c *app.Config) *float64 { return &c.Trail.EmitGain }, 0, 10000),
	"trail.max_per_frame":  intKey(func(c *app.Config) *int { return &c.Trail.MaxPerFrame }, 0, 1000),
	"trail.theta_step":     floatKey(func(c *app.Config) *float64 { return &c.Trail.ThetaStep }, 0, math.Pi),
	"trail.height_step":    floatKey(func(c *app.Config) *float64 { return &c.Trail.HeightStep }, 0, 8),

	"tree.boost":        floatKey(func(c *app.Config) *float64 { return &c.Tree.Boost }, 1, 5),
	"tree.twinkle_rate": floatKey(func(c *app.Config) *float64 { return &c.Tree.TwinkleRate }, 0, 1),

	"capture.fps":      intKey(func(c *app.Config) *int { return &c.Camera.FPS }, 1, 120),
	"capture.idle_fps": intKey(func(c *app.Config) *int { return &c.Camera.IdleFPS }, 1, 120),
}

func floatKey(f func(c *app.Config) *float64, min, max float64) tunable {
	return tunable{field: f, min: min, max: max}
}

func intKey(f func(c *app.Config) *int, min, max float64) tunable {
	return tunable{integer: f, min: min, max: max}
}

// Keys returns every tunable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(tunables))
	for k := range tunables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Parse validates value for key.
func Parse(key, value string) (float64, error) {
	t, ok := tunables[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if math.IsNaN(v) || v < t.min || v > t.max {
		return 0, fmt.Errorf("%s: %v outside [%v, %v]", key, v, t.min, t.max)
	}
	if t.integer != nil && v != math.Trunc(v) {
		return 0, fmt.Errorf("%s: %v is not a whole number", key, v)
	}
	return v, nil
}

// Set writes v into the field behind key.
func Set(cfg *app.Config, key string, v float64) error {
	t, ok := tunables[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if t.integer != nil {
		*t.integer(cfg) = int(v)
	} else {
		*t.field(cfg) = v
	}
	return nil
}

// Values returns the current value of every tunable in cfg.
func Values(cfg app.Config) map[string]float64 {
	values := make(map[string]float64, len(tunables))
	for k, t := range tunables {
		if t.integer != nil {
			values[k] = float64(*t.integer(&cfg))
		} else {
			values[k] = *t.field(&cfg)
		}
	}
	return values
}

// Apply copies every valid override from src into cfg and returns the keys it
// applied. Unknown or invalid rows are logged and skipped.
func Apply(cfg *app.Config, src Source) ([]string, error) {
	settings, err := src.List()
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	var applied []string
	for _, s := range settings {
		v, err := Parse(s.Key, s.Value)
		if err != nil {
			log.Printf("Ignoring setting %s=%q: %v", s.Key, s.Value, err)
			continue
		}
		if err := Set(cfg, s.Key, v); err != nil {
			log.Printf("Ignoring setting %s: %v", s.Key, err)
			continue
		}
		applied = append(applied, s.Key)
	}
	if len(applied) > 0 {
		log.Printf("Applied %d setting overrides", len(applied))
	}
	return applied, nil
}
