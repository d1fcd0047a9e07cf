package capture

import "time"

// Rate switches the capture rate between active and idle. It runs inside
// the detection loop and is not safe for concurrent use.
type Rate struct {
	active     int
	idle       int
	idleAfter  time.Duration
	lastMotion time.Time
	idling     bool
}

// NewRate starts in the active state so a hand already in view is tracked
// at full rate.
func NewRate(config Config, idleAfter time.Duration, now time.Time) *Rate {
	idle := config.IdleFPS
	if idle <= 0 || idle > config.FPS {
		idle = config.FPS
	}
	return &Rate{
		active:     config.FPS,
		idle:       idle,
		idleAfter:  idleAfter,
		lastMotion: now,
	}
}

// Observe records one frame's motion result and returns the FPS to use and
// whether it changed.
func (r *Rate) Observe(motion bool, now time.Time) (int, bool) {
	if motion {
		r.lastMotion = now
		if r.idling {
			r.idling = false
			return r.active, true
		}
		return r.active, false
	}

	if !r.idling && now.Sub(r.lastMotion) > r.idleAfter {
		r.idling = true
		return r.idle, true
	}
	return r.FPS(), false
}

// FPS returns the current rate.
func (r *Rate) FPS() int {
	if r.idling {
		return r.idle
	}
	return r.active
}

// Idle reports whether the rate has dropped to idle.
func (r *Rate) Idle() bool {
	return r.idling
}

// Interval converts fps into a ticker period.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = 1
	}
	return time.Second / time.Duration(fps)
}
