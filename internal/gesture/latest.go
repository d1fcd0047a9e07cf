package gesture

import "sync/atomic"

// Latest is a single-slot cell holding the most recent State. The detection
// goroutine overwrites it; the render loop loads whatever is there. Neither
// side blocks and intermediate values may be skipped.
type Latest struct {
	v atomic.Pointer[State]
}

// NewLatest returns a cell holding the neutral state.
func NewLatest() *Latest {
	l := &Latest{}
	l.Store(NeutralState())
	return l
}

// Store publishes s, replacing any unread value.
func (l *Latest) Store(s State) {
	l.v.Store(&s)
}

// Load returns a snapshot of the latest state.
func (l *Latest) Load() State {
	if p := l.v.Load(); p != nil {
		return *p
	}
	return NeutralState()
}
