package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/glimmer/internal/gesture"
	"github.com/ayusman/glimmer/internal/store"
)

// Recorder counts detection ticks for the session log. It is a Notifier.
type Recorder struct {
	mu                sync.Mutex
	sessions          *store.SessionRepository
	session           store.Session
	rotatingThreshold float64
}

// NewRecorder opens a session row. rotatingThreshold decides which ticks count
// as circling.
func NewRecorder(sessions *store.SessionRepository, rotatingThreshold float64) (*Recorder, error) {
	r := &Recorder{
		sessions:          sessions,
		session:           store.Session{ID: uuid.NewString(), StartedAt: time.Now()},
		rotatingThreshold: rotatingThreshold,
	}
	if err := sessions.Create(&r.session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return r, nil
}

func (r *Recorder) Notify(s gesture.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session.Ticks++
	if !s.Active {
		return
	}
	r.session.HandTicks++
	if s.IsPinching {
		r.session.PinchTicks++
	}
	if s.RotationSpeed > r.rotatingThreshold {
		r.session.RotatingTicks++
	}
	if s.RotationSpeed > r.session.PeakSpeed {
		r.session.PeakSpeed = s.RotationSpeed
	}
}

// Snapshot returns the counters so far.
func (r *Recorder) Snapshot() store.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// Finish stamps the end time and writes the counters.
func (r *Recorder) Finish() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	end := time.Now()
	r.session.EndedAt = &end
	if err := r.sessions.Update(&r.session); err != nil {
		return fmt.Errorf("save session %s: %w", r.session.ID, err)
	}
	return nil
}
