package store

import (
	"database/sql"
	"errors"
	"time"
)

// Session summarizes one run of the tree.
type Session struct {
	ID            string     `json:"id"`
	StartedAt     time.Time  `json:"startedAt"`
	EndedAt       *time.Time `json:"endedAt,omitempty"`
	Ticks         int        `json:"ticks"`
	HandTicks     int        `json:"handTicks"`
	PinchTicks    int        `json:"pinchTicks"`
	RotatingTicks int        `json:"rotatingTicks"`
	PeakSpeed     float64    `json:"peakSpeed"`
}

// SessionRepository reads and writes the sessions table.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new open session.
func (r *SessionRepository) Create(s *Session) error {
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}
	_, err := r.db.Exec(
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		s.ID, s.StartedAt,
	)
	return err
}

// Update writes the counters and end time of s.
func (r *SessionRepository) Update(s *Session) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ?, ticks = ?, hand_ticks = ?, pinch_ticks = ?,
		 rotating_ticks = ?, peak_speed = ? WHERE id = ?`,
		s.EndedAt, s.Ticks, s.HandTicks, s.PinchTicks, s.RotatingTicks, s.PeakSpeed, s.ID,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns one session.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	row := r.db.QueryRow(
		`SELECT id, started_at, ended_at, ticks, hand_ticks, pinch_ticks, rotating_ticks, peak_speed
		 FROM sessions WHERE id = ?`, id)

	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// List returns up to limit sessions, newest first.
func (r *SessionRepository) List(limit int) ([]*Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(
		`SELECT id, started_at, ended_at, ticks, hand_ticks, pinch_ticks, rotating_ticks, peak_speed
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	s := &Session{}
	var ended sql.NullTime
	err := row.Scan(&s.ID, &s.StartedAt, &ended, &s.Ticks, &s.HandTicks, &s.PinchTicks, &s.RotatingTicks, &s.PeakSpeed)
	if err != nil {
		return nil, err
	}
	if ended.Valid {
		t := ended.Time
		s.EndedAt = &t
	}
	return s, nil
}
