package store

import (
	"errors"
	"testing"
	"time"
)

func TestSessions_CreateUpdateGet(t *testing.T) {
	r := newTestStore(t).Sessions()

	start := time.Date(2026, 12, 24, 18, 0, 0, 0, time.UTC)
	s := &Session{ID: "sess-1", StartedAt: start}
	if err := r.Create(s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := r.GetByID("sess-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.EndedAt != nil {
		t.Errorf("open session has EndedAt = %v", got.EndedAt)
	}
	if !got.StartedAt.Equal(start) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, start)
	}

	end := start.Add(5 * time.Minute)
	s.EndedAt = &end
	s.Ticks, s.HandTicks, s.PinchTicks, s.RotatingTicks = 900, 600, 120, 200
	s.PeakSpeed = 0.21
	if err := r.Update(s); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err = r.GetByID("sess-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.EndedAt == nil || !got.EndedAt.Equal(end) {
		t.Errorf("EndedAt = %v, want %v", got.EndedAt, end)
	}
	if got.Ticks != 900 || got.HandTicks != 600 || got.PinchTicks != 120 || got.RotatingTicks != 200 {
		t.Errorf("counters = %+v", got)
	}
	if got.PeakSpeed != 0.21 {
		t.Errorf("PeakSpeed = %f, want 0.21", got.PeakSpeed)
	}
}

func TestSessions_NotFound(t *testing.T) {
	r := newTestStore(t).Sessions()

	if _, err := r.GetByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
	if err := r.Update(&Session{ID: "nope"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestSessions_ListNewestFirst(t *testing.T) {
	r := newTestStore(t).Sessions()
	base := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := r.Create(&Session{ID: id, StartedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("Create(%s) error = %v", id, err)
		}
	}

	list, err := r.List(2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "b" {
		ids := make([]string, len(list))
		for i, s := range list {
			ids[i] = s.ID
		}
		t.Errorf("List(2) ids = %v, want [c b]", ids)
	}
}
