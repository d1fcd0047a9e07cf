package trail

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ayusman/glimmer/internal/gesture"
	"github.com/ayusman/glimmer/internal/scene"
)

const epsilon = 1e-9

func newTestSimulator(capacity int) *Simulator {
	cfg := DefaultConfig()
	cfg.Capacity = capacity
	return NewSimulator(cfg, scene.DefaultSilhouette())
}

// oneParticle emits exactly one particle per frame: floor(0.011*150) = 1.
var oneParticle = gesture.State{Active: true, IsOpen: true, RotationSpeed: 0.011}

func TestSimulator_EmissionCount(t *testing.T) {
	s := newTestSimulator(100)

	tests := []struct {
		name  string
		state gesture.State
		want  int
	}{
		{"inactive hand", gesture.State{Active: false, RotationSpeed: 0.5}, 0},
		{"still hand", gesture.State{Active: true}, 0},
		{"at emit threshold", gesture.State{Active: true, RotationSpeed: 0.01}, 0},
		{"just above threshold", oneParticle, 1},
		{"moderate circle", gesture.State{Active: true, RotationSpeed: 0.05}, 7},
		{"capped at 30", gesture.State{Active: true, RotationSpeed: 1.0}, 30},
		{"exactly the cap", gesture.State{Active: true, RotationSpeed: 0.2}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.EmissionCount(tt.state); got != tt.want {
				t.Errorf("EmissionCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSimulator_StartsInactive(t *testing.T) {
	s := newTestSimulator(2000)

	if s.Len() != 2000 {
		t.Errorf("Len() = %d, want 2000", s.Len())
	}
	if s.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d, want 0", s.ActiveCount())
	}
	if s.NextSlot() != 0 {
		t.Errorf("NextSlot() = %d, want 0", s.NextSlot())
	}
}

func TestSimulator_Step_EmitsCappedCount(t *testing.T) {
	s := newTestSimulator(2000)

	n := s.Step(gesture.State{Active: true, IsOpen: true, RotationSpeed: 1.0}, 1.0)

	if n != 30 {
		t.Errorf("Step() emitted %d, want 30", n)
	}
	if s.ActiveCount() != 30 {
		t.Errorf("ActiveCount() = %d, want 30", s.ActiveCount())
	}
	if s.Cursor() != 30 {
		t.Errorf("Cursor() = %d, want 30", s.Cursor())
	}
}

func TestSimulator_RingAdvancesAndWraps(t *testing.T) {
	const n = 16
	s := newTestSimulator(n)

	for k := 0; k < n; k++ {
		if got := s.NextSlot(); got != k {
			t.Fatalf("before write %d: NextSlot() = %d, want %d", k, got, k)
		}
		s.Step(oneParticle, 1.0)
		if s.Particles()[k].Life != 1.0 {
			t.Fatalf("slot %d life = %f after write, want 1", k, s.Particles()[k].Life)
		}
	}

	if got := s.NextSlot(); got != 0 {
		t.Errorf("after %d writes NextSlot() = %d, want 0", n, got)
	}

	s.Step(oneParticle, 1.0)
	if s.Particles()[0].Life != 1.0 {
		t.Error("wraparound write should land in slot 0")
	}
	if s.NextSlot() != 1 {
		t.Errorf("NextSlot() = %d after wraparound write, want 1", s.NextSlot())
	}
}

func TestSimulator_DecayClampsAtZero(t *testing.T) {
	s := newTestSimulator(8)
	s.Step(oneParticle, 1.0)

	still := gesture.State{Active: true, IsOpen: true}
	s.Step(still, 1.0)
	if got := s.Particles()[0].Life; math.Abs(got-0.988) > epsilon {
		t.Errorf("life after one decay = %f, want 0.988", got)
	}

	for i := 0; i < 100; i++ {
		s.Step(still, 1.0)
	}
	if got := s.Particles()[0].Life; got != 0 {
		t.Errorf("life after long decay = %f, want 0", got)
	}
	if s.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d, want 0", s.ActiveCount())
	}
}

func TestSimulator_LifeMonotonicAbsentWrites(t *testing.T) {
	s := newTestSimulator(64)
	rng := rand.New(rand.NewPCG(7, 11))

	prev := make([]float64, s.Len())
	for frame := 0; frame < 500; frame++ {
		state := gesture.State{
			Active:        rng.IntN(4) != 0,
			IsOpen:        rng.IntN(2) == 0,
			RotationSpeed: rng.Float64() * 0.1,
		}

		before := s.Cursor()
		s.Step(state, 0.6+rng.Float64()*0.4)
		written := map[int]bool{}
		for c := before; c < s.Cursor(); c++ {
			written[c%s.Len()] = true
		}

		for i, p := range s.Particles() {
			if p.Life < 0 || p.Life > 1 {
				t.Fatalf("frame %d slot %d: life %f outside [0,1]", frame, i, p.Life)
			}
			if !written[i] && p.Life > prev[i] {
				t.Fatalf("frame %d slot %d: life rose %f -> %f without a write", frame, i, prev[i], p.Life)
			}
			prev[i] = p.Life
		}
	}
}

func TestSimulator_EmissionGeometry(t *testing.T) {
	s := newTestSimulator(10)
	shape := scene.DefaultSilhouette()

	s.Step(oneParticle, 0.5)
	p := s.Particles()[0]

	theta, height := 0.18, 0.06
	r := shape.RadiusAt(height) + 0.2
	want := scene.Vec3{
		X: math.Cos(theta) * r * 0.5,
		Y: (height - 4) * 0.5,
		Z: math.Sin(theta) * r * 0.5,
	}
	if math.Abs(p.Position.X-want.X) > epsilon || math.Abs(p.Position.Y-want.Y) > epsilon || math.Abs(p.Position.Z-want.Z) > epsilon {
		t.Errorf("position = %+v, want %+v", p.Position, want)
	}
}

func TestSimulator_HelixHeightWraps(t *testing.T) {
	s := newTestSimulator(2000)
	burst := gesture.State{Active: true, IsOpen: true, RotationSpeed: 1.0}

	// 30 per frame * 20 frames * 0.06 = 36 units, several trips up the cone.
	for i := 0; i < 20; i++ {
		s.Step(burst, 1.0)
	}

	for i, p := range s.Particles() {
		if p.Life == 0 {
			continue
		}
		if p.Position.Y < -4-epsilon || p.Position.Y >= 4 {
			t.Fatalf("slot %d y = %f outside tree height", i, p.Position.Y)
		}
	}
}

func TestSimulator_ColorFamilies(t *testing.T) {
	open := newTestSimulator(4)
	open.Step(oneParticle, 1.0)

	pinch := newTestSimulator(4)
	pinch.Step(gesture.State{Active: true, IsPinching: true, RotationSpeed: 0.011}, 1.0)

	wantOpen := scene.HSL(0.18*0.05, 0.9, 0.6)
	wantPinch := scene.HSL(0.18*0.05+0.6, 0.9, 0.6)

	if got := open.Particles()[0].Color; !sameColor(got, wantOpen) {
		t.Errorf("open color = %+v, want %+v", got, wantOpen)
	}
	if got := pinch.Particles()[0].Color; !sameColor(got, wantPinch) {
		t.Errorf("pinch color = %+v, want %+v", got, wantPinch)
	}
	if open.Particles()[0].Color == pinch.Particles()[0].Color {
		t.Error("open and pinch trails should differ in color")
	}
}

func sameColor(a, b scene.RGB) bool {
	return math.Abs(a.R-b.R) < 1e-6 && math.Abs(a.G-b.G) < 1e-6 && math.Abs(a.B-b.B) < 1e-6
}

func TestSimulator_SizeAppliesAtEmissionOnly(t *testing.T) {
	s := newTestSimulator(4)
	s.Step(oneParticle, 1.0)
	first := s.Particles()[0].Position

	s.Step(gesture.State{Active: true, IsOpen: true}, 0.1)
	if s.Particles()[0].Position != first {
		t.Error("existing particle moved when size changed")
	}
}
