package detector

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point3D
		want float64
	}{
		{"same point", Point3D{1, 2, 3}, Point3D{1, 2, 3}, 0},
		{"planar 3-4-5", Point3D{0, 0, 0}, Point3D{3, 4, 0}, 5},
		{"uses depth", Point3D{0, 0, 0}, Point3D{0, 0, 2}, 2},
		{"symmetric", Point3D{3, 4, 0}, Point3D{0, 0, 0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); math.Abs(got-tt.want) > epsilon {
				t.Errorf("Distance() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestHandLandmarks_PinchDistance(t *testing.T) {
	t.Run("open palm is wide", func(t *testing.T) {
		hand := OpenPalmLandmarks()
		if d := hand.PinchDistance(); d < 0.2 {
			t.Errorf("open palm pinch distance = %f, want >= 0.2", d)
		}
	})

	t.Run("pinch is tight", func(t *testing.T) {
		hand := PinchLandmarks()
		if d := hand.PinchDistance(); d >= 0.07 {
			t.Errorf("pinch distance = %f, want < 0.07", d)
		}
	})

	t.Run("accessors read canonical indices", func(t *testing.T) {
		hand := OpenPalmLandmarks()
		if hand.Wrist() != hand.Points[0] {
			t.Error("Wrist() should return landmark 0")
		}
		if hand.ThumbTip() != hand.Points[4] {
			t.Error("ThumbTip() should return landmark 4")
		}
		if hand.IndexTip() != hand.Points[8] {
			t.Error("IndexTip() should return landmark 8")
		}
	})
}

func TestFirst(t *testing.T) {
	if First(nil) != nil {
		t.Error("First(nil) should be nil")
	}

	hands := []HandLandmarks{PinchLandmarks(), OpenPalmLandmarks()}
	first := First(hands)
	if first == nil {
		t.Fatal("First() returned nil for non-empty slice")
	}
	if first.PinchDistance() >= 0.07 {
		t.Error("First() should return the first hand only")
	}
}

func TestHandPointing(t *testing.T) {
	center := Point3D{X: 0.5, Y: 0.5}

	t.Run("places index tip on the circle", func(t *testing.T) {
		h := HandPointing(OpenPalmLandmarks(), center, math.Pi/2, 0.2)
		tip := h.IndexTip()
		if math.Abs(tip.X-0.5) > epsilon || math.Abs(tip.Y-0.7) > epsilon {
			t.Errorf("index tip = (%f, %f), want (0.5, 0.7)", tip.X, tip.Y)
		}
	})

	t.Run("preserves pinch distance", func(t *testing.T) {
		base := PinchLandmarks()
		h := HandPointing(base, center, 1.0, 0.25)
		if math.Abs(h.PinchDistance()-base.PinchDistance()) > 1e-12 {
			t.Errorf("pinch distance changed: %f -> %f", base.PinchDistance(), h.PinchDistance())
		}
	})

	t.Run("leaves wrist alone", func(t *testing.T) {
		base := OpenPalmLandmarks()
		h := HandPointing(base, center, 2.0, 0.1)
		if h.Wrist() != base.Wrist() {
			t.Error("wrist should not move")
		}
	})
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{OpenPalmLandmarks()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Errorf("expected 1 hand, got %d", len(hands))
		}
	})

	t.Run("walks a sequence and repeats the tail", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetSequence([][]HandLandmarks{
			nil,
			{OpenPalmLandmarks()},
			{PinchLandmarks()},
		})

		wantCounts := []int{0, 1, 1, 1}
		for i, want := range wantCounts {
			hands, _ := mock.Detect(nil)
			if len(hands) != want {
				t.Errorf("call %d: got %d hands, want %d", i, len(hands), want)
			}
		}
		if mock.Calls() != len(wantCounts) {
			t.Errorf("Calls() = %d, want %d", mock.Calls(), len(wantCounts))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("Close returns nil", func(t *testing.T) {
		if err := NewMockDetector().Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxHands != 1 {
		t.Errorf("MaxHands = %d, want 1", cfg.MaxHands)
	}
	if cfg.MinConfidence != 0.5 || cfg.MinTrackingConf != 0.5 {
		t.Errorf("confidences = %f/%f, want 0.5/0.5", cfg.MinConfidence, cfg.MinTrackingConf)
	}
}

func TestServiceArgs(t *testing.T) {
	args := serviceArgs(DefaultConfig())
	want := []string{
		"--max-hands", "1",
		"--model-complexity", "1",
		"--min-detection-confidence", "0.5",
		"--min-tracking-confidence", "0.5",
	}

	if len(args) != len(want) {
		t.Fatalf("got %d args, want %d", len(args), len(want))
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestDecodeResponse(t *testing.T) {
	t.Run("no hands", func(t *testing.T) {
		hands, err := decodeResponse([]byte(`{"hands": []}`), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hands) != 0 {
			t.Errorf("got %d hands, want 0", len(hands))
		}
	})

	t.Run("caps to max hands", func(t *testing.T) {
		line := `{"hands": [
			{"points": [{"x": 0.1, "y": 0.2, "z": 0.3}], "handedness": "Left", "score": 0.9},
			{"points": [{"x": 0.4, "y": 0.5, "z": 0.6}], "handedness": "Right", "score": 0.8}
		]}`
		hands, err := decodeResponse([]byte(line), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("got %d hands, want 1", len(hands))
		}
		if hands[0].Handedness != "Left" {
			t.Errorf("handedness = %s, want Left", hands[0].Handedness)
		}
		if hands[0].Points[Wrist].Y != 0.2 {
			t.Errorf("wrist Y = %f, want 0.2", hands[0].Points[Wrist].Y)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := decodeResponse([]byte(`{not json`), 1); err == nil {
			t.Error("expected error for malformed response")
		}
	})
}
