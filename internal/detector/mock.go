package detector

import (
	"math"
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It returns either a fixed result or, when a sequence is set, one entry of
// the sequence per call (the last entry repeats once exhausted).
type MockDetector struct {
	mu       sync.Mutex
	hands    []HandLandmarks
	sequence [][]HandLandmarks
	calls    int
	err      error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
	m.sequence = nil
}

// SetSequence makes Detect walk through results, one per call.
func (m *MockDetector) SetSequence(results [][]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence = results
	m.calls = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls reports how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.calls
	m.calls++

	if m.err != nil {
		return nil, m.err
	}
	if len(m.sequence) > 0 {
		if idx >= len(m.sequence) {
			idx = len(m.sequence) - 1
		}
		return m.sequence[idx], nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// OpenPalmLandmarks returns a preset HandLandmarks representing an open palm gesture.
// All fingers are extended; thumb and index tips are far apart.
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return landmarks
}

// PinchLandmarks returns a preset HandLandmarks with the thumb tip touching the
// index fingertip (an "OK" sign).
func PinchLandmarks() HandLandmarks {
	landmarks := OpenPalmLandmarks()

	landmarks.Points[ThumbIP] = Point3D{X: 0.62, Y: 0.50, Z: 0.01}
	landmarks.Points[ThumbTip] = Point3D{X: 0.59, Y: 0.43, Z: 0.0}

	landmarks.Points[IndexPIP] = Point3D{X: 0.58, Y: 0.52, Z: -0.01}
	landmarks.Points[IndexDIP] = Point3D{X: 0.60, Y: 0.46, Z: -0.01}
	landmarks.Points[IndexTip] = Point3D{X: 0.60, Y: 0.42, Z: 0.0}

	return landmarks
}

// HandPointing returns base with its index fingertip moved to lie at the
// given angle (radians) and radius around center, in the image plane. The
// thumb tip keeps its offset from the index tip so the pinch state of base is
// preserved.
func HandPointing(base HandLandmarks, center Point3D, angle, radius float64) HandLandmarks {
	h := base
	offset := Point3D{
		X: base.Points[ThumbTip].X - base.Points[IndexTip].X,
		Y: base.Points[ThumbTip].Y - base.Points[IndexTip].Y,
		Z: base.Points[ThumbTip].Z - base.Points[IndexTip].Z,
	}

	tip := Point3D{
		X: center.X + math.Cos(angle)*radius,
		Y: center.Y + math.Sin(angle)*radius,
		Z: base.Points[IndexTip].Z,
	}
	h.Points[IndexTip] = tip
	h.Points[ThumbTip] = Point3D{X: tip.X + offset.X, Y: tip.Y + offset.Y, Z: tip.Z + offset.Z}
	return h
}
