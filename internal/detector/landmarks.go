// Package detector provides hand detection interfaces and types for gesture tracking.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a landmark position. X and Y are normalized to the frame
// ([0,1]); Z is relative depth with the wrist as reference.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Distance returns the Euclidean distance between two landmarks.
func Distance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Wrist returns landmark 0.
func (h *HandLandmarks) Wrist() Point3D { return h.Points[Wrist] }

// ThumbTip returns landmark 4.
func (h *HandLandmarks) ThumbTip() Point3D { return h.Points[ThumbTip] }

// IndexTip returns landmark 8.
func (h *HandLandmarks) IndexTip() Point3D { return h.Points[IndexTip] }

// PinchDistance is the 3D distance between the thumb tip and the index fingertip.
func (h *HandLandmarks) PinchDistance() float64 {
	return Distance(h.ThumbTip(), h.IndexTip())
}

// First returns the first hand of a detection result, or nil if there is none.
// Only one hand drives the scene; any extra hands are ignored.
func First(hands []HandLandmarks) *HandLandmarks {
	if len(hands) == 0 {
		return nil
	}
	return &hands[0]
}
