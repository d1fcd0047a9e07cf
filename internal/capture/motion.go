package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// MotionConfig tunes frame differencing.
type MotionConfig struct {
	// Threshold is the percentage of changed pixels that counts as motion.
	Threshold float64
	// BlurSize is the odd Gaussian kernel size applied before differencing.
	BlurSize int
	// PixelDelta is the per-pixel intensity change that marks a pixel as changed.
	PixelDelta float32
}

// DefaultMotionConfig flags motion when 1% of pixels change by 25 levels.
func DefaultMotionConfig() MotionConfig {
	return MotionConfig{Threshold: 1.0, BlurSize: 21, PixelDelta: 25}
}

// MotionDetector compares each frame with the previous one.
type MotionDetector struct {
	mu      sync.Mutex
	config  MotionConfig
	prev    gocv.Mat
	hasPrev bool
	closed  bool
}

// NewMotionDetector returns a detector with no baseline frame.
func NewMotionDetector(config MotionConfig) *MotionDetector {
	if config.BlurSize <= 0 || config.BlurSize%2 == 0 {
		config.BlurSize = DefaultMotionConfig().BlurSize
	}
	return &MotionDetector{config: config, prev: gocv.NewMat()}
}

// Detect reports whether frame differs from the last one and the percentage
// of changed pixels. The first frame only sets the baseline.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := m.config.BlurSize
	gocv.GaussianBlur(gray, &blurred, image.Point{X: k, Y: k}, 0, 0, gocv.BorderDefault)

	if !m.hasPrev || m.prev.Rows() != blurred.Rows() || m.prev.Cols() != blurred.Cols() {
		blurred.CopyTo(&m.prev)
		m.hasPrev = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prev, &diff)
	gocv.Threshold(diff, &diff, m.config.PixelDelta, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(diff)) / float64(diff.Rows()*diff.Cols()) * 100
	blurred.CopyTo(&m.prev)

	return changed > m.config.Threshold, changed
}

// Reset drops the baseline so the next frame starts fresh.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hasPrev = false
}

// Close releases the baseline Mat. Later Detect calls report no motion.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.prev.Close()
	m.hasPrev = false
	m.closed = true
}
