package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// ErrNoMoreFrames is returned by a non-looping MockCamera after its last frame.
var ErrNoMoreFrames = errors.New("no more frames")

// MockCamera serves canned frames. With no frames it serves blank ones of the
// configured size, which is enough to drive the detection loop with a
// MockDetector.
type MockCamera struct {
	mu      sync.Mutex
	frames  []*gocv.Mat
	loop    bool
	index   int
	width   int
	height  int
	open    bool
	openErr error
	fps     int
	reads   int
}

// NewMockCamera plays frames in order, wrapping when loop is set.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	cfg := DefaultConfig()
	return &MockCamera{
		frames: frames,
		loop:   loop,
		width:  cfg.Width,
		height: cfg.Height,
		fps:    cfg.FPS,
	}
}

// NewBlankCamera serves endless black frames of the given size.
func NewBlankCamera(width, height int) *MockCamera {
	c := NewMockCamera(nil, true)
	c.width, c.height = width, height
	return c
}

// FailOpen makes the next Open return err.
func (c *MockCamera) FailOpen(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openErr = err
}

func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.openErr != nil {
		return c.openErr
	}
	c.open = true
	c.index = 0
	return nil
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return nil
}

func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrCameraNotOpen
	}
	c.reads++

	if len(c.frames) == 0 {
		blank := gocv.NewMatWithSize(c.height, c.width, gocv.MatTypeCV8UC3)
		return &blank, nil
	}

	if c.index >= len(c.frames) {
		if !c.loop {
			return nil, ErrNoMoreFrames
		}
		c.index = 0
	}
	frame := c.frames[c.index].Clone()
	c.index++
	return &frame, nil
}

func (c *MockCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = fps
}

func (c *MockCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Reads returns how many frames have been requested while open.
func (c *MockCamera) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}
