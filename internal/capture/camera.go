// Package capture reads webcam frames with GoCV and decides how fast to read them.
package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// ErrCameraNotOpen is returned when reading from a camera that is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// Config describes the capture device.
type Config struct {
	DeviceID int
	Width    int
	Height   int
	// FPS is the rate while the hand is moving; IdleFPS applies after IdleAfter
	// without motion.
	FPS     int
	IdleFPS int
}

// DefaultConfig returns a 640x480 capture at 30 FPS, dropping to 10 when idle.
func DefaultConfig() Config {
	return Config{
		DeviceID: 0,
		Width:    640,
		Height:   480,
		FPS:      30,
		IdleFPS:  10,
	}
}

// Camera is a frame source. MockCamera implements it for tests.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

type webcam struct {
	config  Config
	capture *gocv.VideoCapture
	mu      sync.Mutex
	fps     int
}

// NewCamera returns a Camera for config.DeviceID. Nothing is opened until Open.
func NewCamera(config Config) Camera {
	if config.FPS <= 0 {
		config.FPS = DefaultConfig().FPS
	}
	return &webcam{config: config, fps: config.FPS}
}

func (c *webcam) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture != nil {
		return nil
	}

	vc, err := gocv.OpenVideoCapture(c.config.DeviceID)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", c.config.DeviceID, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return fmt.Errorf("open camera %d: device unavailable", c.config.DeviceID)
	}

	if c.config.Width > 0 && c.config.Height > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(c.config.Width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(c.config.Height))
	}
	vc.Set(gocv.VideoCaptureFPS, float64(c.fps))

	c.capture = vc
	return nil
}

func (c *webcam) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil
	}
	err := c.capture.Close()
	c.capture = nil
	return err
}

// ReadFrame returns the next frame. The caller must Close the Mat.
func (c *webcam) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, errors.New("read frame: no data from camera")
	}
	return &mat, nil
}

// SetFPS changes the requested device rate. Non-positive values are ignored.
func (c *webcam) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fps = fps
	if c.capture != nil {
		c.capture.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

func (c *webcam) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *webcam) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capture != nil
}
