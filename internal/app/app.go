// Package app drives the tree: a detection goroutine turns camera frames into
// gesture state, and Step turns the latest state into a renderable frame once
// per display refresh.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ayusman/glimmer/internal/capture"
	"github.com/ayusman/glimmer/internal/detector"
	"github.com/ayusman/glimmer/internal/gesture"
	"github.com/ayusman/glimmer/internal/scene"
	"github.com/ayusman/glimmer/internal/trail"
	"github.com/ayusman/glimmer/internal/tree"
	"github.com/ayusman/glimmer/internal/visual"
)

var (
	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("already started")
	// ErrStopped is returned by Start after Stop.
	ErrStopped = errors.New("app stopped")
)

// Status is the driver state. The only transition is Idle to Running.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
)

func (s Status) String() string {
	if s == StatusRunning {
		return "running"
	}
	return "idle"
}

// Config gathers the tunables of every stage.
type Config struct {
	Camera    capture.Config
	Motion    capture.MotionConfig
	IdleAfter time.Duration

	Detector detector.Config
	Gesture  gesture.Config
	Visual   visual.Config
	Trail    trail.Config
	Tree     tree.Config

	// StarOffset lifts the star above the tree tip, before scaling.
	StarOffset float64
	// StarSpin multiplies the tree speed for the star's own rotation.
	StarSpin float64

	MirrorPreview bool
	// Seed fixes the static field layout. Zero picks a random layout.
	Seed uint64
}

// DefaultConfig returns the tuned defaults of every stage.
func DefaultConfig() Config {
	return Config{
		Camera:        capture.DefaultConfig(),
		Motion:        capture.DefaultMotionConfig(),
		IdleAfter:     2 * time.Second,
		Detector:      detector.DefaultConfig(),
		Gesture:       gesture.DefaultConfig(),
		Visual:        visual.DefaultConfig(),
		Trail:         trail.DefaultConfig(),
		Tree:          tree.DefaultConfig(),
		StarOffset:    0.3,
		StarSpin:      2,
		MirrorPreview: true,
	}
}

// App owns the detection producer and the per-frame simulation.
type App struct {
	config Config

	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	gate     PermissionGate

	extractor *gesture.Extractor
	latest    *gesture.Latest
	preview   *capture.Preview

	mu        sync.RWMutex
	status    Status
	starting  bool
	stopped   bool
	enabled   bool
	stopCh    chan struct{}
	done      chan struct{}
	notifiers []Notifier

	// Render side, touched only by Step.
	stepMu       sync.Mutex
	controller   *visual.Controller
	trail        *trail.Simulator
	field        *tree.Field
	treeRotation float64
	starRotation float64
	frame        scene.Frame
}

// New wires the default camera and detector. MediaPipe is used when the
// service is available, otherwise a mock detector that never sees a hand.
func New(config Config) *App {
	a := newApp(config, capture.NewCamera(config.Camera))

	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}
	return a
}

// NewWithDevices builds an App around the given camera and detector.
func NewWithDevices(config Config, camera capture.Camera, det detector.Detector) *App {
	a := newApp(config, camera)
	a.detector = det
	return a
}

func newApp(config Config, camera capture.Camera) *App {
	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	shape := config.Tree.Shape

	return &App{
		config:     config,
		camera:     camera,
		motion:     capture.NewMotionDetector(config.Motion),
		gate:       NewDialogGate(),
		extractor:  gesture.NewExtractor(config.Gesture),
		latest:     gesture.NewLatest(),
		preview:    capture.NewPreview(config.MirrorPreview),
		enabled:    true,
		controller: visual.NewController(config.Visual),
		trail:      trail.NewSimulator(config.Trail, shape),
		field:      tree.NewField(config.Tree, rand.New(rand.NewPCG(seed, seed>>1|1))),
	}
}

// SetPermissionGate replaces the start screen. It must be called before Start.
func (a *App) SetPermissionGate(g PermissionGate) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gate = g
}

// Start asks for camera permission, opens the camera and starts detection.
// On any failure the App stays Idle and the error is returned.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	switch {
	case a.stopped:
		a.mu.Unlock()
		return ErrStopped
	case a.status == StatusRunning || a.starting:
		a.mu.Unlock()
		return ErrAlreadyStarted
	}
	a.starting = true
	gate := a.gate
	a.mu.Unlock()

	err := a.open(ctx, gate)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.starting = false

	if err != nil {
		return err
	}
	if a.stopped {
		a.closeCamera()
		return ErrStopped
	}

	a.status = StatusRunning
	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	go a.runPipeline(a.stopCh, a.done)

	log.Println("Detection pipeline started")
	return nil
}

func (a *App) open(ctx context.Context, gate PermissionGate) error {
	if gate != nil {
		if err := gate.Request(ctx); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	a.camera.SetFPS(a.config.Camera.FPS)
	return nil
}

// Stop halts detection and releases the camera and detector. No frames are
// produced afterwards. It is safe to call more than once.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.stopped = true
	stopCh, done := a.stopCh, a.done
	a.stopCh = nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-done
	}

	a.closeCamera()
	a.motion.Close()
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

func (a *App) closeCamera() {
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
}

// Step advances the scene by one display refresh and returns the frame to draw.
// It returns false while Idle and after Stop.
func (a *App) Step(now time.Time) (*scene.Frame, bool) {
	a.mu.RLock()
	live := a.status == StatusRunning && !a.stopped
	a.mu.RUnlock()
	if !live {
		return nil, false
	}

	a.stepMu.Lock()
	defer a.stepMu.Unlock()

	state := a.latest.Load()
	params := a.controller.Step(state)
	rotating := a.controller.IsRotating(state)

	a.trail.Step(state, params.Size)
	nowMs := float64(now.UnixNano()) / float64(time.Millisecond)
	a.field.Colorize(nowMs, state.IsOpen, rotating)

	a.treeRotation += params.Speed
	a.starRotation += params.Speed * a.config.StarSpin

	shape := a.config.Tree.Shape
	a.frame = scene.Frame{
		TreePositions:  a.field.Positions(),
		TreeColors:     a.field.Colors(),
		Trail:          a.trail.Particles(),
		TreeRotation:   a.treeRotation,
		Scale:          params.Size,
		LightIntensity: params.Glow,
		StarRotation:   a.starRotation,
		StarEmissive:   1 + params.Glow,
		StarY:          (shape.Height/2 + a.config.StarOffset) * params.Size,
		Silhouette:     shape,
		TimeMs:         nowMs,
	}
	return &a.frame, true
}

// SetEnabled pauses or resumes detection. While paused the hand reads as absent.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled reports whether detection is running.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Status returns the driver state.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

// Stopped reports whether Stop has been called.
func (a *App) Stopped() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stopped
}

// Latest returns the most recent gesture state.
func (a *App) Latest() gesture.State {
	return a.latest.Load()
}

// Params returns the eased visual parameters after the last Step.
func (a *App) Params() visual.Params {
	a.stepMu.Lock()
	defer a.stepMu.Unlock()
	return a.controller.Current()
}

// ActiveTrail returns the number of live trail particles after the last Step.
func (a *App) ActiveTrail() int {
	a.stepMu.Lock()
	defer a.stepMu.Unlock()
	return a.trail.ActiveCount()
}

// Preview returns the latest camera frame holder.
func (a *App) Preview() *capture.Preview {
	return a.preview
}

// Camera returns the frame source.
func (a *App) Camera() capture.Camera {
	return a.camera
}
