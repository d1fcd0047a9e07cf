// Package render draws frames from the App with Ebitengine.
package render

import (
	"image/color"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/ayusman/glimmer/internal/gesture"
	"github.com/ayusman/glimmer/internal/scene"
)

// Stepper produces one frame per display refresh. *app.App satisfies it.
type Stepper interface {
	Step(now time.Time) (*scene.Frame, bool)
	Latest() gesture.State
	Stopped() bool
}

// Style holds point sizes and colors.
type Style struct {
	TreePoint  float64 // world size of a static particle
	TrailPoint float64 // world size of a trail particle at full life
	StarRadius float64
	StarColor  scene.RGB
	Background color.RGBA
	FadeIn     float32 // seconds
}

// DefaultStyle matches the tuned look of the tree.
func DefaultStyle() Style {
	return Style{
		TreePoint:  0.1,
		TrailPoint: 0.25,
		StarRadius: 0.45,
		StarColor:  scene.RGB{R: 1, G: 0.84, B: 0.3},
		Background: color.RGBA{R: 3, G: 3, B: 12, A: 255},
		FadeIn:     1.5,
	}
}

// Game implements ebiten.Game.
type Game struct {
	app     Stepper
	style   Style
	camera  Camera
	batch   *pointBatch
	dot     *ebiten.Image
	frame   *scene.Frame
	fade    *gween.Tween
	alpha   float32
	hud     bool
	waiting atomic.Pointer[string]
}

// NewGame creates a Game drawing frames from app.
func NewGame(app Stepper, style Style) *Game {
	g := &Game{
		app:    app,
		style:  style,
		camera: DefaultCamera(1280, 720),
		batch:  newPointBatch(8192, dotSize),
		hud:    true,
	}
	g.SetWaiting("Waiting for camera...")
	return g
}

// SetWaiting changes the message shown before the first frame. It may be
// called from any goroutine.
func (g *Game) SetWaiting(msg string) {
	g.waiting.Store(&msg)
}

// Update advances the App by one frame. It ends the game once the App stops
// or the user presses Escape.
func (g *Game) Update() error {
	if g.app.Stopped() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	g.advance(time.Now(), 1/float32(ebiten.TPS()))
	return nil
}

func (g *Game) advance(now time.Time, dt float32) {
	frame, ok := g.app.Step(now)
	if !ok {
		return
	}
	g.frame = frame

	if g.fade == nil {
		g.fade = gween.New(0, 1, g.style.FadeIn, ease.OutCubic)
	}
	g.alpha, _ = g.fade.Update(dt)
}

// Draw renders the last frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.style.Background)

	if g.frame == nil {
		ebitenutil.DebugPrintAt(screen, *g.waiting.Load(), 12, 12)
		return
	}
	if g.dot == nil {
		g.dot = newDot()
	}

	g.queuePoints(g.frame)
	g.batch.flush(screen, g.dot)
	g.drawStar(screen, g.frame)

	if g.hud {
		g.drawHUD(screen)
	}
}

// queuePoints adds the tree, the trail and the star glow to the batch.
func (g *Game) queuePoints(f *scene.Frame) {
	fade := float64(g.alpha)
	dst := g.batch

	for i, p := range f.TreePositions {
		w := p.RotateY(f.TreeRotation).Scale(f.Scale)
		s, ok := g.camera.Project(w)
		if !ok {
			continue
		}
		dst.add(s.X, s.Y, PointSize(g.style.TreePoint, s.PxPerUnit), f.TreeColors[i].Clamped(), 0.9*fade)
		if dst.full() {
			return
		}
	}

	for _, p := range f.Trail {
		if p.Life <= 0 {
			continue
		}
		s, ok := g.camera.Project(p.Position)
		if !ok {
			continue
		}
		dst.add(s.X, s.Y, PointSize(g.style.TrailPoint*p.Life, s.PxPerUnit), p.Color.Clamped(), p.Life*fade)
		if dst.full() {
			return
		}
	}

	star, ok := g.camera.Project(scene.Vec3{Y: f.StarY})
	if !ok {
		return
	}
	// Halo grows with the light intensity; the core brightens with emissive.
	halo := PointSize((g.style.StarRadius*3+0.4*f.LightIntensity)*f.Scale, star.PxPerUnit)
	dst.add(star.X, star.Y, halo, g.style.StarColor, math.Min(1, 0.15+0.1*f.LightIntensity)*fade)
	core := PointSize(g.style.StarRadius*2*f.Scale, star.PxPerUnit)
	dst.add(star.X, star.Y, core, scaleRGB(g.style.StarColor, f.StarEmissive).Clamped(), fade)
}

// drawStar strokes a five-pointed star spinning about the vertical axis.
func (g *Game) drawStar(screen *ebiten.Image, f *scene.Frame) {
	pts := starOutline(g.style.StarRadius*f.Scale, f.StarRotation)
	c := scaleRGB(g.style.StarColor, f.StarEmissive).Clamped()
	clr := color.RGBA{
		R: uint8(c.R * 255 * float64(g.alpha)),
		G: uint8(c.G * 255 * float64(g.alpha)),
		B: uint8(c.B * 255 * float64(g.alpha)),
		A: uint8(255 * g.alpha),
	}

	for i := range pts {
		a := pts[i].Add(scene.Vec3{Y: f.StarY})
		b := pts[(i+1)%len(pts)].Add(scene.Vec3{Y: f.StarY})
		pa, okA := g.camera.Project(a)
		pb, okB := g.camera.Project(b)
		if !okA || !okB {
			continue
		}
		vector.StrokeLine(screen, float32(pa.X), float32(pa.Y), float32(pb.X), float32(pb.Y), 1.5, clr, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.app.Latest()
	ebitenutil.DebugPrintAt(screen, gesture.Describe(st), 12, 12)
	ebitenutil.DebugPrintAt(screen, gesture.Telemetry(st), 12, 32)
	ebitenutil.DebugPrintAt(screen, "H: toggle HUD   Esc: quit", 12, int(g.camera.Height)-24)
}

// Layout tracks the window size so the projection stays centered.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.camera.Width = float64(outsideWidth)
	g.camera.Height = float64(outsideHeight)
	return outsideWidth, outsideHeight
}

// starOutline returns the ten vertices of a star of outer radius r in the XY
// plane, rotated by spin about Y.
func starOutline(r, spin float64) []scene.Vec3 {
	pts := make([]scene.Vec3, 10)
	for i := range pts {
		rad := r
		if i%2 == 1 {
			rad = r * 0.45
		}
		a := float64(i) * math.Pi / 5
		pts[i] = scene.Vec3{X: rad * math.Sin(a), Y: rad * math.Cos(a)}.RotateY(spin)
	}
	return pts
}

func scaleRGB(c scene.RGB, k float64) scene.RGB {
	return scene.RGB{R: c.R * k, G: c.G * k, B: c.B * k}
}
