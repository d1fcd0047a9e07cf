package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/ayusman/glimmer/internal/app"
	"github.com/ayusman/glimmer/internal/chime"
	"github.com/ayusman/glimmer/internal/gesture"
	"github.com/ayusman/glimmer/internal/hook"
	"github.com/ayusman/glimmer/internal/render"
	"github.com/ayusman/glimmer/internal/server"
	"github.com/ayusman/glimmer/internal/store"
	"github.com/ayusman/glimmer/internal/tray"
	"github.com/ayusman/glimmer/internal/tuning"
)

func main() {
	var (
		cameraID  = flag.Int("camera", 0, "camera device id")
		addr      = flag.String("addr", ":8080", "dashboard listen address")
		dataDir   = flag.String("data", "", "data directory (default ~/.glimmer)")
		webDir    = flag.String("web", "", "static dashboard directory")
		seed      = flag.Uint64("seed", 0, "static field seed, 0 for random")
		withAudio = flag.Bool("audio", true, "ring chimes while circling")
		withTray  = flag.Bool("tray", true, "show the system tray menu")
		ask       = flag.Bool("ask", true, "ask before opening the camera")
	)
	flag.Parse()

	fmt.Println("Glimmer - Gesture Christmas Tree")

	dir, err := resolveDataDir(*dataDir)
	if err != nil {
		log.Fatalf("Failed to resolve data directory: %v", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dir, "glimmer.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	cfg := app.DefaultConfig()
	cfg.Camera.DeviceID = *cameraID
	cfg.Seed = *seed
	if _, err := tuning.Apply(&cfg, st.Settings()); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	a := app.New(cfg)
	if !*ask {
		a.SetPermissionGate(app.AllowGate{})
	}

	rec, err := app.NewRecorder(st.Sessions(), cfg.Visual.RotatingThreshold)
	if err != nil {
		log.Printf("Session recording disabled: %v", err)
	} else {
		a.AddNotifier(rec)
	}

	hub := server.NewHub()
	a.AddNotifier(hub)

	hooks := hook.NewManager(filepath.Join(dir, "hooks"))
	if err := hooks.Discover(); err != nil {
		log.Printf("Failed to load hooks: %v", err)
	} else if n := len(hooks.List()); n > 0 {
		log.Printf("Loaded %d hooks from %s", n, hooks.Dir())
	}
	dispatcher := hook.NewDispatcher(hooks, hook.NewExecutor(5*time.Second), gesture.MagicSpeed)
	defer dispatcher.Close()
	a.AddNotifier(dispatcher)

	if *withAudio {
		bellCfg := chime.DefaultConfig()
		synth := chime.NewSynth(bellCfg.SampleRate, bellCfg.Volume)
		if err := chime.Play(synth); err != nil {
			log.Printf("Audio disabled: %v", err)
		} else {
			a.AddNotifier(chime.NewBell(bellCfg, synth))
			defer chime.Close()
		}
	}

	srv := server.New(server.Config{
		StaticDir: *webDir,
		Store:     st,
		State:     a,
		Preview:   a.Preview(),
		Hub:       hub,
		Hooks:     hooks,
	})
	httpSrv := srv.HTTPServer(*addr)
	go func() {
		fmt.Printf("Dashboard on %s\n", *addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server failed: %v", err)
		}
	}()

	if *withTray {
		t := tray.New()
		t.OnToggle(a.SetEnabled)
		t.OnDashboard(func() {
			msg := fmt.Sprintf("Dashboard: http://localhost%s", *addr)
			if err := zenity.Info(msg, zenity.Title("Glimmer")); err != nil && !errors.Is(err, zenity.ErrCanceled) {
				log.Printf("Dashboard dialog failed: %v", err)
			}
		})
		t.OnQuit(a.Stop)
		a.AddNotifier(t)
		t.Register()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		a.Stop()
	}()

	game := render.NewGame(a, render.DefaultStyle())
	go func() {
		if err := a.Start(ctx); err != nil {
			log.Printf("Camera not started: %v", err)
			switch {
			case errors.Is(err, app.ErrPermissionDenied):
				game.SetWaiting("Camera access declined. Restart to try again.")
			case errors.Is(err, context.Canceled), errors.Is(err, app.ErrStopped):
			default:
				game.SetWaiting("Camera unavailable.")
				app.ShowError(err)
			}
		}
	}()

	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("Glimmer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("Render loop failed: %v", err)
	}

	a.Stop()
	if rec != nil {
		if err := rec.Finish(); err != nil {
			log.Printf("Failed to save session: %v", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}

// resolveDataDir returns dir, or ~/.glimmer when dir is empty.
func resolveDataDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(home, ".glimmer"), nil
}
