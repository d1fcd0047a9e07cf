// Package tray provides the system tray menu for Glimmer: a live gesture
// readout, a pause toggle and quit.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/glimmer/internal/gesture"
)

const (
	labelEnabled  = "● Detecting"
	labelDisabled = "○ Paused"
)

// Tray represents the system tray menu.
type Tray struct {
	onToggle    func(enabled bool)
	onDashboard func()
	onQuit      func()
	enabled     bool
	status      string
	mode        gesture.Mode
	mu          sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuStatus *systray.MenuItem
}

// New creates a new Tray with detection enabled.
func New() *Tray {
	return &Tray{
		enabled: true,
		status:  gesture.Describe(gesture.NeutralState()),
		mode:    gesture.ModeMerry,
	}
}

// OnToggle sets the callback invoked when detection is paused or resumed.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnDashboard sets the callback invoked by the dashboard menu item.
func (t *Tray) OnDashboard(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDashboard = fn
}

// OnQuit sets the callback invoked when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Register attaches the tray to a main loop owned by someone else, such as
// the render window. It does not block.
func (t *Tray) Register() {
	systray.Register(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetTitle("Glimmer")
	systray.SetTooltip("Glimmer gesture tree")

	t.mu.Lock()
	t.menuStatus = systray.AddMenuItem(t.status, "Current gesture")
	t.menuStatus.Disable()
	systray.AddSeparator()

	t.menuToggle = systray.AddMenuItem(toggleLabel(t.enabled), "Pause or resume hand detection")
	t.mu.Unlock()

	menuDashboard := systray.AddMenuItem("Open Dashboard...", "Show the dashboard address")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Glimmer")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuDashboard.ClickedCh:
				t.handleDashboard()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

// handleToggle flips the enabled state and notifies the callback outside the lock.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleLabel(enabled))
	}

	callback := t.onToggle
	t.mu.Unlock()

	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleDashboard() {
	t.mu.RLock()
	callback := t.onDashboard
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// Notify updates the status readout. Menu titles only change when the
// readout text does, so it is cheap to call on every detection tick.
func (t *Tray) Notify(s gesture.State) {
	status := gesture.Describe(s)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = s.Mode()
	if status == t.status {
		return
	}
	t.status = status
	if t.menuStatus != nil {
		t.menuStatus.SetTitle(status)
	}
}

// Status returns the readout currently shown in the menu.
func (t *Tray) Status() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Mode returns the color family of the last notified state.
func (t *Tray) Mode() gesture.Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

func toggleLabel(enabled bool) string {
	if enabled {
		return labelEnabled
	}
	return labelDisabled
}
