package app

import "github.com/ayusman/glimmer/internal/gesture"

// Notifier receives the gesture state after every detection tick. Notify runs
// on the detection goroutine and must not block.
type Notifier interface {
	Notify(gesture.State)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(gesture.State)

func (f NotifierFunc) Notify(s gesture.State) { f(s) }

// AddNotifier registers n for every subsequent detection tick.
func (a *App) AddNotifier(n Notifier) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notifiers = append(a.notifiers, n)
}

func (a *App) publish(s gesture.State) {
	a.latest.Store(s)

	a.mu.RLock()
	notifiers := a.notifiers
	a.mu.RUnlock()

	for _, n := range notifiers {
		n.Notify(s)
	}
}
