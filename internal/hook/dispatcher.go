package hook

import (
	"context"
	"log"
	"sync"

	"github.com/ayusman/glimmer/internal/gesture"
)

const queueSize = 16

type job struct {
	hook *Hook
	req  Request
}

// Dispatcher watches gesture states and runs subscribed hooks on transitions.
// It implements the App's Notifier. Notify never blocks the detection loop:
// hooks run one at a time on a worker goroutine and events are dropped when
// the queue is full.
type Dispatcher struct {
	manager    *Manager
	executor   *Executor
	magicSpeed float64

	mu      sync.Mutex
	prev    gesture.State
	hasPrev bool
	closed  bool
	queue   chan job
	done    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewDispatcher starts a Dispatcher. magicSpeed is the rotation speed that
// counts as circling. Call Close to stop it.
func NewDispatcher(manager *Manager, executor *Executor, magicSpeed float64) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		manager:    manager,
		executor:   executor,
		magicSpeed: magicSpeed,
		queue:      make(chan job, queueSize),
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
	go d.run()
	return d
}

// Notify queues hooks for every transition between the previous state and s.
func (d *Dispatcher) Notify(s gesture.State) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	prev := d.prev
	if !d.hasPrev {
		prev = gesture.NeutralState()
	}
	d.prev = s
	d.hasPrev = true

	for _, ev := range Transitions(prev, s, d.magicSpeed) {
		for _, h := range d.manager.For(ev) {
			j := job{hook: h, req: Request{Event: ev, Mode: s.Mode(), State: s, Config: h.Manifest.Config}}
			select {
			case d.queue <- j:
			default:
				log.Printf("Hook queue full, dropping %s for %s", ev, h.Manifest.Name)
			}
		}
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for j := range d.queue {
		resp, err := d.executor.Execute(d.ctx, j.hook, &j.req)
		switch {
		case err != nil:
			log.Printf("Hook %s failed on %s: %v", j.hook.Manifest.Name, j.req.Event, err)
		case !resp.Success:
			log.Printf("Hook %s reported an error on %s: %s", j.hook.Manifest.Name, j.req.Event, resp.Error)
		}
	}
}

// Close stops accepting events, lets queued hooks finish and waits for the
// worker. It is safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
	d.cancel()
}

// Transitions lists the events between two consecutive states. Mode and
// magic changes only count while a hand is present.
func Transitions(prev, next gesture.State, magicSpeed float64) []Event {
	var events []Event

	switch {
	case !prev.Active && next.Active:
		events = append(events, EventHandFound)
	case prev.Active && !next.Active:
		events = append(events, EventHandLost)
	}

	if prev.Active && next.Active && prev.Mode() != next.Mode() {
		events = append(events, EventModeChanged)
	}

	wasMagic := prev.Active && prev.RotationSpeed > magicSpeed
	isMagic := next.Active && next.RotationSpeed > magicSpeed
	switch {
	case !wasMagic && isMagic:
		events = append(events, EventMagicStarted)
	case wasMagic && !isMagic:
		events = append(events, EventMagicStopped)
	}
	return events
}
