package chime

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/ayusman/glimmer/internal/gesture"
)

// Config tunes the bell.
type Config struct {
	SampleRate beep.SampleRate
	Volume     float64
	// Threshold is the rotation speed that counts as making magic.
	Threshold float64
	// Cooldown is the minimum gap between two chimes.
	Cooldown time.Duration
	Stagger  time.Duration
	Length   time.Duration
	// Merry is played for an open hand, Silent for a pinch.
	Merry  []float64
	Silent []float64
}

// DefaultConfig rings a C major arpeggio for an open hand and a low A minor
// one for a pinch.
func DefaultConfig() Config {
	return Config{
		SampleRate: beep.SampleRate(44100),
		Volume:     0.25,
		Threshold:  gesture.MagicSpeed,
		Cooldown:   1500 * time.Millisecond,
		Stagger:    90 * time.Millisecond,
		Length:     1200 * time.Millisecond,
		Merry:      []float64{523.25, 659.25, 783.99, 1046.5},
		Silent:     []float64{220.0, 261.63, 329.63},
	}
}

// Bell watches gesture states and rings the synth on the rising edge of
// circling motion. It implements the App's Notifier.
type Bell struct {
	mu      sync.Mutex
	config  Config
	synth   *Synth
	magic   bool
	lastAt  time.Time
	rings   int
	nowFunc func() time.Time
}

// NewBell creates a Bell driving synth.
func NewBell(config Config, synth *Synth) *Bell {
	return &Bell{config: config, synth: synth, nowFunc: time.Now}
}

// Notify rings when the hand goes from still to circling, at most once per cooldown.
func (b *Bell) Notify(s gesture.State) {
	b.mu.Lock()
	defer b.mu.Unlock()

	magic := s.Active && s.RotationSpeed > b.config.Threshold
	rising := magic && !b.magic
	b.magic = magic
	if !rising {
		return
	}

	now := b.nowFunc()
	if !b.lastAt.IsZero() && now.Sub(b.lastAt) < b.config.Cooldown {
		return
	}
	b.lastAt = now
	b.rings++

	notes := b.config.Merry
	if s.Mode() == gesture.ModeSilent {
		notes = b.config.Silent
	}
	b.synth.Ring(notes, b.config.Stagger, b.config.Length)
}

// Rings returns how many chimes have played.
func (b *Bell) Rings() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rings
}

// Play opens the default audio device and starts streaming synth.
func Play(synth *Synth) error {
	rate := synth.rate
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(synth)
	return nil
}

// Close stops playback.
func Close() {
	speaker.Clear()
	speaker.Close()
}
