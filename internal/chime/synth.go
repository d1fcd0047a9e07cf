// Package chime rings bell tones when the hand starts circling.
package chime

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
)

// Synth is an endless beep.Streamer that mixes decaying sine voices. It
// streams silence when no voice is sounding.
type Synth struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	voices []voice
}

type voice struct {
	freq   float64
	delay  int // samples before the voice starts
	age    int
	length int
	decay  float64 // samples per e-fold
	attack int
}

// NewSynth returns a silent synth at rate with master volume in [0,1].
func NewSynth(rate beep.SampleRate, volume float64) *Synth {
	return &Synth{rate: rate, volume: volume}
}

// Ring queues one voice per frequency, each starting stagger after the
// previous, ringing for length.
func (s *Synth) Ring(freqs []float64, stagger, length time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.rate.N(length)
	for i, f := range freqs {
		s.voices = append(s.voices, voice{
			freq:   f,
			delay:  s.rate.N(stagger * time.Duration(i)),
			length: n,
			decay:  float64(n) / 5,
			attack: s.rate.N(5 * time.Millisecond),
		})
	}
}

// Sounding returns the number of voices not yet finished.
func (s *Synth) Sounding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.voices)
}

// Stream fills samples with the mix and always reports a full buffer.
func (s *Synth) Stream(samples [][2]float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rate := float64(s.rate)
	for i := range samples {
		var mix float64
		for j := range s.voices {
			v := &s.voices[j]
			if v.delay > 0 {
				v.delay--
				continue
			}
			if v.age >= v.length {
				continue
			}
			env := math.Exp(-float64(v.age) / v.decay)
			if v.age < v.attack {
				env *= float64(v.age) / float64(v.attack)
			}
			mix += env * math.Sin(2*math.Pi*v.freq*float64(v.age)/rate)
			v.age++
		}

		out := math.Tanh(mix * s.volume)
		samples[i][0] = out
		samples[i][1] = out
	}

	live := s.voices[:0]
	for _, v := range s.voices {
		if v.age < v.length {
			live = append(live, v)
		}
	}
	s.voices = live

	return len(samples), true
}

// Err always returns nil.
func (s *Synth) Err() error {
	return nil
}
