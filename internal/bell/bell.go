// Package bell plays the terminal's audible BEL tone.
package bell

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// toneFreq approximates the pitch of a hardware terminal buzzer.
const toneFreq = 780.0

// Ringer owns the speaker and mixes one short tone per Ring call. An
// uninitialized or failed-to-initialize ringer stays silent, so headless
// environments work without audio hardware.
type Ringer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewRinger returns a silent ringer. Call Initialize to open the speaker.
func NewRinger() *Ringer {
	return &Ringer{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device and starts the mixer.
func (r *Ringer) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(r.mixer)
	r.initialized = true
	return nil
}

// Cleanup silences the ringer. The speaker itself stays open; beep provides
// no close.
func (r *Ringer) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return
	}
	speaker.Lock()
	r.mixer.Clear()
	speaker.Unlock()
	r.initialized = false
}

// Ring plays one bell tone. Safe to call from the terminal's bell hook; a
// silent ringer ignores the call.
func (r *Ringer) Ring() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return
	}
	streamer := beep.Take(sampleRate.N(time.Millisecond*120), newToneGenerator(sampleRate, toneFreq))
	speaker.Lock()
	r.mixer.Add(streamer)
	speaker.Unlock()
}

// toneGenerator produces a decaying sine tone.
type toneGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newToneGenerator(sr beep.SampleRate, freq float64) *toneGenerator {
	return &toneGenerator{sr: sr, freq: freq}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Quick attack, exponential decay.
		envelope := math.Min(t/0.005, 1.0) * math.Exp(-t*20)
		sample := 0.25 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}
