// Package audio renders run notifications as sound with beep: a blip per
// collected token, a tension beat that speeds up as the player falls
// behind, the rival cue and a death sound.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/balance-runner/internal/sim"
)

const (
	sampleRate = beep.SampleRate(44100)
	// resampleQuality trades CPU for fidelity when the tension beat speeds up
	resampleQuality = 3
)

// Sink is a sim.Sink that plays sounds for run events. Streams are built
// into a mixer that is connected to the speaker by Initialize; an
// uninitialized sink still tracks state but nothing is heard.
type Sink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	tension     *beep.Resampler
	tensionCtrl *beep.Ctrl
	palette     sim.Palette
	cueLength   time.Duration
	volume      float64
	muted       bool
	initialized bool
}

// NewSink creates a sink. cueLength is the rival cue duration, which the
// run uses to schedule the end of the running-with phase.
func NewSink(cueLength time.Duration) *Sink {
	s := &Sink{
		mixer:     &beep.Mixer{},
		cueLength: cueLength,
		volume:    1,
	}
	s.tension = beep.ResampleRatio(resampleQuality, 1, NewPulseGenerator(sampleRate))
	s.tensionCtrl = &beep.Ctrl{Streamer: s.tension, Paused: true}
	s.mixer.Add(s.tensionCtrl)
	return s
}

// Initialize opens the audio device and starts playback.
func (s *Sink) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close silences everything. The device stays open; beep has no way to
// release it.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.withSpeaker(func() {
		s.tensionCtrl.Paused = true
		s.mixer.Clear()
	})
	s.initialized = false
}

// SetMuted switches all output on or off.
func (s *Sink) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.muted = muted
	s.withSpeaker(func() {
		if muted {
			s.tensionCtrl.Paused = true
			s.mixer.Clear()
			s.mixer.Add(s.tensionCtrl)
		}
	})
}

// ToggleMute flips the mute state and returns the new one.
func (s *Sink) ToggleMute() bool {
	s.mu.Lock()
	muted := !s.muted
	s.mu.Unlock()
	s.SetMuted(muted)
	return muted
}

// SetCueLength changes the rival cue duration for later cues.
func (s *Sink) SetCueLength(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cueLength = d
}

// Muted reports whether output is off.
func (s *Sink) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// TensionRatio returns the current playback speed of the tension beat.
func (s *Sink) TensionRatio() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var r float64
	s.withSpeaker(func() { r = s.tension.Ratio() })
	return r
}

// TensionPlaying reports whether the tension beat is running.
func (s *Sink) TensionPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var playing bool
	s.withSpeaker(func() { playing = !s.tensionCtrl.Paused })
	return playing
}

// Voices returns the number of streams in the mixer, the tension beat
// included.
func (s *Sink) Voices() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	s.withSpeaker(func() { n = s.mixer.Len() })
	return n
}

// Handle implements sim.Sink.
func (s *Sink) Handle(ev sim.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := ev.(type) {
	case sim.Frame:
		s.palette = e.Snapshot.Palette
		s.withSpeaker(func() { s.tension.SetRatio(e.Snapshot.TensionRate) })
	case sim.PhaseChanged:
		s.withSpeaker(func() { s.tensionCtrl.Paused = s.muted || e.To != sim.PhasePlaying })
	case sim.TokenCollected:
		s.play(CreatePickupSound(s.palette.Index(e.Token), e.Evicted != "", sampleRate, s.volume))
	case sim.ImbalanceChanged:
		if e.Assessment.Imbalanced || e.Assessment.Zone == sim.ZonePenalty {
			s.play(CreateWarningSound(sampleRate, s.volume))
		}
	case sim.RivalChanged:
		if e.Active && e.Rival.Phase == sim.RivalRunningWith {
			s.play(CreateRivalCue(s.cueLength, sampleRate, s.volume))
		}
	case sim.GameOver:
		s.play(CreateDeathSound(sampleRate, s.volume))
	}
}

// play adds a one-shot stream unless muted. Caller holds s.mu.
func (s *Sink) play(st beep.Streamer) {
	if s.muted {
		return
	}
	s.withSpeaker(func() { s.mixer.Add(st) })
}

// withSpeaker runs f under the speaker lock once playback started, since
// the speaker goroutine reads the mixer concurrently.
func (s *Sink) withSpeaker(f func()) {
	if s.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	f()
}
