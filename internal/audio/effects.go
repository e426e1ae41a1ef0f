package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Effect timings
const (
	pickupDuration = 90 * time.Millisecond
	pickupAttack   = 4 * time.Millisecond
	pickupRelease  = 60 * time.Millisecond

	evictDuration = 70 * time.Millisecond
	evictRelease  = 50 * time.Millisecond

	warningDuration = 120 * time.Millisecond
	warningRelease  = 40 * time.Millisecond

	deathDuration = 700 * time.Millisecond

	// tensionBeat is the loop period at rate 1.0 (100 BPM)
	tensionBeat = 600 * time.Millisecond
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope creates a linear attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = math.Min(vol, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// pickupFreq returns the blip pitch for the i-th palette color, a major
// third apart starting at E5.
func pickupFreq(i int) float64 {
	if i < 0 {
		i = 0
	}
	return 659.25 * math.Pow(2, float64(i*4)/12)
}

// CreatePickupSound generates the collect blip, followed by a low tick when
// the queue evicted its oldest token.
func CreatePickupSound(colorIndex int, evicted bool, rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewOscillator(pickupFreq(colorIndex), pickupDuration, WaveSquare, rate)
	blip := NewEnvelope(osc, pickupDuration, pickupAttack, pickupRelease, rate)
	if !evicted {
		return newVolume(blip, vol*0.4)
	}

	low := NewOscillator(220, evictDuration, WaveSine, rate)
	tick := NewEnvelope(low, evictDuration, pickupAttack, evictRelease, rate)
	return newVolume(beep.Seq(blip, tick), vol*0.4)
}

// CreateWarningSound generates a short buzz for entering the penalty zone
func CreateWarningSound(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewOscillator(110, warningDuration, WaveSaw, rate)
	return newVolume(NewEnvelope(osc, warningDuration, pickupAttack, warningRelease, rate), vol*0.3)
}

// CreateRivalCue generates the falling two-tone call that plays while the
// ghost runs alongside.
func CreateRivalCue(duration time.Duration, rate beep.SampleRate, vol float64) beep.Streamer {
	half := duration / 2
	hi := NewEnvelope(NewOscillator(523.25, half, WaveSine, rate), half, 40*time.Millisecond, half/2, rate)
	lo := NewEnvelope(NewOscillator(392.0, duration-half, WaveSine, rate), duration-half, 40*time.Millisecond, half, rate)
	return newVolume(beep.Seq(hi, lo), vol*0.35)
}

// CreateDeathSound generates a noise burst over a falling rumble
func CreateDeathSound(rate beep.SampleRate, vol float64) beep.Streamer {
	noise := NewEnvelope(NewOscillator(0, deathDuration, WaveNoise, rate), deathDuration, 2*time.Millisecond, deathDuration, rate)
	rumble := NewEnvelope(NewOscillator(70, deathDuration, WaveSine, rate), deathDuration, 2*time.Millisecond, deathDuration, rate)
	return newVolume(beep.Mix(newVolume(noise, 0.4), newVolume(rumble, 0.6)), vol*0.5)
}

// PulseGenerator is the endless tension beat: a kick on every beat over a
// bass drone. It is played through a resampler whose ratio follows the
// run's tension rate.
type PulseGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
}

// NewPulseGenerator creates a pulse generator
func NewPulseGenerator(sr beep.SampleRate) *PulseGenerator {
	return &PulseGenerator{
		sr:      sr,
		samples: sr.N(tensionBeat),
	}
}

func (g *PulseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := g.sr.N(100 * time.Millisecond)
	for i := range samples {
		beatPos := g.pos % g.samples
		t := float64(beatPos) / float64(g.sr)

		// Kick drum on the beat
		kick := 0.0
		if beatPos < kickLen {
			env := 1.0 - float64(beatPos)/float64(kickLen)
			kick = 0.4 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}
		bass := 0.12 * math.Sin(2*math.Pi*110*t)

		samples[i][0] = kick + bass
		samples[i][1] = kick + bass
		g.pos++
	}
	return len(samples), true
}

func (g *PulseGenerator) Err() error {
	return nil
}
