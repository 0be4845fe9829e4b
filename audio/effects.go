package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates raw audio waves for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
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
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
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
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates a simplified attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf so 0 is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateSnapSound generates a short bright ding for a placed tile
func CreateSnapSound(rate beep.SampleRate) beep.Streamer {
	// Fundamental (E6) plus octave harmonic
	fund := NewEnvelope(NewOscillator(1318.51, snapDuration, WaveSine, rate), snapDuration, snapAttack, snapRelease, rate)
	over := NewEnvelope(NewOscillator(2637.02, snapDuration, WaveSine, rate), snapDuration, snapAttack, snapRelease/2, rate)

	mixed := beep.Mix(
		newVolume(fund, 0.7),
		newVolume(over, 0.3),
	)
	return newVolume(mixed, masterVolume)
}

// CreateRejectSound generates a low buzz for a tile sent back
func CreateRejectSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(110.0, rejectDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, rejectDuration, rejectAttack, rejectRelease, rate)
	return newVolume(shaped, masterVolume*0.6)
}

// CreateCompleteSound plays a rising arpeggio (C6 E6 G6) followed by a short rest
func CreateCompleteSound(rate beep.SampleRate) beep.Streamer {
	freqs := []float64{1046.50, 1318.51, 1567.98}
	notes := make([]beep.Streamer, 0, len(freqs)+1)
	for _, f := range freqs {
		osc := NewOscillator(f, completeNoteDuration, WaveSquare, rate)
		notes = append(notes, newVolume(NewEnvelope(osc, completeNoteDuration, completeAttack, completeRelease, rate), 0.4))
	}
	notes = append(notes, generators.Silence(rate.N(completeNoteDuration)))

	return newVolume(beep.Seq(notes...), masterVolume)
}

// GetSoundEffect returns the streamer for the given sound type
func GetSoundEffect(soundType SoundType, rate beep.SampleRate) beep.Streamer {
	switch soundType {
	case SoundSnap:
		return CreateSnapSound(rate)
	case SoundReject:
		return CreateRejectSound(rate)
	case SoundComplete:
		return CreateCompleteSound(rate)
	default:
		return nil
	}
}
