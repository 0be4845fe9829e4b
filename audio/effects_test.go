package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for guard := 0; guard < 10000; guard++ {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for _, v := range buf[i] {
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("Streamer never finished")
	return 0, 0
}

// TestOscillatorSine verifies sine wave generation
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440.0, 100*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("Expected 100 samples with ok=true, got %d %v", n, ok)
	}

	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("Sample %d channels differ", i)
		}
	}

	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

// TestOscillatorSquare verifies square wave generation
func TestOscillatorSquare(t *testing.T) {
	osc := NewOscillator(220.0, 50*time.Millisecond, WaveSquare, beep.SampleRate(44100))

	samples := make([][2]float64, 50)
	n, _ := osc.Stream(samples)
	for i := 0; i < n; i++ {
		if val := samples[i][0]; val != -1.0 && val != 1.0 {
			t.Errorf("Square wave sample %d should be -1.0 or 1.0, got %f", i, val)
		}
	}
}

// TestOscillatorLength verifies the oscillator stops after its duration
func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(300, 20*time.Millisecond, WaveSaw, rate)

	n, _ := drain(t, osc)
	if n != rate.N(20*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", rate.N(20*time.Millisecond), n)
	}
}

// TestEnvelopeShape checks the envelope starts silent and stays in range
func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 50 * time.Millisecond
	osc := NewOscillator(100, duration, WaveSquare, rate)
	env := NewEnvelope(osc, duration, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 1)
	env.Stream(samples)
	if samples[0][0] != 0 {
		t.Errorf("First sample should be silent during attack, got %f", samples[0][0])
	}

	n, peak := drain(t, env)
	if n != rate.N(duration)-1 {
		t.Errorf("Expected %d remaining samples, got %d", rate.N(duration)-1, n)
	}
	if peak > 1.0 {
		t.Errorf("Envelope amplified signal: peak %f", peak)
	}
}

// TestSoundEffectsFinish ensures every effect is finite and audible
func TestSoundEffectsFinish(t *testing.T) {
	rate := beep.SampleRate(44100)

	tests := []struct {
		sound   SoundType
		minimum time.Duration
	}{
		{SoundSnap, snapDuration},
		{SoundReject, rejectDuration},
		{SoundComplete, 4 * completeNoteDuration},
	}

	for _, tt := range tests {
		t.Run(tt.sound.String(), func(t *testing.T) {
			s := GetSoundEffect(tt.sound, rate)
			if s == nil {
				t.Fatal("Expected streamer")
			}
			n, peak := drain(t, s)
			if n < rate.N(tt.minimum) {
				t.Errorf("Expected at least %d samples, got %d", rate.N(tt.minimum), n)
			}
			if peak == 0 {
				t.Error("Effect is silent")
			}
			if peak > 1.0 {
				t.Errorf("Effect clips: peak %f", peak)
			}
		})
	}
}

func TestUnknownSoundEffect(t *testing.T) {
	if s := GetSoundEffect(soundTypeCount, sampleRate); s != nil {
		t.Error("Expected nil streamer for unknown sound")
	}
}

// TestSoundManagerUninitialized verifies playing before Initialize is safe
func TestSoundManagerUninitialized(t *testing.T) {
	sm := NewSoundManager()
	sm.PlaySnap()
	sm.PlayReject()
	sm.PlayComplete()
	sm.SetMuted(true)
	sm.Cleanup()
}
