package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundSnap     SoundType = iota // Tile snapped into a slot
	SoundReject                    // Tile sprang back to its origin
	SoundComplete                  // Name fully spelled
	soundTypeCount
)

// String returns the sound name for logs
func (s SoundType) String() string {
	switch s {
	case SoundSnap:
		return "snap"
	case SoundReject:
		return "reject"
	case SoundComplete:
		return "complete"
	default:
		return "unknown"
	}
}

const (
	sampleRate = beep.SampleRate(44100)

	// Master gain applied to every effect, 0..1
	masterVolume = 0.5

	snapDuration = 90 * time.Millisecond
	snapAttack   = 3 * time.Millisecond
	snapRelease  = 70 * time.Millisecond

	rejectDuration = 120 * time.Millisecond
	rejectAttack   = 5 * time.Millisecond
	rejectRelease  = 60 * time.Millisecond

	completeNoteDuration = 110 * time.Millisecond
	completeAttack       = 5 * time.Millisecond
	completeRelease      = 80 * time.Millisecond
)
