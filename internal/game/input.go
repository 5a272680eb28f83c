package game

import "time"

// Input is a player performance event that has already been resolved to a
// chord symbol or to a set of sounding pitches.
type Input struct {
	Chord   string
	Pitches []int // MIDI note numbers
	At      time.Duration
}

type Mode string

const (
	// ModeRandom draws every measure independently from the allowed set
	ModeRandom Mode = "random"
	// ModeRandomNoSeam additionally avoids repeating the previous loop's last chord
	ModeRandomNoSeam Mode = "random_no_seam"
	// ModeProgression walks the chord progression in order
	ModeProgression Mode = "progression"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeRandom, ModeRandomNoSeam, ModeProgression:
		return true
	}
	return false
}
