package game

import (
	"time"
)

// RhythmNote is one expected performance event. It is immutable once the
// generator has produced it.
type RhythmNote struct {
	SequenceID int           // Monotonic across loops, loop*measureCount + measure
	Loop       int           // The loop this note was generated for
	Measure    int           // Measure within the loop, 0 based
	Beat       int           // Beat within the measure
	Chord      string        // The expected chord symbol
	Time       time.Duration // The time the note should be hit
}

// Window returns the judgment window centered on the note.
func (n RhythmNote) Window() Window {
	return NewWindow(n.Time)
}
