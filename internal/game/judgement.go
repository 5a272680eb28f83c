package game

import (
	"time"
)

type Kind int

const (
	Hit Kind = iota
	Miss
)

func (k Kind) String() string {
	switch k {
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	}
	return "unknown"
}

// Side is the party an outcome is applied against.
type Side int

const (
	Enemy Side = iota
	Player
)

func (s Side) String() string {
	switch s {
	case Enemy:
		return "enemy"
	case Player:
		return "player"
	}
	return "unknown"
}

// Outcome is emitted once per judged note.
type Outcome struct {
	Kind   Kind
	Side   Side // Hits damage the enemy, misses damage the player
	Amount int
	Note   RhythmNote
	At     time.Duration // Musical time the outcome was decided
	Offset time.Duration // Signed hit error, At - Note.Time. Zero for misses
}

// Judgement grades the accuracy of a hit.
type Judgement struct {
	Time time.Duration
	Name string
}

// Judgements are ordered from tightest to loosest; the last entry covers the
// whole window.
var Judgements = []Judgement{
	{Time: 40 * time.Millisecond, Name: "Perfect"},
	{Time: 100 * time.Millisecond, Name: "Great"},
	{Time: WindowRadius, Name: "Good"},
}

// Grade returns the index and judgement for an absolute offset, or -1 and
// nil when it is outside the window.
func Grade(offset time.Duration) (int, *Judgement) {
	d := Abs(offset)
	for i := range Judgements {
		if d <= Judgements[i].Time {
			return i, &Judgements[i]
		}
	}
	return -1, nil
}
