// Package generator produces the expected chords for each loop of a stage.
package generator

import (
	"math/rand"

	"git.lost.host/meutraa/chordbattle/internal/chord"
	"git.lost.host/meutraa/chordbattle/internal/game"
	"git.lost.host/meutraa/chordbattle/internal/timing"
)

// Generator is configured once per stage. Its inputs are validated when the
// stage is loaded, so allowed or progression is never empty for its mode.
type Generator struct {
	Signature    timing.Signature
	MeasureCount int
	Mode         game.Mode
	Allowed      []string
	Progression  []string

	rng *rand.Rand
}

func New(sig timing.Signature, measureCount int, mode game.Mode, allowed, progression []string, rng *rand.Rand) *Generator {
	return &Generator{
		Signature:    sig,
		MeasureCount: measureCount,
		Mode:         mode,
		Allowed:      allowed,
		Progression:  progression,
		rng:          rng,
	}
}

// Generate returns one note per measure of loop, in increasing time order.
// previousFinal is the chord that ended the previous loop, "" for none.
func (g *Generator) Generate(loop int, previousFinal string) []game.RhythmNote {
	notes := make([]game.RhythmNote, g.MeasureCount)
	for m := range notes {
		var symbol string
		switch g.Mode {
		case game.ModeProgression:
			symbol = g.Progression[m%len(g.Progression)]
		case game.ModeRandomNoSeam:
			symbol = g.pick()
			if m == 0 && previousFinal != "" && chord.Equal(symbol, previousFinal) {
				symbol = g.pickOther(previousFinal)
			}
		default:
			symbol = g.pick()
		}
		notes[m] = game.RhythmNote{
			SequenceID: loop*g.MeasureCount + m,
			Loop:       loop,
			Measure:    m,
			Chord:      symbol,
			Time:       g.Signature.MeasureStart(loop, m, g.MeasureCount),
		}
	}
	return notes
}

func (g *Generator) pick() string {
	return g.Allowed[g.rng.Intn(len(g.Allowed))]
}

// pickOther reselects once among the chords that differ from avoid, treating
// enharmonic spellings as the same chord.
func (g *Generator) pickOther(avoid string) string {
	others := make([]string, 0, len(g.Allowed))
	for _, s := range g.Allowed {
		if !chord.Equal(s, avoid) {
			others = append(others, s)
		}
	}
	if len(others) == 0 {
		return avoid
	}
	return others[g.rng.Intn(len(others))]
}
