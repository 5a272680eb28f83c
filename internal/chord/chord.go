// Package chord parses chord symbols such as "C#m7b5" or "Gm/maj7" into
// pitch-class sets and compares played pitches against them.
package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Chord is a parsed chord symbol.
type Chord struct {
	Symbol    string
	Root      int // Pitch class of the root, C = 0
	Quality   string
	Intervals []int // Semitones above the root, root included
}

var letters = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// qualities maps every accepted suffix to its intervals. Aliases share a
// canonical name so enharmonic and spelling variants compare equal.
var qualities = map[string]struct {
	name      string
	intervals []int
}{
	"":       {"", []int{0, 4, 7}},
	"M":      {"", []int{0, 4, 7}},
	"maj":    {"", []int{0, 4, 7}},
	"m":      {"m", []int{0, 3, 7}},
	"min":    {"m", []int{0, 3, 7}},
	"dim":    {"dim", []int{0, 3, 6}},
	"aug":    {"aug", []int{0, 4, 8}},
	"+":      {"aug", []int{0, 4, 8}},
	"sus4":   {"sus4", []int{0, 5, 7}},
	"sus2":   {"sus2", []int{0, 2, 7}},
	"6":      {"6", []int{0, 4, 7, 9}},
	"m6":     {"m6", []int{0, 3, 7, 9}},
	"M7":     {"M7", []int{0, 4, 7, 11}},
	"maj7":   {"M7", []int{0, 4, 7, 11}},
	"m7":     {"m7", []int{0, 3, 7, 10}},
	"7":      {"7", []int{0, 4, 7, 10}},
	"m7b5":   {"m7b5", []int{0, 3, 6, 10}},
	"m7-5":   {"m7b5", []int{0, 3, 6, 10}},
	"m/maj7": {"mM7", []int{0, 3, 7, 11}},
	"mM7":    {"mM7", []int{0, 3, 7, 11}},
	"mmaj7":  {"mM7", []int{0, 3, 7, 11}},
	"aug7":   {"aug7", []int{0, 4, 8, 10}},
	"7#5":    {"aug7", []int{0, 4, 8, 10}},
	"dim7":   {"dim7", []int{0, 3, 6, 9}},
	"7sus4":  {"7sus4", []int{0, 5, 7, 10}},
	"add9":   {"add9", []int{0, 2, 4, 7}},
	"9":      {"9", []int{0, 2, 4, 7, 10}},
}

// Parse reads a chord symbol: a root letter, an optional # or b, then a
// quality suffix.
func Parse(symbol string) (Chord, error) {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return Chord{}, errors.New("empty chord symbol")
	}
	root, ok := letters[s[0]]
	if !ok {
		return Chord{}, errors.Errorf("invalid chord root in %q", symbol)
	}
	i := 1
	if i < len(s) {
		switch s[i] {
		case '#':
			root++
			i++
		case 'b':
			root--
			i++
		}
	}
	q, ok := qualities[s[i:]]
	if !ok {
		return Chord{}, errors.Errorf("unknown chord quality %q in %q", s[i:], symbol)
	}
	return Chord{
		Symbol:    s,
		Root:      (root + 12) % 12,
		Quality:   q.name,
		Intervals: q.intervals,
	}, nil
}

// MustParse is Parse for symbols known to be valid.
func MustParse(symbol string) Chord {
	c, err := Parse(symbol)
	if err != nil {
		panic(err)
	}
	return c
}

// PitchClasses returns the sorted pitch-class set of the chord.
func (c Chord) PitchClasses() []int {
	pcs := make([]int, len(c.Intervals))
	for i, iv := range c.Intervals {
		pcs[i] = (c.Root + iv) % 12
	}
	sort.Ints(pcs)
	return pcs
}

// Notes voices the chord in root position from the root in octave (C4 = 60).
func (c Chord) Notes(octave int) []int {
	base := (octave+1)*12 + c.Root
	notes := make([]int, len(c.Intervals))
	for i, iv := range c.Intervals {
		notes[i] = base + iv
	}
	return notes
}

// Name is the canonical sharp spelling, "Db" becomes "C#".
func (c Chord) Name() string {
	return noteNames[c.Root] + c.Quality
}

// Equal reports whether two symbols name the same chord.
func Equal(a, b string) bool {
	if a == b {
		return true
	}
	ca, err := Parse(a)
	if err != nil {
		return false
	}
	cb, err := Parse(b)
	if err != nil {
		return false
	}
	return ca.Root == cb.Root && ca.Quality == cb.Quality
}

// Matches reports whether the pitches sound exactly the chord's pitch
// classes, in any octave or voicing.
func Matches(symbol string, pitches []int) bool {
	c, err := Parse(symbol)
	if err != nil || len(pitches) == 0 {
		return false
	}
	want := c.PitchClasses()
	got := pitchClassSet(pitches)
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

func pitchClassSet(pitches []int) []int {
	seen := [12]bool{}
	out := []int{}
	for _, p := range pitches {
		pc := ((p % 12) + 12) % 12
		if !seen[pc] {
			seen[pc] = true
			out = append(out, pc)
		}
	}
	sort.Ints(out)
	return out
}

// NoteName formats a MIDI pitch as a note name, 60 is C4.
func NoteName(pitch int) string {
	if pitch < 0 {
		return fmt.Sprintf("?%d", pitch)
	}
	return fmt.Sprintf("%s%d", noteNames[pitch%12], pitch/12-1)
}
