// Package fret places pitches on a stringed instrument, choosing the
// fingering that keeps the fretting hand still.
package fret

import (
	"fmt"
	"sort"

	"git.lost.host/meutraa/chordbattle/internal/instrument"
)

// Candidate is one playable position for a pitch.
type Candidate struct {
	StringIx int // Index into Profile.Strings
	Fret     int
	Distance int // Semitones above the open string, equal to Fret
	Pitch    int // The pitch actually sounded, after any octave shift
	Octaves  int // Octave shift applied to reach Pitch, 0 when none
}

func (c Candidate) String() string {
	return fmt.Sprintf("s%d/f%d", c.StringIx, c.Fret)
}

// octaveShifts is the order alternative octaves are tried in.
var octaveShifts = [...]int{-1, 1, -2, 2, -3, 3}

// FindPositions lists the positions for pitch, open strings first and then
// by string index. When the pitch cannot be played at all the nearest octaves
// are tried in turn. An empty result means the pitch is unplayable.
func FindPositions(p instrument.Profile, pitch int) []Candidate {
	if out := positions(p, pitch, 0); len(out) > 0 {
		return out
	}
	for _, shift := range octaveShifts {
		if out := positions(p, pitch+shift*12, shift); len(out) > 0 {
			return out
		}
	}
	return nil
}

func positions(p instrument.Profile, pitch, shift int) []Candidate {
	var out []Candidate
	for s, str := range p.Strings {
		f := pitch - str.Open
		if p.Fretless {
			if f != 0 {
				continue
			}
		} else if f < 0 || f > str.MaxFret {
			continue
		}
		out = append(out, Candidate{
			StringIx: s,
			Fret:     f,
			Distance: f,
			Pitch:    pitch,
			Octaves:  shift,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return priority(out[i]) < priority(out[j])
	})
	return out
}

func priority(c Candidate) int {
	if c.Fret == 0 {
		return 0
	}
	return 1
}
