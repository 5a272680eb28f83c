// Package instrument holds the static tuning of every supported instrument.
package instrument

// String is one course of an instrument.
type String struct {
	Open    int // MIDI pitch of the open string
	MaxFret int
}

// Profile is immutable once built. Switching instruments replaces the
// profile rather than mutating it.
type Profile struct {
	ID       string
	Name     string
	Strings  []String // Index 0 is the highest sounding string
	Fretless bool     // Only open strings are playable
}

func (p Profile) StringCount() int {
	return len(p.Strings)
}

// MaxFret is the highest fret on any string.
func (p Profile) MaxFret() int {
	m := 0
	for _, s := range p.Strings {
		if s.MaxFret > m {
			m = s.MaxFret
		}
	}
	return m
}

// Range returns the lowest and highest playable pitches.
func (p Profile) Range() (int, int) {
	lo, hi := 0, 0
	for i, s := range p.Strings {
		top := s.Open
		if !p.Fretless {
			top += s.MaxFret
		}
		if i == 0 || s.Open < lo {
			lo = s.Open
		}
		if i == 0 || top > hi {
			hi = top
		}
	}
	return lo, hi
}

// Tuning returns the open pitches in string order.
func (p Profile) Tuning() []int {
	t := make([]int, len(p.Strings))
	for i, s := range p.Strings {
		t[i] = s.Open
	}
	return t
}

func uniform(maxFret int, open ...int) []String {
	s := make([]String, len(open))
	for i, o := range open {
		s[i] = String{Open: o, MaxFret: maxFret}
	}
	return s
}
