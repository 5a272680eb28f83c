package instrument

import "sort"

const (
	Guitar      = "guitar"
	Guitar7     = "guitar7"
	Bass        = "bass"
	Bass5       = "bass5"
	Ukulele     = "ukulele"
	Mandolin    = "mandolin"
	Harp        = "harp"
	DefaultID   = Guitar
	defaultFret = 22
)

var profiles = map[string]Profile{
	Guitar: {
		ID:      Guitar,
		Name:    "Guitar (E standard)",
		Strings: uniform(defaultFret, 64, 59, 55, 50, 45, 40), // E4 B3 G3 D3 A2 E2
	},
	Guitar7: {
		ID:      Guitar7,
		Name:    "7-string guitar (B standard)",
		Strings: uniform(24, 64, 59, 55, 50, 45, 40, 35),
	},
	Bass: {
		ID:      Bass,
		Name:    "Bass (E standard)",
		Strings: uniform(20, 43, 38, 33, 28), // G2 D2 A1 E1
	},
	Bass5: {
		ID:      Bass5,
		Name:    "5-string bass",
		Strings: uniform(24, 43, 38, 33, 28, 23),
	},
	Ukulele: {
		ID:      Ukulele,
		Name:    "Ukulele (GCEA, re-entrant)",
		Strings: uniform(15, 69, 64, 60, 67),
	},
	Mandolin: {
		ID:      Mandolin,
		Name:    "Mandolin (GDAE)",
		Strings: uniform(17, 76, 69, 62, 55),
	},
	Harp: {
		ID:       Harp,
		Name:     "Lap harp (C major, 15 strings)",
		Strings:  uniform(0, 84, 83, 81, 79, 77, 76, 74, 72, 71, 69, 67, 65, 64, 62, 60),
		Fretless: true,
	},
}

// Lookup returns the profile for id. Callers must reject unknown ids with
// Known first; an unknown id yields the zero Profile.
func Lookup(id string) Profile {
	p := profiles[id]
	// Copy the strings so no caller can mutate the shared table
	p.Strings = append([]String(nil), p.Strings...)
	return p
}

func Known(id string) bool {
	_, ok := profiles[id]
	return ok
}

// IDs lists every known instrument id, sorted.
func IDs() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
