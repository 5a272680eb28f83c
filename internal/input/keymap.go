// Package input turns raw player input into game inputs: keyboard runes
// bound to chord symbols, and note events read from MIDI files.
package input

import (
	"git.lost.host/meutraa/chordbattle/internal/chord"
	"github.com/pkg/errors"
)

// Home row first, then the rows above and below.
const layout = "asdfghjkl;qwertyuiopzxcvbnm,./1234567890"

type Binding struct {
	Key   rune
	Chord string
}

// Keymap binds one key per chord of a stage's vocabulary.
type Keymap struct {
	bindings []Binding
	byKey    map[rune]string
}

func NewKeymap(chords []string) (*Keymap, error) {
	keys := []rune(layout)
	if len(chords) > len(keys) {
		return nil, errors.Errorf("%d chords but only %d keys", len(chords), len(keys))
	}
	m := &Keymap{byKey: map[rune]string{}}
	for i, c := range chords {
		if _, err := chord.Parse(c); err != nil {
			return nil, err
		}
		m.bindings = append(m.bindings, Binding{Key: keys[i], Chord: c})
		m.byKey[keys[i]] = c
	}
	return m, nil
}

func (m *Keymap) Chord(key rune) (string, bool) {
	c, ok := m.byKey[key]
	return c, ok
}

// Bindings lists the bindings in layout order.
func (m *Keymap) Bindings() []Binding {
	return append([]Binding(nil), m.bindings...)
}
