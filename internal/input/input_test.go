package input

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestKeymap(t *testing.T) {
	m, err := NewKeymap([]string{"C", "Am", "F", "G7"})
	require.NoError(t, err)

	c, ok := m.Chord('a')
	require.True(t, ok)
	assert.Equal(t, "C", c)
	c, ok = m.Chord('f')
	require.True(t, ok)
	assert.Equal(t, "G7", c)
	_, ok = m.Chord('g')
	assert.False(t, ok)

	want := []Binding{{'a', "C"}, {'s', "Am"}, {'d', "F"}, {'f', "G7"}}
	if diff := cmp.Diff(want, m.Bindings()); diff != "" {
		t.Errorf("bindings (-want +got):\n%s", diff)
	}
}

func TestKeymapRejects(t *testing.T) {
	_, err := NewKeymap([]string{"C", "Xm"})
	assert.Error(t, err)

	_, err = NewKeymap(strings.Split(strings.Repeat("C ", len(layout)+1), " "))
	assert.Error(t, err)
}

func writeMIDI(t *testing.T) *bytes.Buffer {
	t.Helper()
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(480)

	tempo := smf.Track{
		{Delta: 0, Message: smf.Message(smf.MetaTempo(120))},
		{Delta: 0, Message: smf.EOT},
	}
	melody := smf.Track{
		{Delta: 0, Message: smf.Message(midi.NoteOn(0, 64, 100))},
		{Delta: 480, Message: smf.Message(midi.NoteOff(0, 64))},
		{Delta: 0, Message: smf.Message(midi.NoteOn(0, 60, 100))},
		{Delta: 0, Message: smf.Message(midi.NoteOn(9, 36, 100))},
		{Delta: 240, Message: smf.Message(midi.NoteOn(0, 60, 0))},
		{Delta: 0, Message: smf.EOT},
	}
	bass := smf.Track{
		{Delta: 480, Message: smf.Message(midi.NoteOn(1, 36, 90))},
		{Delta: 0, Message: smf.EOT},
	}
	for _, tr := range []smf.Track{tempo, melody, bass} {
		require.NoError(t, s.Add(tr))
	}

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestReadMIDI(t *testing.T) {
	events, err := ReadMIDI(writeMIDI(t))
	require.NoError(t, err)

	want := []NoteEvent{
		{ID: 0, Track: 1, Pitch: 64, At: 0},
		{ID: 1, Track: 1, Pitch: 60, At: 500 * time.Millisecond},
		{ID: 2, Track: 2, Pitch: 36, At: 500 * time.Millisecond},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestReadMIDIGarbage(t *testing.T) {
	_, err := ReadMIDI(strings.NewReader("not a midi file"))
	assert.Error(t, err)
}
