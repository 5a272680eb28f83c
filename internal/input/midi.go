package input

import (
	"io"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

const drumChannel = 9

// NoteEvent is a note start read from a MIDI file.
type NoteEvent struct {
	ID    int // Unique per file, in time order
	Track int
	Pitch int
	At    time.Duration
}

// ReadMIDI reads every note-on of a Standard MIDI File, skipping the drum
// channel, ordered by time then track then pitch.
func ReadMIDI(r io.Reader) ([]NoteEvent, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read midi file")
	}
	if _, ok := s.TimeFormat.(smf.MetricTicks); !ok {
		return nil, errors.Errorf("unsupported time format %v", s.TimeFormat)
	}

	events := []NoteEvent{}
	for ti, track := range s.Tracks {
		var ticks int64
		for _, ev := range track {
			ticks += int64(ev.Delta)
			var ch, key, vel uint8
			if !ev.Message.GetNoteOn(&ch, &key, &vel) || vel == 0 || ch == drumChannel {
				continue
			}
			events = append(events, NoteEvent{
				Track: ti,
				Pitch: int(key),
				At:    time.Duration(s.TimeAt(ticks)) * time.Microsecond,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.At != b.At {
			return a.At < b.At
		}
		if a.Track != b.Track {
			return a.Track < b.Track
		}
		return a.Pitch < b.Pitch
	})
	for i := range events {
		events[i].ID = i
	}
	return events, nil
}
