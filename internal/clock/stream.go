package clock

import (
	"math"
	"sync"
	"time"

	"git.lost.host/meutraa/chordbattle/internal/timing"
	"github.com/faiface/beep"
)

// Stream wraps the streamer feeding the audio device and counts the samples
// it hands out, so musical time follows what the speaker has played.
type Stream struct {
	format   beep.Format
	streamer beep.Streamer
	delay    time.Duration
	offset   time.Duration

	mu      sync.Mutex
	samples int
}

func NewStream(format beep.Format, s beep.Streamer, delay, offset time.Duration) *Stream {
	return &Stream{
		format:   format,
		streamer: beep.Seq(beep.Silence(format.SampleRate.N(delay)), s),
		delay:    delay,
		offset:   offset,
	}
}

func (s *Stream) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.streamer.Stream(samples)
	s.mu.Lock()
	s.samples += n
	s.mu.Unlock()
	return n, ok
}

func (s *Stream) Err() error {
	return s.streamer.Err()
}

func (s *Stream) Now() time.Duration {
	s.mu.Lock()
	n := s.samples
	s.mu.Unlock()
	return s.format.SampleRate.D(n) - s.delay + s.offset
}

const (
	clickLength = 30 * time.Millisecond
	clickVolume = 0.4
	accentFreq  = 1760.0
	beatFreq    = 880.0
)

// Metronome clicks on every beat of sig, accented on the first beat of each
// measure. It never ends.
func Metronome(format beep.Format, sig timing.Signature) beep.Streamer {
	pos := 0
	beat := sig.Beat()
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			t := format.SampleRate.D(pos)
			into := t % beat
			v := 0.0
			if into < clickLength {
				freq := beatFreq
				if int(t/beat)%sig.BeatsPerMeasure == 0 {
					freq = accentFreq
				}
				env := 1 - float64(into)/float64(clickLength)
				v = clickVolume * env * math.Sin(2*math.Pi*freq*into.Seconds())
			}
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return len(samples), true
	})
}
