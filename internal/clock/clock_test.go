package clock

import (
	"context"
	"testing"
	"time"

	"git.lost.host/meutraa/chordbattle/internal/timing"
	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type counter struct{ n time.Duration }

func (c *counter) Now() time.Duration {
	c.n += time.Millisecond
	return c.n
}

func TestRunStopsWhenTickDeclines(t *testing.T) {
	src := &counter{}
	seen := []time.Duration{}
	err := Run(context.Background(), src, time.Millisecond, func(now time.Duration) bool {
		seen = append(seen, now)
		return len(seen) < 5
	})
	require.NoError(t, err)
	ms := time.Millisecond
	assert.Equal(t, []time.Duration{1 * ms, 2 * ms, 3 * ms, 4 * ms, 5 * ms}, seen)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	err := Run(ctx, &counter{}, time.Millisecond, func(time.Duration) bool {
		ticks++
		if ticks == 3 {
			cancel()
		}
		return true
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, ticks)
}

func TestWall(t *testing.T) {
	base := time.Unix(100, 0)
	now := base
	w := newWall(func() time.Time { return now }, 2*time.Second, -50*time.Millisecond)

	assert.Equal(t, -2050*time.Millisecond, w.Now(), "negative during the start delay")
	now = base.Add(5 * time.Second)
	assert.Equal(t, 2950*time.Millisecond, w.Now())
}

var format = beep.Format{SampleRate: 1000, NumChannels: 2, Precision: 2}

func TestStreamCountsSamples(t *testing.T) {
	s := NewStream(format, beep.Silence(-1), 100*time.Millisecond, 0)
	assert.Equal(t, -100*time.Millisecond, s.Now())

	buf := make([][2]float64, 250)
	n, ok := s.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 250, n)
	assert.Equal(t, 150*time.Millisecond, s.Now())
	assert.NoError(t, s.Err())
}

func TestMetronome(t *testing.T) {
	sig := timing.Signature{BPM: 120, BeatsPerMeasure: 4}
	m := Metronome(format, sig)

	// Two beats of 500 samples each.
	buf := make([][2]float64, 1000)
	n, ok := m.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 1000, n)

	for _, start := range []int{0, 500} {
		sound := 0
		for i := start; i < start+30; i++ {
			if buf[i][0] != 0 {
				sound++
			}
			assert.Equal(t, buf[i][0], buf[i][1])
		}
		assert.NotZero(t, sound, "click at sample %d", start)
		for i := start + 30; i < start+500; i++ {
			require.Zero(t, buf[i][0], "silence between clicks at %d", i)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	_, _, err := Decode("missing.mp3")
	assert.Error(t, err)

	_, _, err = Decode("clock.go")
	assert.Error(t, err)
}
