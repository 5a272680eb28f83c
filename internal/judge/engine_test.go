package judge

import (
	"math/rand"
	"testing"
	"time"

	"git.lost.host/meutraa/chordbattle/internal/game"
	"git.lost.host/meutraa/chordbattle/internal/generator"
	"git.lost.host/meutraa/chordbattle/internal/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

// Five count-in measures of 2s put the first note at exactly 10s.
var sig = timing.Signature{BPM: 120, BeatsPerMeasure: 4, CountInMeasures: 5}

type recorder struct {
	hits   []game.Outcome
	misses []game.Outcome
	loops  []int
}

func (r *recorder) Hit(o game.Outcome)  { r.hits = append(r.hits, o) }
func (r *recorder) Miss(o game.Outcome) { r.misses = append(r.misses, o) }
func (r *recorder) Loop(loop int)       { r.loops = append(r.loops, loop) }

func newEngine(t *testing.T, mode game.Mode, chords []string, opts ...Option) (*Engine, *recorder) {
	t.Helper()
	gen := generator.New(sig, 4, mode, chords, chords, rand.New(rand.NewSource(3)))
	rec := &recorder{}
	return New(gen, rec, opts...), rec
}

func tickRange(e *Engine, from, to, step time.Duration) {
	for now := from; now <= to; now += step {
		e.Tick(now)
	}
}

func TestMissOnSilence(t *testing.T) {
	e, rec := newEngine(t, game.ModeProgression, []string{"C"})

	tickRange(e, 9*time.Second, 10200*ms, 10*ms)
	assert.Empty(t, rec.misses, "window is still open at its end")
	require.Equal(t, Armed, e.State())

	tickRange(e, 10210*ms, 10500*ms, 10*ms)
	require.Len(t, rec.misses, 1)
	assert.Empty(t, rec.hits)

	miss := rec.misses[0]
	assert.Equal(t, 10*time.Second, miss.Note.Time)
	assert.Equal(t, game.Player, miss.Side)
	assert.GreaterOrEqual(t, miss.At, 10200*ms)
	assert.Equal(t, 1, miss.Amount)
	assert.Equal(t, Idle, e.State())
}

func TestHitAtWindowEdge(t *testing.T) {
	e, rec := newEngine(t, game.ModeProgression, []string{"C"})
	tickRange(e, 9*time.Second, 10*time.Second, 10*ms)
	require.Equal(t, Armed, e.State())

	hit := e.Judge(game.Input{Chord: "C", At: 10*time.Second + 199*ms})
	require.True(t, hit)
	require.Len(t, rec.hits, 1)
	assert.Equal(t, 199*ms, rec.hits[0].Offset)
	assert.Equal(t, game.Enemy, rec.hits[0].Side)
	assert.Equal(t, Idle, e.State())

	// The note is discarded, the same input again does nothing
	assert.False(t, e.Judge(game.Input{Chord: "C", At: 10*time.Second + 199*ms}))

	tickRange(e, 10200*ms, 11*time.Second, 10*ms)
	assert.Empty(t, rec.misses)
}

func TestLateInputStillMisses(t *testing.T) {
	e, rec := newEngine(t, game.ModeProgression, []string{"C"})
	tickRange(e, 9*time.Second, 10200*ms, 10*ms)

	assert.False(t, e.Judge(game.Input{Chord: "C", At: 10*time.Second + 201*ms}))
	assert.Empty(t, rec.hits)

	e.Tick(10210 * ms)
	assert.Len(t, rec.misses, 1)
}

func TestEarlyEdgeHits(t *testing.T) {
	e, rec := newEngine(t, game.ModeProgression, []string{"C"})
	e.Tick(9800 * ms)
	require.Equal(t, Armed, e.State())
	assert.True(t, e.Judge(game.Input{Chord: "C", At: 9800 * ms}))
	assert.Equal(t, -200*ms, rec.hits[0].Offset)
}

func TestWrongInputsAreTolerated(t *testing.T) {
	e, rec := newEngine(t, game.ModeProgression, []string{"Am"})
	e.Tick(10 * time.Second)

	assert.False(t, e.Judge(game.Input{Chord: "C", At: 10 * time.Second}))
	assert.False(t, e.Judge(game.Input{Pitches: []int{60, 64, 67}, At: 10 * time.Second}))
	assert.Equal(t, Armed, e.State())
	assert.Empty(t, rec.misses)

	// A voicing of A minor played as pitches
	assert.True(t, e.Judge(game.Input{Pitches: []int{45, 57, 60, 64}, At: 10*time.Second + 50*ms}))
	assert.Len(t, rec.hits, 1)
}

func TestNoWindowNoEffect(t *testing.T) {
	e, rec := newEngine(t, game.ModeProgression, []string{"C"})
	e.Tick(5 * time.Second)
	assert.False(t, e.Judge(game.Input{Chord: "C", At: 5 * time.Second}))
	assert.Empty(t, rec.hits)
	assert.Empty(t, rec.misses)
}

func TestLongTickGapActivatesThenExpires(t *testing.T) {
	e, rec := newEngine(t, game.ModeProgression, []string{"C"})
	e.Tick(9 * time.Second)
	e.Tick(11 * time.Second)
	require.Len(t, rec.misses, 1)
	assert.Equal(t, 10*time.Second, rec.misses[0].Note.Time)

	// The next note at 12s activates normally afterwards
	e.Tick(11900 * ms)
	note, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, 12*time.Second, note.Time)
}

func TestWindowExclusivity(t *testing.T) {
	e, rec := newEngine(t, game.ModeRandom, []string{"C", "F", "G"})
	rng := rand.New(rand.NewSource(11))

	activations := 0
	var current *game.RhythmNote
	for now := time.Duration(0); now < 60*time.Second; now += time.Duration(1+rng.Intn(120)) * ms {
		e.Tick(now)

		note, active := e.Active()
		_, armed := e.Window()
		require.Equal(t, active, armed, "window open iff active note at %v", now)

		if !active {
			current = nil
			continue
		}
		if current != nil {
			require.Equal(t, current.SequenceID, note.SequenceID, "activated while another note was active at %v", now)
			continue
		}
		activations++
		current = &note
	}
	assert.Equal(t, activations, len(rec.misses), "every window expires exactly once")
	assert.Greater(t, activations, 10)
}

func TestLoopAdvance(t *testing.T) {
	e, rec := newEngine(t, game.ModeProgression, []string{"C", "G"})

	// Loop 0 covers 10s to 18s, loop 1 is generated as its first window opens
	tickRange(e, 0, 17790*ms, 10*ms)
	assert.Empty(t, rec.loops)
	assert.Equal(t, 0, e.Loop())

	e.Tick(17800 * ms)
	assert.Equal(t, []int{1}, rec.loops)
	assert.Equal(t, 1, e.Loop())

	note, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, 18*time.Second, note.Time)
	assert.Equal(t, 1, note.Loop)
	assert.Len(t, e.Pending(), 3)

	e.Tick(18 * time.Second)
	assert.Equal(t, 0, e.MeasureCursor())
	e.Tick(20 * time.Second)
	assert.Equal(t, 1, e.MeasureCursor())
}

func TestLoopSeamThroughEngine(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		gen := generator.New(sig, 4, game.ModeRandomNoSeam, []string{"C", "G"}, nil, rand.New(rand.NewSource(seed)))
		var seen []game.RhythmNote
		e := New(gen, Funcs{OnMiss: func(o game.Outcome) { seen = append(seen, o.Note) }})
		tickRange(e, 0, 19*time.Second, 10*ms)

		require.Len(t, seen, 5)
		assert.Equal(t, 0, seen[3].Loop)
		assert.Equal(t, 1, seen[4].Loop)
		assert.NotEqual(t, seen[3].Chord, seen[4].Chord, "seed %d", seed)
	}
}

func TestSeekBackwardsDropsWindowWithoutMiss(t *testing.T) {
	e, rec := newEngine(t, game.ModeProgression, []string{"C"})
	tickRange(e, 9*time.Second, 10100*ms, 10*ms)
	require.Equal(t, Armed, e.State())

	e.Tick(5 * time.Second)
	assert.Equal(t, Idle, e.State())
	assert.Empty(t, rec.misses)
	assert.Equal(t, []int{0}, rec.loops)
	assert.Len(t, e.Pending(), 4)

	// Activation re-evaluates naturally from the new position
	tickRange(e, 5*time.Second, 10300*ms, 10*ms)
	assert.Len(t, rec.misses, 1)
}

func TestSeekIntoLoopSkipsClosedWindows(t *testing.T) {
	e, rec := newEngine(t, game.ModeProgression, []string{"C"})
	tickRange(e, 0, 30*time.Second, 100*ms)
	misses := len(rec.misses)

	// Back into loop 1 (18s to 26s), after the 18s and 20s windows closed
	e.Tick(21 * time.Second)
	assert.Equal(t, 1, e.Loop())
	assert.Equal(t, 1, e.MeasureCursor())
	pending := e.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, 22*time.Second, pending[0].Time)
	assert.Equal(t, misses, len(rec.misses))
}

func TestAmountFunc(t *testing.T) {
	e, rec := newEngine(t, game.ModeProgression, []string{"C"}, WithAmount(func(o game.Outcome) int {
		if o.Kind == game.Hit {
			return 3
		}
		return 2
	}))
	e.Tick(10 * time.Second)
	e.Judge(game.Input{Chord: "C", At: 10 * time.Second})
	tickRange(e, 11800*ms, 12300*ms, 100*ms)

	require.Len(t, rec.hits, 1)
	require.Len(t, rec.misses, 1)
	assert.Equal(t, 3, rec.hits[0].Amount)
	assert.Equal(t, 2, rec.misses[0].Amount)
}

func TestListenersFanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	ls := Listeners{a, b}
	ls.Hit(game.Outcome{})
	ls.Miss(game.Outcome{})
	ls.Loop(2)
	for _, r := range []*recorder{a, b} {
		assert.Len(t, r.hits, 1)
		assert.Len(t, r.misses, 1)
		assert.Equal(t, []int{2}, r.loops)
	}
}

func TestReset(t *testing.T) {
	e, rec := newEngine(t, game.ModeProgression, []string{"C", "G"})

	tickRange(e, 0, 19*time.Second, 20*ms)
	require.Equal(t, 1, e.Loop())
	require.NotEmpty(t, rec.misses)

	e.Reset()
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, 0, e.Loop())
	require.Len(t, e.Pending(), 4)
	assert.Equal(t, 10*time.Second, e.Pending()[0].Time)

	// A restarted transport is not treated as a backwards seek.
	loops := len(rec.loops)
	e.Tick(0)
	assert.Len(t, rec.loops, loops)
}
