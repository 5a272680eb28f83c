// Package judge runs the judgment window state machine. The engine has no
// timers of its own: a single owner drives Tick from its frame loop and calls
// Judge from the same goroutine, always with the transport's absolute time.
package judge

import (
	"time"

	"git.lost.host/meutraa/chordbattle/internal/chord"
	"git.lost.host/meutraa/chordbattle/internal/game"
	"git.lost.host/meutraa/chordbattle/internal/generator"
	"git.lost.host/meutraa/chordbattle/internal/timing"
	"go.uber.org/zap"
)

type State int

const (
	Idle State = iota
	Armed
)

func (s State) String() string {
	if s == Armed {
		return "armed"
	}
	return "idle"
}

// AmountFunc decides how much an outcome is worth to the consumer.
type AmountFunc func(o game.Outcome) int

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithAmount(f AmountFunc) Option {
	return func(e *Engine) {
		e.amount = f
	}
}

type Engine struct {
	gen      *generator.Generator
	listener Listener
	logger   *zap.Logger
	amount   AmountFunc

	loop          int
	measureCursor int
	pending       []game.RhythmNote
	active        *game.RhythmNote
	window        *game.Window
	lastFinal     string // Chord ending the most recently generated loop

	now     time.Duration
	started bool
}

// New builds an engine with loop 0 already generated.
func New(gen *generator.Generator, listener Listener, opts ...Option) *Engine {
	e := &Engine{
		gen:      gen,
		listener: listener,
		logger:   zap.NewNop(),
		amount:   func(game.Outcome) int { return 1 },
	}
	if e.listener == nil {
		e.listener = Funcs{}
	}
	for _, opt := range opts {
		opt(e)
	}
	e.generate(0, "")
	return e
}

// Reset returns the engine to its freshly built state: no window, loop 0
// regenerated, and no notion of the previous tick.
func (e *Engine) Reset() {
	e.close()
	e.lastFinal = ""
	e.started = false
	e.now = 0
	e.generate(0, "")
}

func (e *Engine) signature() timing.Signature {
	return e.gen.Signature
}

// Tick advances the state machine to now. The steps run in a fixed order:
// loop boundary, activation, then expiry.
func (e *Engine) Tick(now time.Duration) {
	if e.started && now < e.now {
		e.Seek(now)
		return
	}
	e.started = true
	e.now = now

	// The next loop is generated as soon as its first window could open
	loop, _ := e.signature().Loop(now+game.WindowRadius, e.gen.MeasureCount)
	if loop > e.loop {
		e.generate(loop, e.lastFinal)
		e.logger.Debug("loop advanced", zap.Int("loop", loop), zap.Duration("at", now))
		e.listener.Loop(loop)
	}
	_, e.measureCursor = e.signature().Loop(now, e.gen.MeasureCount)

	if e.active == nil && len(e.pending) > 0 && now >= e.pending[0].Time-game.WindowRadius {
		e.activate()
	}

	if e.window != nil && e.window.Expired(now) {
		e.expire(now)
	}
}

// Seek moves the engine to a time earlier than the last tick, re-entering the
// loop that contains it. Any open window is dropped without a miss and notes
// whose windows have already closed are skipped.
func (e *Engine) Seek(now time.Duration) {
	e.close()

	loop, cursor := e.signature().Loop(now, e.gen.MeasureCount)
	e.generate(loop, "")
	kept := e.pending[:0]
	for _, n := range e.pending {
		if !n.Window().Expired(now) {
			kept = append(kept, n)
		}
	}
	e.pending = kept
	e.measureCursor = cursor
	e.now = now
	e.started = true

	e.logger.Debug("seek", zap.Duration("to", now), zap.Int("loop", loop), zap.Int("pending", len(e.pending)))
	e.listener.Loop(loop)

	if e.active == nil && len(e.pending) > 0 && now >= e.pending[0].Time-game.WindowRadius {
		e.activate()
	}
}

// Judge evaluates input against the open window. It returns true on a hit;
// a wrong or late input has no effect, only expiry produces a miss.
func (e *Engine) Judge(in game.Input) bool {
	if e.window == nil || !e.window.Contains(in.At) {
		return false
	}
	note := *e.active
	if !matches(note.Chord, in) {
		e.logger.Debug("input does not match",
			zap.String("expected", note.Chord),
			zap.String("chord", in.Chord),
			zap.Ints("pitches", in.Pitches),
		)
		return false
	}

	o := game.Outcome{
		Kind:   game.Hit,
		Side:   game.Enemy,
		Note:   note,
		At:     in.At,
		Offset: in.At - note.Time,
	}
	o.Amount = e.amount(o)
	e.close()
	e.logger.Debug("hit", zap.Int("seq", note.SequenceID), zap.String("chord", note.Chord), zap.Duration("offset", o.Offset))
	e.listener.Hit(o)
	return true
}

func matches(expected string, in game.Input) bool {
	if in.Chord != "" {
		return chord.Equal(expected, in.Chord)
	}
	return chord.Matches(expected, in.Pitches)
}

func (e *Engine) generate(loop int, previousFinal string) {
	e.pending = e.gen.Generate(loop, previousFinal)
	e.loop = loop
	e.measureCursor = 0
	if n := len(e.pending); n > 0 {
		e.lastFinal = e.pending[n-1].Chord
	}
}

func (e *Engine) activate() {
	note := e.pending[0]
	e.pending = e.pending[1:]
	w := note.Window()
	e.active = &note
	e.window = &w
	e.logger.Debug("window opened", zap.Int("seq", note.SequenceID), zap.String("chord", note.Chord), zap.Duration("center", w.Center))
}

func (e *Engine) expire(now time.Duration) {
	note := *e.active
	o := game.Outcome{
		Kind: game.Miss,
		Side: game.Player,
		Note: note,
		At:   now,
	}
	o.Amount = e.amount(o)
	e.close()
	e.logger.Debug("miss", zap.Int("seq", note.SequenceID), zap.String("chord", note.Chord), zap.Duration("at", now))
	e.listener.Miss(o)
}

// close clears the active note and its window together.
func (e *Engine) close() {
	e.active = nil
	e.window = nil
}

func (e *Engine) State() State {
	if e.window != nil {
		return Armed
	}
	return Idle
}

func (e *Engine) Active() (game.RhythmNote, bool) {
	if e.active == nil {
		return game.RhythmNote{}, false
	}
	return *e.active, true
}

func (e *Engine) Window() (game.Window, bool) {
	if e.window == nil {
		return game.Window{}, false
	}
	return *e.window, true
}

// Pending returns a copy of the queued notes, earliest first.
func (e *Engine) Pending() []game.RhythmNote {
	return append([]game.RhythmNote(nil), e.pending...)
}

func (e *Engine) Loop() int {
	return e.loop
}

func (e *Engine) MeasureCursor() int {
	return e.measureCursor
}
