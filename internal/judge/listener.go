package judge

import "git.lost.host/meutraa/chordbattle/internal/game"

// Listener receives the engine's outcomes. Consumers own any health or
// gauge state and change it only from these callbacks.
type Listener interface {
	Hit(o game.Outcome)
	Miss(o game.Outcome)
	// Loop is called when a new loop starts, or the same loop is re-entered
	// after a seek.
	Loop(loop int)
}

// Listeners fans every callback out in order.
type Listeners []Listener

func (ls Listeners) Hit(o game.Outcome) {
	for _, l := range ls {
		l.Hit(o)
	}
}

func (ls Listeners) Miss(o game.Outcome) {
	for _, l := range ls {
		l.Miss(o)
	}
}

func (ls Listeners) Loop(loop int) {
	for _, l := range ls {
		l.Loop(loop)
	}
}

// Funcs adapts plain functions to a Listener, nil fields are ignored.
type Funcs struct {
	OnHit  func(game.Outcome)
	OnMiss func(game.Outcome)
	OnLoop func(int)
}

func (f Funcs) Hit(o game.Outcome) {
	if f.OnHit != nil {
		f.OnHit(o)
	}
}

func (f Funcs) Miss(o game.Outcome) {
	if f.OnMiss != nil {
		f.OnMiss(o)
	}
}

func (f Funcs) Loop(loop int) {
	if f.OnLoop != nil {
		f.OnLoop(loop)
	}
}
