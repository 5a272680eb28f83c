// Package clock drives the judgment engine from a transport time source.
package clock

import (
	"context"
	"time"
)

// Source reports the current musical time, measured from transport start.
type Source interface {
	Now() time.Duration
}

// Wall is a Source following the system clock.
type Wall struct {
	start  time.Time
	offset time.Duration
	now    func() time.Time
}

// NewWall starts the transport after delay. The offset shifts every reading
// and is how a player compensates for input latency.
func NewWall(delay, offset time.Duration) *Wall {
	return newWall(time.Now, delay, offset)
}

func newWall(now func() time.Time, delay, offset time.Duration) *Wall {
	return &Wall{
		start:  now().Add(delay),
		offset: offset,
		now:    now,
	}
}

func (w *Wall) Now() time.Duration {
	return w.now().Sub(w.start) + w.offset
}

// Run calls tick with the source's time once per period until tick returns
// false or ctx is done. A slow tick shortens the following sleep rather than
// delaying every later frame.
func Run(ctx context.Context, src Source, period time.Duration, tick func(now time.Duration) bool) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		frameStart := time.Now()
		deadline := frameStart.Add(period)

		if !tick(src.Now()) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		timer.Reset(time.Until(deadline))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}
