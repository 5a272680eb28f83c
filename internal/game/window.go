package game

import "time"

// WindowRadius is the distance either side of a note's time inside which
// input may be judged a hit.
const WindowRadius = 200 * time.Millisecond

type Window struct {
	Center time.Duration
	Start  time.Duration
	End    time.Duration
}

func NewWindow(center time.Duration) Window {
	return Window{
		Center: center,
		Start:  center - WindowRadius,
		End:    center + WindowRadius,
	}
}

// Contains reports whether t is within WindowRadius of the center, edges included.
func (w Window) Contains(t time.Duration) bool {
	return Abs(t-w.Center) <= WindowRadius
}

// Expired reports whether t has moved past the end of the window.
func (w Window) Expired(t time.Duration) bool {
	return t > w.End
}

func Abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}
