package fret

// HistorySize is how many accepted positions the optimizer remembers.
const HistorySize = 4

// History is the optimizer's memory of recently accepted positions. It is
// owned by a single caller and is reset, never rolled back, on instrument
// switch or seek.
type History struct {
	entries [HistorySize]Candidate
	start   int
	count   int
}

// Push records an accepted position, evicting the oldest when full.
func (h *History) Push(c Candidate) {
	if h.count < HistorySize {
		h.entries[(h.start+h.count)%HistorySize] = c
		h.count++
		return
	}
	h.entries[h.start] = c
	h.start = (h.start + 1) % HistorySize
}

// Last is the movement anchor, the most recently accepted position.
func (h *History) Last() (Candidate, bool) {
	if h.count == 0 {
		return Candidate{}, false
	}
	return h.entries[(h.start+h.count-1)%HistorySize], true
}

// Recent returns up to n positions, oldest first.
func (h *History) Recent(n int) []Candidate {
	if n > h.count {
		n = h.count
	}
	out := make([]Candidate, n)
	for i := 0; i < n; i++ {
		out[i] = h.entries[(h.start+h.count-n+i)%HistorySize]
	}
	return out
}

func (h *History) Len() int {
	return h.count
}

func (h *History) Reset() {
	*h = History{}
}
