package fret

const (
	movementWeight   = 2
	stringJumpWeight = 3
	openStringBonus  = 2
	repetitionCost   = 20
	repetitionRun    = 3 // Transitions in one direction before the slide penalty
)

// Score rates a candidate against the history, higher is better.
func Score(c Candidate, h *History) int {
	score := 0
	if last, ok := h.Last(); ok {
		score -= movementWeight * abs(c.Fret-last.Fret)
		if jump := abs(c.StringIx - last.StringIx); jump > 1 {
			score -= stringJumpWeight * jump
		}
	}
	if c.Fret == 0 {
		score += openStringBonus
	}
	if slides(c, h) {
		score -= repetitionCost
	}
	return score
}

// slides reports whether c would extend a strictly monotonic run along a
// single string across the last three accepted positions.
func slides(c Candidate, h *History) bool {
	recent := h.Recent(repetitionRun)
	if len(recent) < repetitionRun {
		return false
	}
	points := append(recent, c)
	up, down := true, true
	for i := 1; i < len(points); i++ {
		if points[i].StringIx != points[0].StringIx {
			return false
		}
		d := points[i].Fret - points[i-1].Fret
		up = up && d > 0
		down = down && d < 0
	}
	return up || down
}

// SelectBest returns the highest scoring candidate, the earliest one on ties.
// candidates must not be empty. The history is not modified.
func SelectBest(candidates []Candidate, h *History) Candidate {
	best := candidates[0]
	bestScore := Score(best, h)
	for _, c := range candidates[1:] {
		if s := Score(c, h); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
