// Package timing maps absolute musical time onto measures, beats and loops.
// Every function is stateless so callers can recompute from the transport
// clock on each tick without accumulating drift.
package timing

import (
	"time"
)

type Signature struct {
	BPM             float64
	BeatsPerMeasure int
	CountInMeasures int
}

// Position is where a moment in time falls in the stage.
type Position struct {
	Raw     int // Measures since time zero, count-in included
	Measure int // Musical measure, 0 during the count-in
	Beat    int // Beat within the current measure
	CountIn bool
}

func (s Signature) Beat() time.Duration {
	return time.Duration(float64(time.Minute) / s.BPM)
}

func (s Signature) Measure() time.Duration {
	return time.Duration(float64(time.Minute) * float64(s.BeatsPerMeasure) / s.BPM)
}

// CountIn is the time the first musical measure starts.
func (s Signature) CountIn() time.Duration {
	return time.Duration(s.CountInMeasures) * s.Measure()
}

// Map locates elapsed within the measure grid.
func (s Signature) Map(elapsed time.Duration) Position {
	measure := s.Measure()
	raw := floorDiv(elapsed, measure)

	beat := int((elapsed - time.Duration(raw)*measure) / s.Beat())
	if beat >= s.BeatsPerMeasure {
		beat = s.BeatsPerMeasure - 1
	}

	m := raw - s.CountInMeasures
	if m < 0 {
		m = 0
	}
	return Position{
		Raw:     raw,
		Measure: m,
		Beat:    beat,
		CountIn: raw < s.CountInMeasures,
	}
}

// Loop returns the loop index and the measure within that loop. The count-in
// belongs to loop 0.
func (s Signature) Loop(elapsed time.Duration, measureCount int) (int, int) {
	pos := s.Map(elapsed)
	return pos.Measure / measureCount, pos.Measure % measureCount
}

// MeasureStart is the time measure m of loop starts.
func (s Signature) MeasureStart(loop, m, measureCount int) time.Duration {
	return time.Duration(s.CountInMeasures+loop*measureCount+m) * s.Measure()
}

// LoopStart is the time the first measure of loop starts.
func (s Signature) LoopStart(loop, measureCount int) time.Duration {
	return s.MeasureStart(loop, 0, measureCount)
}

func floorDiv(a, b time.Duration) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return int(q)
}
