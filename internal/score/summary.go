package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/chordbattle/internal/game"
)

type Summary struct {
	Hits   int
	Misses int
	Mean   float64 // Milliseconds, signed
	Stdev  float64 // Milliseconds
	Grades []int   // Hit count per game.Judgements entry
}

func (s Summary) Accuracy() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func Summarize(records []Record) Summary {
	s := Summary{Grades: make([]int, len(game.Judgements))}

	diffs := []float64{}
	for _, r := range records {
		if r.Kind != game.Hit {
			s.Misses++
			continue
		}
		s.Hits++
		if i, j := game.Grade(r.Offset); j != nil {
			s.Grades[i]++
		}
		diffs = append(diffs, float64(r.Offset)/float64(time.Millisecond))
	}
	if len(diffs) == 0 {
		return s
	}

	sum := 0.0
	for _, d := range diffs {
		sum += d
	}
	s.Mean = sum / float64(len(diffs))
	if len(diffs) > 1 {
		for _, d := range diffs {
			xi := d - s.Mean
			s.Stdev += xi * xi
		}
		s.Stdev /= float64(len(diffs) - 1)
		s.Stdev = math.Sqrt(s.Stdev)
	}
	return s
}
