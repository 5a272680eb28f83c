package fret

import (
	"git.lost.host/meutraa/chordbattle/internal/chord"
	"git.lost.host/meutraa/chordbattle/internal/instrument"
	"go.uber.org/zap"
)

// resolvedCap bounds how many resolved notes are remembered for re-queries.
const resolvedCap = 64

// Resolver turns note events into fingerings for one instrument, updating
// the history exactly once per note id.
type Resolver struct {
	profile instrument.Profile
	history History
	logger  *zap.Logger

	resolved map[int]resolution
	order    []int
}

type resolution struct {
	candidate Candidate
	ok        bool
}

func NewResolver(p instrument.Profile, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		profile:  p,
		logger:   logger,
		resolved: map[int]resolution{},
	}
}

func (r *Resolver) Profile() instrument.Profile {
	return r.profile
}

func (r *Resolver) History() *History {
	return &r.history
}

// SetProfile switches instrument, forgetting all history.
func (r *Resolver) SetProfile(p instrument.Profile) {
	r.profile = p
	r.Reset()
}

// Reset clears history and remembered notes, used on seek or loop boundaries.
func (r *Resolver) Reset() {
	r.history.Reset()
	r.resolved = map[int]resolution{}
	r.order = r.order[:0]
}

// Resolve places the note identified by id. A false result means the pitch
// is unplayable and the note should be skipped. Asking again for an id that
// was already resolved returns the same answer without touching the history.
func (r *Resolver) Resolve(id, pitch int) (Candidate, bool) {
	if res, ok := r.resolved[id]; ok {
		return res.candidate, res.ok
	}

	var res resolution
	candidates := FindPositions(r.profile, pitch)
	if len(candidates) == 0 {
		r.logger.Debug("pitch unplayable, dropping note",
			zap.Int("id", id),
			zap.String("pitch", chord.NoteName(pitch)),
			zap.String("instrument", r.profile.ID),
		)
	} else {
		res = resolution{candidate: SelectBest(candidates, &r.history), ok: true}
		r.history.Push(res.candidate)
		r.logger.Debug("resolved fingering",
			zap.Int("id", id),
			zap.String("pitch", chord.NoteName(pitch)),
			zap.Stringer("position", res.candidate),
			zap.Int("octaves", res.candidate.Octaves),
		)
	}

	r.remember(id, res)
	return res.candidate, res.ok
}

func (r *Resolver) remember(id int, res resolution) {
	if len(r.order) >= resolvedCap {
		delete(r.resolved, r.order[0])
		r.order = r.order[1:]
	}
	r.resolved[id] = res
	r.order = append(r.order, id)
}
