package score

import (
	"git.lost.host/meutraa/chordbattle/internal/game"
	"go.uber.org/zap"
)

// Recorder is a judgment listener that writes every outcome of one session.
// Write failures are logged and kept so play is never interrupted.
type Recorder struct {
	store   *Store
	session string
	logger  *zap.Logger
	records []Record
	err     error
}

func (r *Recorder) Session() string {
	return r.session
}

func (r *Recorder) Hit(o game.Outcome) {
	r.record(o)
}

func (r *Recorder) Miss(o game.Outcome) {
	r.record(o)
}

func (r *Recorder) Loop(int) {}

func (r *Recorder) record(o game.Outcome) {
	r.records = append(r.records, Record{
		Seq:     o.Note.SequenceID,
		Loop:    o.Note.Loop,
		Measure: o.Note.Measure,
		Chord:   o.Note.Chord,
		Kind:    o.Kind,
		Amount:  o.Amount,
		At:      o.At,
		Offset:  o.Offset,
	})
	if err := r.store.insert(r.session, o); err != nil {
		r.logger.Warn("outcome not saved", zap.Error(err))
		if r.err == nil {
			r.err = err
		}
	}
}

// Records returns what was recorded so far, including outcomes that failed to
// save.
func (r *Recorder) Records() []Record {
	return append([]Record(nil), r.records...)
}

// Finish stores the final status of the session and reports the first write
// error, if any.
func (r *Recorder) Finish(status string) error {
	if err := r.store.finish(r.session, status); err != nil {
		return err
	}
	return r.err
}
