// Package score persists judgment outcomes of play sessions and summarizes
// timing accuracy.
package score

import (
	"database/sql"
	"time"

	"git.lost.host/meutraa/chordbattle/internal/game"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const schema = `
create table if not exists sessions
  (
	  id text not null primary key,
	  stage text not null,
	  seed integer not null,
	  started integer not null,
	  status text not null default ''
  );
create table if not exists outcomes
  (
	  id integer not null primary key,
	  session text not null references sessions(id),
	  seq integer not null,
	  loop integer not null,
	  measure integer not null,
	  chord text not null,
	  kind integer not null,
	  amount integer not null,
	  at integer not null,
	  hit_offset integer not null
  );
create index if not exists outcomes_session on outcomes(session);
`

type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

type Session struct {
	ID      string
	Stage   string
	Seed    int64
	Started time.Time
	Status  string
}

// Record is one stored outcome.
type Record struct {
	Seq     int
	Loop    int
	Measure int
	Chord   string
	Kind    game.Kind
	Amount  int
	At      time.Duration
	Offset  time.Duration
}

func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "unable to create score tables")
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Start registers a new session and returns a recorder writing into it.
func (s *Store) Start(stage string, seed int64, started time.Time) (*Recorder, error) {
	id := uuid.NewString()
	_, err := s.db.Exec("insert into sessions(id, stage, seed, started) values(?, ?, ?, ?)",
		id, stage, seed, started.UnixNano())
	if err != nil {
		return nil, errors.Wrap(err, "unable to start session")
	}
	return &Recorder{
		store:   s,
		session: id,
		logger:  s.logger.With(zap.String("session", id)),
	}, nil
}

func (s *Store) insert(session string, o game.Outcome) error {
	_, err := s.db.Exec(
		"insert into outcomes(session, seq, loop, measure, chord, kind, amount, at, hit_offset) values(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		session, o.Note.SequenceID, o.Note.Loop, o.Note.Measure, o.Note.Chord, int(o.Kind), o.Amount, int64(o.At), int64(o.Offset),
	)
	return errors.Wrap(err, "unable to save outcome")
}

func (s *Store) finish(session, status string) error {
	_, err := s.db.Exec("update sessions set status = ? where id = ?", status, session)
	return errors.Wrap(err, "unable to finish session")
}

// Sessions returns the most recent sessions, newest first.
func (s *Store) Sessions(limit int) ([]Session, error) {
	rows, err := s.db.Query("select id, stage, seed, started, status from sessions order by started desc limit ?", limit)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load sessions")
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var ss Session
		var started int64
		if err := rows.Scan(&ss.ID, &ss.Stage, &ss.Seed, &started, &ss.Status); err != nil {
			return nil, errors.Wrap(err, "unable to read session")
		}
		ss.Started = time.Unix(0, started)
		sessions = append(sessions, ss)
	}
	return sessions, errors.Wrap(rows.Err(), "unable to load sessions")
}

// Outcomes returns the outcomes of a session in the order they happened.
func (s *Store) Outcomes(session string) ([]Record, error) {
	rows, err := s.db.Query("select seq, loop, measure, chord, kind, amount, at, hit_offset from outcomes where session = ? order by id", session)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load outcomes")
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		var kind int
		var at, offset int64
		if err := rows.Scan(&r.Seq, &r.Loop, &r.Measure, &r.Chord, &kind, &r.Amount, &at, &offset); err != nil {
			return nil, errors.Wrap(err, "unable to read outcome")
		}
		r.Kind = game.Kind(kind)
		r.At = time.Duration(at)
		r.Offset = time.Duration(offset)
		records = append(records, r)
	}
	return records, errors.Wrap(rows.Err(), "unable to load outcomes")
}
