// Package config holds the command line flags and the stage definitions.
package config

import (
	"bytes"
	_ "embed"
	"io"
	"math/rand"
	"os"

	"git.lost.host/meutraa/chordbattle/internal/chord"
	"git.lost.host/meutraa/chordbattle/internal/game"
	"git.lost.host/meutraa/chordbattle/internal/generator"
	"git.lost.host/meutraa/chordbattle/internal/timing"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed stages.yaml
var defaultStages []byte

const (
	damageSalt             = 0x5DEECE66D
	defaultBeatsPerMeasure = 4
	defaultMeasureCount    = 8
)

type Stage struct {
	Number            string    `yaml:"stage_number"`
	Name              string    `yaml:"name"`
	Description       string    `yaml:"description"`
	MaxHP             int       `yaml:"max_hp"`
	EnemyGaugeSeconds float64   `yaml:"enemy_gauge_seconds"`
	Mode              game.Mode `yaml:"mode"`
	AllowedChords     []string  `yaml:"allowed_chords"`
	ChordProgression  []string  `yaml:"chord_progression"`
	EnemyCount        int       `yaml:"enemy_count"`
	EnemyHP           int       `yaml:"enemy_hp"`
	MinDamage         int       `yaml:"min_damage"`
	MaxDamage         int       `yaml:"max_damage"`

	BPM             float64 `yaml:"bpm"`
	BeatsPerMeasure int     `yaml:"beats_per_measure"`
	CountInMeasures int     `yaml:"count_in_measures"`
	MeasureCount    int     `yaml:"measure_count"`
}

type stageFile struct {
	Stages []Stage `yaml:"stages"`
}

// LoadStages decodes and validates every stage in r.
func LoadStages(r io.Reader) ([]Stage, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f stageFile
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "unable to decode stages")
	}
	if len(f.Stages) == 0 {
		return nil, errors.New("no stages defined")
	}

	seen := map[string]bool{}
	for i := range f.Stages {
		s := &f.Stages[i]
		s.applyDefaults()
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if seen[s.Number] {
			return nil, errors.Errorf("stage %s: defined twice", s.Number)
		}
		seen[s.Number] = true
	}
	return f.Stages, nil
}

func LoadStagesFile(path string) ([]Stage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open stage file")
	}
	defer f.Close()
	return LoadStages(f)
}

// DefaultStages returns the built in stage set.
func DefaultStages() ([]Stage, error) {
	return LoadStages(bytes.NewReader(defaultStages))
}

func FindStage(stages []Stage, number string) (Stage, error) {
	for _, s := range stages {
		if s.Number == number {
			return s, nil
		}
	}
	return Stage{}, errors.Errorf("stage %s not found", number)
}

func (s *Stage) applyDefaults() {
	switch s.Mode {
	case "", "single":
		s.Mode = game.ModeRandom
	}
	if s.BeatsPerMeasure == 0 {
		s.BeatsPerMeasure = defaultBeatsPerMeasure
	}
	if s.MeasureCount == 0 {
		s.MeasureCount = defaultMeasureCount
	}
}

// Validate rejects stages the engine cannot run. The engine assumes its
// inputs are consistent, so this must pass before the first tick.
func (s Stage) Validate() error {
	if s.Number == "" {
		return errors.New("stage without stage_number")
	}
	fail := func(format string, args ...interface{}) error {
		return errors.Errorf("stage %s: "+format, append([]interface{}{s.Number}, args...)...)
	}

	if !s.Mode.Valid() {
		return fail("unknown mode %q", s.Mode)
	}
	if s.BPM <= 0 {
		return fail("bpm must be positive, got %v", s.BPM)
	}
	if s.BeatsPerMeasure <= 0 {
		return fail("beats_per_measure must be positive, got %d", s.BeatsPerMeasure)
	}
	if s.CountInMeasures < 0 {
		return fail("count_in_measures must not be negative, got %d", s.CountInMeasures)
	}
	if s.MeasureCount <= 0 {
		return fail("measure_count must be positive, got %d", s.MeasureCount)
	}

	var symbols []string
	switch s.Mode {
	case game.ModeProgression:
		if len(s.ChordProgression) == 0 {
			return fail("progression mode needs a chord_progression")
		}
		symbols = s.ChordProgression
	default:
		if len(s.AllowedChords) == 0 {
			return fail("%s mode needs allowed_chords", s.Mode)
		}
		symbols = s.AllowedChords
	}
	for i, sym := range symbols {
		if _, err := chord.Parse(sym); err != nil {
			return errors.Wrapf(err, "stage %s", s.Number)
		}
		if s.Mode == game.ModeProgression {
			continue
		}
		for _, prev := range symbols[:i] {
			if chord.Equal(prev, sym) {
				return fail("allowed_chords lists %s and %s, the same chord", prev, sym)
			}
		}
	}

	if s.MaxHP <= 0 {
		return fail("max_hp must be positive, got %d", s.MaxHP)
	}
	if s.EnemyCount <= 0 || s.EnemyHP <= 0 {
		return fail("enemy_count and enemy_hp must be positive")
	}
	if s.MinDamage <= 0 || s.MaxDamage < s.MinDamage {
		return fail("damage range [%d, %d] is invalid", s.MinDamage, s.MaxDamage)
	}
	if s.EnemyGaugeSeconds < 0 {
		return fail("enemy_gauge_seconds must not be negative")
	}
	return nil
}

func (s Stage) Signature() timing.Signature {
	return timing.Signature{
		BPM:             s.BPM,
		BeatsPerMeasure: s.BeatsPerMeasure,
		CountInMeasures: s.CountInMeasures,
	}
}

// Generator builds the note generator for the stage.
func (s Stage) Generator(rng *rand.Rand) *generator.Generator {
	return generator.New(s.Signature(), s.MeasureCount, s.Mode, s.AllowedChords, s.ChordProgression, rng)
}

// Sources splits one session seed into a source for the chart and a source
// for damage rolls. The chart then depends on the seed alone, however many
// hits were rolled in between.
func Sources(seed int64) (chart, damage *rand.Rand) {
	return rand.New(rand.NewSource(seed)), rand.New(rand.NewSource(seed ^ damageSalt))
}

// Chords lists the chords a player may be asked for, in file order.
func (s Stage) Chords() []string {
	if s.Mode == game.ModeProgression {
		out := []string{}
		seen := map[string]bool{}
		for _, c := range s.ChordProgression {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
		return out
	}
	return s.AllowedChords
}
