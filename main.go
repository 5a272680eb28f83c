package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"git.lost.host/meutraa/chordbattle/internal/battle"
	"git.lost.host/meutraa/chordbattle/internal/chord"
	"git.lost.host/meutraa/chordbattle/internal/clock"
	"git.lost.host/meutraa/chordbattle/internal/config"
	"git.lost.host/meutraa/chordbattle/internal/fret"
	"git.lost.host/meutraa/chordbattle/internal/game"
	"git.lost.host/meutraa/chordbattle/internal/input"
	"git.lost.host/meutraa/chordbattle/internal/instrument"
	"git.lost.host/meutraa/chordbattle/internal/judge"
	"git.lost.host/meutraa/chordbattle/internal/score"
	"git.lost.host/meutraa/chordbattle/internal/theme"
	"github.com/eiannone/keyboard"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	command := kingpin.MustParse(config.Parse(os.Args[1:]))

	logger, err := newLogger(*config.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch command {
	case config.Play.FullCommand():
		err = play(logger)
	case config.Stages.FullCommand():
		err = listStages()
	case config.Tab.FullCommand():
		err = tab(logger)
	case config.History.FullCommand():
		err = history(logger)
	}
	if err != nil {
		logger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func loadStages() ([]config.Stage, error) {
	if *config.StagesFile != "" {
		return config.LoadStagesFile(*config.StagesFile)
	}
	return config.DefaultStages()
}

// The keyboard leaves the terminal in raw mode, so lines need a carriage return.
func emit(line string) {
	fmt.Print(line, "\r\n")
}

func play(logger *zap.Logger) error {
	stages, err := loadStages()
	if err != nil {
		return err
	}
	stage, err := config.FindStage(stages, *config.StageNumber)
	if err != nil {
		return err
	}
	keys, err := input.NewKeymap(stage.Chords())
	if err != nil {
		return errors.Wrapf(err, "stage %s", stage.Number)
	}

	seed := *config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	chartRNG, damageRNG := config.Sources(seed)
	logger = logger.With(zap.String("stage", stage.Number), zap.Int64("seed", seed))

	store, err := score.Open(*config.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	rec, err := store.Start(stage.Number, seed, time.Now())
	if err != nil {
		return err
	}

	th := theme.Default()
	b := battle.New(stage, logger)
	status := func() {
		s := b.State()
		emit(th.PlayerBar(s.PlayerHP, s.MaxHP) + "   " + th.EnemyBar(s.EnemyHP, s.MaxEnemyHP) +
			th.Dim.Render(fmt.Sprintf("  enemy %d/%d", min(s.Enemy+1, s.EnemyCount), s.EnemyCount)))
	}
	printer := judge.Funcs{
		OnHit:  func(o game.Outcome) { emit(th.Outcome(o)) },
		OnMiss: func(o game.Outcome) { emit(th.Outcome(o)) },
		OnLoop: func(loop int) {
			emit(th.LoopLine(loop))
			status()
		},
	}
	engine := judge.New(stage.Generator(chartRNG), judge.Listeners{b, rec, printer},
		judge.WithLogger(logger),
		judge.WithAmount(battle.Damage(stage, damageRNG)),
	)

	src, stop, err := transport(stage)
	if err != nil {
		return err
	}
	defer stop()

	keyChannel, err := keyboard.GetKeys(128)
	if err != nil {
		return errors.Wrap(err, "unable to read keyboard")
	}
	defer func() {
		if err := keyboard.Close(); err != nil {
			logger.Warn("unable to restore keyboard", zap.Error(err))
		}
	}()

	emit(th.Title.Render(fmt.Sprintf("%s  %s", stage.Number, stage.Name)) + "  " + th.Dim.Render(stage.Description))
	emit(th.Legend(keys.Bindings()))
	status()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	countIn := stage.Signature().CountIn()
	last := time.Duration(0)
	err = clock.Run(ctx, src, *config.FramePeriod, func(now time.Duration) bool {
		if now < 0 {
			return true
		}
		engine.Tick(now)

		for len(keyChannel) > 0 {
			key := <-keyChannel
			if key.Err != nil {
				logger.Warn("keyboard error", zap.Error(key.Err))
				continue
			}
			if key.Key == keyboard.KeyEsc || key.Key == keyboard.KeyCtrlC {
				return false
			}
			c, ok := keys.Chord(key.Rune)
			if !ok {
				continue
			}
			engine.Judge(game.Input{Chord: c, At: now})
		}

		if now > countIn && last > 0 {
			if attacks := b.Advance(now - max(last, countIn)); attacks > 0 {
				emit(th.Miss.Render(fmt.Sprintf("enemy attacks  -%d hp", attacks*battle.EnemyAttack)))
				status()
			}
		}
		last = now
		return !b.Done()
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	result := b.Status()
	summary := score.Summarize(rec.Records())
	emit(th.Title.Render(fmt.Sprintf("stage %s %s", stage.Number, result)))
	emit(fmt.Sprintf("hits %d  misses %d  accuracy %5.1f%%  mean %+6.2fms  stdev %6.2fms",
		summary.Hits, summary.Misses, summary.Accuracy()*100, summary.Mean, summary.Stdev))
	logger.Info("session finished",
		zap.String("session", rec.Session()),
		zap.Stringer("result", result),
		zap.Int("hits", summary.Hits),
		zap.Int("misses", summary.Misses),
	)
	return rec.Finish(result.String())
}

// transport picks the musical time source. With audio enabled the speaker
// drives time, otherwise the wall clock does.
func transport(stage config.Stage) (clock.Source, func(), error) {
	if !*config.Audio && *config.Backing == "" {
		return clock.NewWall(*config.Delay, *config.Offset), func() {}, nil
	}

	format := clock.DefaultFormat
	streamers := []beep.Streamer{beep.Silence(-1)}
	closers := []func(){}
	if *config.Backing != "" {
		s, f, err := clock.Decode(*config.Backing)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { s.Close() })
		format = f
		streamers = append(streamers, s)
	}
	if *config.Audio {
		streamers = append(streamers, clock.Metronome(format, stage.Signature()))
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); err != nil {
		for _, c := range closers {
			c()
		}
		return nil, nil, errors.Wrap(err, "unable to open audio device")
	}
	stream := clock.NewStream(format, beep.Mix(streamers...), *config.Delay, *config.Offset)
	speaker.Play(stream)

	return stream, func() {
		speaker.Clear()
		for _, c := range closers {
			c()
		}
	}, nil
}

func listStages() error {
	stages, err := loadStages()
	if err != nil {
		return err
	}
	th := theme.Default()
	for _, s := range stages {
		fmt.Printf("%s %s\n", th.Title.Render(fmt.Sprintf("%-6s", s.Number)), s.Name)
		fmt.Printf("       %s\n", th.Dim.Render(fmt.Sprintf("%s, %g bpm, %d beats, %d measures, %v",
			s.Mode, s.BPM, s.BeatsPerMeasure, s.MeasureCount, s.Chords())))
	}
	return nil
}

func tab(logger *zap.Logger) error {
	f, err := os.Open(*config.TabFile)
	if err != nil {
		return errors.Wrap(err, "unable to open midi file")
	}
	defer f.Close()

	events, err := input.ReadMIDI(f)
	if err != nil {
		return err
	}

	profile := instrument.Lookup(*config.Instrument)
	resolver := fret.NewResolver(profile, logger)
	th := theme.Default()
	fmt.Println(th.Title.Render(profile.Name))

	unplayable := 0
	for _, ev := range events {
		if *config.TabTrack >= 0 && ev.Track != *config.TabTrack {
			continue
		}
		c, ok := resolver.Resolve(ev.ID, ev.Pitch)
		if !ok {
			unplayable++
		}
		label := fmt.Sprintf("%9.3fs  t%-2d %-4s", ev.At.Seconds(), ev.Track, chord.NoteName(ev.Pitch))
		fmt.Print(th.Fingering(label, profile, c, ok, *config.TabVertical))
	}
	if unplayable > 0 {
		fmt.Println(th.Unplayable.Render(fmt.Sprintf("%d notes out of range", unplayable)))
	}
	return nil
}

func history(logger *zap.Logger) error {
	store, err := score.Open(*config.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.Sessions(*config.HistoryLimit)
	if err != nil {
		return err
	}
	th := theme.Default()
	for _, s := range sessions {
		records, err := store.Outcomes(s.ID)
		if err != nil {
			return err
		}
		sum := score.Summarize(records)
		status := s.Status
		if status == "" {
			status = "abandoned"
		}
		fmt.Printf("%s  %-6s %-9s hits %3d  misses %3d  %5.1f%%  mean %+6.2fms  stdev %6.2fms  %s\n",
			s.Started.Format("2006-01-02 15:04"), s.Stage, status,
			sum.Hits, sum.Misses, sum.Accuracy()*100, sum.Mean, sum.Stdev,
			th.Dim.Render(s.ID[:8]))
	}
	return nil
}
