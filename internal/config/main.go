package config

import (
	"git.lost.host/meutraa/chordbattle/internal/instrument"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	App = kingpin.New("chordbattle", "Chord battle rhythm trainer")

	Verbose    = App.Flag("verbose", "Debug logging").Short('v').Bool()
	Database   = App.Flag("db", "Score database").Default("./scores.db").String()
	Instrument = App.Flag("instrument", "Instrument for fingering").Default(instrument.DefaultID).Short('i').Enum(instrument.IDs()...)

	Play        = App.Command("play", "Play a stage")
	StagesFile  = Play.Flag("stages", "Stage definitions (YAML), built in stages when empty").Short('f').String()
	StageNumber = Play.Flag("stage", "Stage number").Default("1-1").Short('s').String()
	Offset      = Play.Flag("offset", "Global offset").Default("0ms").Short('o').Duration()
	Delay       = Play.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	FramePeriod = Play.Flag("frame-period", "Tick period").Default("1ms").Short('p').Duration()
	Seed        = Play.Flag("seed", "Random seed, 0 picks one from the clock").Default("0").Int64()
	Audio       = Play.Flag("audio", "Play a metronome click").Bool()
	Backing     = Play.Flag("backing", "Backing track (mp3, ogg or wav), drives the clock").ExistingFile()

	Stages = App.Command("stages", "List stages")

	Tab         = App.Command("tab", "Print fingerings for a MIDI file")
	TabFile     = Tab.Arg("file", "Standard MIDI file").Required().ExistingFile()
	TabTrack    = Tab.Flag("track", "Only this track, all tracks when negative").Default("-1").Int()
	TabVertical = Tab.Flag("vertical", "Draw each fingering across all strings").Short('V').Bool()

	History      = App.Command("history", "Show recorded sessions")
	HistoryLimit = History.Flag("limit", "Number of sessions").Default("10").Short('n').Int()
)

func init() {
	App.Version("0.3.0")
	App.HelpFlag.Short('h')
}

// Parse parses the command line and returns the selected command.
func Parse(args []string) (string, error) {
	return App.Parse(args)
}
