package theme

import (
	"os"
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/chordbattle/internal/fret"
	"git.lost.host/meutraa/chordbattle/internal/game"
	"git.lost.host/meutraa/chordbattle/internal/input"
	"git.lost.host/meutraa/chordbattle/internal/instrument"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidthWithoutTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, fallbackWidth, Width(f))
}

func TestOutcome(t *testing.T) {
	th := Default()
	note := game.RhythmNote{Measure: 2, Chord: "Am"}

	hit := th.Outcome(game.Outcome{Kind: game.Hit, Note: note, Amount: 2, Offset: -30 * time.Millisecond})
	assert.Contains(t, hit, "PERFECT")
	assert.Contains(t, hit, "Am")
	assert.Contains(t, hit, "-30ms")

	great := th.Outcome(game.Outcome{Kind: game.Hit, Note: note, Amount: 1, Offset: 150 * time.Millisecond})
	assert.Contains(t, great, "GOOD")

	miss := th.Outcome(game.Outcome{Kind: game.Miss, Note: note, Amount: 1})
	assert.Contains(t, miss, "MISS")
	assert.Contains(t, miss, "m3")
}

func TestBarClamps(t *testing.T) {
	th := Default()
	assert.Contains(t, th.Bar("hp", 9, 5, 10, lipgloss.Color("#fff")), "5/5")
	assert.Contains(t, th.Bar("hp", -1, 5, 10, lipgloss.Color("#fff")), "0/5")
}

func TestTab(t *testing.T) {
	th := Default()
	p := instrument.Lookup(instrument.Guitar)
	out := th.Tab(p, fret.Candidate{StringIx: 1, Fret: 3})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "E4"))
	assert.Contains(t, lines[1], " 3")
	assert.True(t, strings.HasPrefix(lines[5], "E2"))

	assert.Contains(t, th.TabLine("C5", fret.Candidate{StringIx: 1, Fret: 1}, true), "s2/f1")
	assert.Contains(t, th.TabLine("C9", fret.Candidate{}, false), "unplayable")
}

func TestLegend(t *testing.T) {
	out := Default().Legend([]input.Binding{{Key: 'a', Chord: "C"}, {Key: 's', Chord: "G7"}})
	assert.Contains(t, out, "C")
	assert.Contains(t, out, "G7")
}

func TestFingering(t *testing.T) {
	th := Default()
	p := instrument.Lookup(instrument.Guitar)
	c := fret.Candidate{StringIx: 0, Fret: 5, Octaves: -1}

	flat := th.Fingering("A5", p, c, true, false)
	assert.Equal(t, 1, strings.Count(flat, "\n"))
	assert.Contains(t, flat, "s1/f5")
	assert.Contains(t, flat, "-1 oct")

	vertical := th.Fingering("A5", p, c, true, true)
	lines := strings.Split(strings.TrimSuffix(vertical, "\n"), "\n")
	require.Len(t, lines, 1+len(p.Strings))
	assert.True(t, strings.HasPrefix(lines[1], "E4"))
	assert.Contains(t, lines[1], " 5")

	missing := th.Fingering("C9", p, fret.Candidate{}, false, true)
	assert.Equal(t, 1, strings.Count(missing, "\n"), "no diagram for an unplayable note")
}
