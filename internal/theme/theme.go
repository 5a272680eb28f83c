// Package theme styles the lines the command line client prints.
package theme

import (
	"fmt"
	"os"
	"strings"

	"git.lost.host/meutraa/chordbattle/internal/chord"
	"git.lost.host/meutraa/chordbattle/internal/fret"
	"git.lost.host/meutraa/chordbattle/internal/game"
	"git.lost.host/meutraa/chordbattle/internal/input"
	"git.lost.host/meutraa/chordbattle/internal/instrument"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const fallbackWidth = 80

var (
	red    = lipgloss.Color("#EC1E00")
	blue   = lipgloss.Color("#0076EC")
	purple = lipgloss.Color("#6A00EC")
	yellow = lipgloss.Color("#ECC300")
	green  = lipgloss.Color("#00EC80")
	grey   = lipgloss.Color("#6A6A6A")
)

// gradeColors follow game.Judgements, tightest first.
var gradeColors = []lipgloss.Color{green, blue, yellow}

type Theme struct {
	Title      lipgloss.Style
	Hit        lipgloss.Style
	Miss       lipgloss.Style
	Loop       lipgloss.Style
	Dim        lipgloss.Style
	Fret       lipgloss.Style
	Unplayable lipgloss.Style
	Width      int
}

func Default() Theme {
	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(purple),
		Hit:        lipgloss.NewStyle().Foreground(green),
		Miss:       lipgloss.NewStyle().Foreground(red).Bold(true),
		Loop:       lipgloss.NewStyle().Foreground(purple),
		Dim:        lipgloss.NewStyle().Foreground(grey),
		Fret:       lipgloss.NewStyle().Foreground(yellow).Bold(true),
		Unplayable: lipgloss.NewStyle().Foreground(red).Faint(true),
		Width:      Width(os.Stdout),
	}
}

// Width is the terminal width of f, or 80 when f is not a terminal.
func Width(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth
	}
	columns, _, err := term.GetSize(fd)
	if err != nil || columns <= 0 {
		return fallbackWidth
	}
	return columns
}

func (t Theme) Outcome(o game.Outcome) string {
	if o.Kind == game.Miss {
		return t.Miss.Render(fmt.Sprintf("MISS  %-6s m%d  -%d hp", o.Note.Chord, o.Note.Measure+1, o.Amount))
	}
	name := "Good"
	style := t.Hit
	if i, j := game.Grade(o.Offset); j != nil {
		name = j.Name
		style = style.Foreground(gradeColors[i%len(gradeColors)])
	}
	return style.Render(fmt.Sprintf("%-7s %-6s m%d  %+4dms  -%d enemy hp",
		strings.ToUpper(name), o.Note.Chord, o.Note.Measure+1, o.Offset.Milliseconds(), o.Amount))
}

func (t Theme) LoopLine(loop int) string {
	rule := strings.Repeat("─", max(0, min(t.Width, 40)-12))
	return t.Loop.Render(fmt.Sprintf("loop %-3d %s", loop+1, rule))
}

// Bar draws a fixed width meter such as a health bar.
func (t Theme) Bar(label string, cur, total, width int, color lipgloss.Color) string {
	if total <= 0 {
		total = 1
	}
	cur = max(0, min(cur, total))
	filled := cur * width / total
	return fmt.Sprintf("%-6s %s%s %d/%d", label,
		lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)),
		t.Dim.Render(strings.Repeat("░", width-filled)),
		cur, total)
}

func (t Theme) PlayerBar(cur, total int) string {
	return t.Bar("you", cur, total, 20, green)
}

func (t Theme) EnemyBar(cur, total int) string {
	return t.Bar("enemy", cur, total, 20, red)
}

// Tab renders one fingering as a column of strings, highest string first,
// the way tablature is written.
func (t Theme) Tab(p instrument.Profile, c fret.Candidate) string {
	var b strings.Builder
	for i, s := range p.Strings {
		name := chord.NoteName(s.Open)
		cell := t.Dim.Render("--")
		if i == c.StringIx {
			cell = t.Fret.Render(fmt.Sprintf("%2d", c.Fret))
		}
		fmt.Fprintf(&b, "%-4s|%s|\n", name, cell)
	}
	return b.String()
}

// TabLine renders a fingering as a single "string/fret" token.
func (t Theme) TabLine(ev string, c fret.Candidate, ok bool) string {
	if !ok {
		return fmt.Sprintf("%s %s", ev, t.Unplayable.Render("unplayable"))
	}
	return fmt.Sprintf("%s %s", ev, t.Fret.Render(fmt.Sprintf("s%d/f%d", c.StringIx+1, c.Fret)))
}

// Fingering renders a resolved note for the tab command, one line per note,
// followed by the full string diagram when vertical is set.
func (t Theme) Fingering(label string, p instrument.Profile, c fret.Candidate, ok, vertical bool) string {
	line := t.TabLine(label, c, ok)
	if ok && c.Octaves != 0 {
		line += t.Dim.Render(fmt.Sprintf("  %+d oct", c.Octaves))
	}
	line += "\n"
	if ok && vertical {
		line += t.Tab(p, c)
	}
	return line
}

func (t Theme) Legend(bindings []input.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("%s %s", t.Fret.Render(string(b.Key)), b.Chord))
	}
	return t.Dim.Render("keys: ") + strings.Join(parts, "  ")
}
