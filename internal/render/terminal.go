package render

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"weasel/internal/model"
)

const focusMarker = "➤ "

// ColorMode controls whether frames carry ANSI colour.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("unsupported color mode: %s", s)
	}
}

// Layout fixes the geometry of a frame.
type Layout struct {
	Target      string
	Columns     int
	ColumnWidth int
}

func (l Layout) Width() int {
	return l.Columns * l.ColumnWidth
}

type styles struct {
	label    lipgloss.Style
	match    lipgloss.Style
	mismatch lipgloss.Style
	result   lipgloss.Style
	winner   lipgloss.Style
}

// Terminal draws frames for a human watching the run.
type Terminal struct {
	out      io.Writer
	output   *termenv.Output
	renderer *lipgloss.Renderer
	layout   Layout
	target   []rune
	clear    bool
	styles   styles
}

func NewTerminal(out io.Writer, layout Layout, mode ColorMode) (*Terminal, error) {
	if out == nil {
		return nil, fmt.Errorf("output writer is required")
	}
	if layout.Columns <= 0 {
		return nil, fmt.Errorf("columns must be > 0")
	}
	if layout.ColumnWidth <= len([]rune(focusMarker)) {
		return nil, fmt.Errorf("column width %d leaves no room for a genome", layout.ColumnWidth)
	}

	renderer := lipgloss.NewRenderer(out)
	switch mode {
	case ColorAlways:
		renderer.SetColorProfile(termenv.ANSI)
	case ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	}

	t := &Terminal{
		out:      out,
		output:   termenv.NewOutput(out),
		renderer: renderer,
		layout:   layout,
		target:   []rune(layout.Target),
		clear:    IsTerminal(out),
	}
	t.styles = styles{
		label:    renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Width(layout.Width()).Align(lipgloss.Center),
		match:    renderer.NewStyle().Foreground(lipgloss.Color("2")),
		mismatch: renderer.NewStyle().Foreground(lipgloss.Color("1")),
		result:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		winner:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
	}
	return t, nil
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (t *Terminal) RenderFrame(cells []model.Cell, label string) error {
	if t.clear {
		t.output.ClearScreen()
	}
	_, err := io.WriteString(t.out, t.Frame(cells, label))
	return err
}

// Frame builds the text of one frame without writing it.
func (t *Terminal) Frame(cells []model.Cell, label string) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(t.styles.label.Render(label))
	b.WriteString("\n\n")

	columns := t.layout.Columns
	rows := (len(cells) + columns - 1) / columns
	blank := strings.Repeat(" ", t.layout.ColumnWidth)
	for r := 0; r < rows; r++ {
		b.WriteString("   ")
		for c := 0; c < columns; c++ {
			idx := c*rows + r
			if idx >= len(cells) {
				b.WriteString(blank)
				continue
			}
			b.WriteString(t.cell(cells[idx]))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (t *Terminal) cell(c model.Cell) string {
	prefix := "  "
	if c.Focus {
		prefix = focusMarker
	}
	width := utf8.RuneCountInString(c.Genome)

	var body string
	switch {
	case !c.Visible:
		body = strings.Repeat(" ", width)
	case c.RevealFitness && c.Scored():
		body = t.colorize(c.Genome)
	default:
		body = c.Genome
	}

	pad := t.layout.ColumnWidth - width - len([]rune(prefix))
	if pad < 0 {
		pad = 0
	}
	return prefix + body + strings.Repeat(" ", pad)
}

func (t *Terminal) colorize(genome string) string {
	var b strings.Builder
	for i, symbol := range []rune(genome) {
		if i < len(t.target) && symbol == t.target[i] {
			b.WriteString(t.styles.match.Render(string(symbol)))
		} else {
			b.WriteString(t.styles.mismatch.Render(string(symbol)))
		}
	}
	return b.String()
}

func (t *Terminal) RenderSummary(best string, iterations int) error {
	if t.clear {
		t.output.ClearScreen()
	}
	line := fmt.Sprintf("%s %s   %s %s",
		t.styles.result.Render("Result:"),
		t.styles.winner.Render(best),
		t.styles.result.Render("Iterations:"),
		humanize.Comma(int64(iterations)),
	)
	_, err := fmt.Fprintf(t.out, "\n\n%s\n\n%s\n\n",
		t.styles.label.Render("End of the Simulation Reached!!"),
		line,
	)
	return err
}

func (t *Terminal) Delay(ctx context.Context, d time.Duration) error {
	return Sleep(ctx, d)
}
