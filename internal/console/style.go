package console

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// palette holds the styles used for console output. Styles are bound to
// a renderer for the session's writer, so output to a pipe or buffer
// carries no escape sequences.
type palette struct {
	banner  lipgloss.Style
	header  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	notice  lipgloss.Style
	dim     lipgloss.Style
}

func newPalette(out io.Writer) palette {
	r := lipgloss.NewRenderer(out)
	return palette{
		banner: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 8),
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		success: r.NewStyle().Foreground(lipgloss.Color("#3FB950")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		notice:  r.NewStyle().Foreground(lipgloss.Color("#E3B341")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
