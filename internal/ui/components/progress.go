package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/vinyl_player/internal/progress"
)

// ProgressBar shows the played share of the track between the current and
// total time, and maps clicks on the bar back to a ratio.
type ProgressBar struct {
	Width       int
	Report      progress.Report
	BarChar     string
	EmptyChar   string
	FilledStyle lipgloss.Style
	EmptyStyle  lipgloss.Style
	TimeStyle   lipgloss.Style
}

// NewProgressBar creates a new progress bar
func NewProgressBar(width int) ProgressBar {
	return ProgressBar{
		Width:       width,
		Report:      progress.Reset(0),
		BarChar:     "━",
		EmptyChar:   "─",
		FilledStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#1DB954")),
		EmptyStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		TimeStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
}

// SetReport replaces the readout.
func (p *ProgressBar) SetReport(r progress.Report) {
	p.Report = r
}

func (p ProgressBar) barStart() int {
	return lipgloss.Width(p.Report.CurrentText) + 1
}

func (p ProgressBar) barWidth() int {
	w := p.Width - lipgloss.Width(p.Report.CurrentText) - lipgloss.Width(p.Report.TotalText) - 2
	if w < 10 {
		w = 10
	}
	return w
}

// RatioAt maps a click column to a position in [0,1]. Clicks outside the bar
// report false.
func (p ProgressBar) RatioAt(x int) (float64, bool) {
	start, w := p.barStart(), p.barWidth()
	if x < start || x >= start+w {
		return 0, false
	}
	return float64(x-start) / float64(w), true
}

// View renders the progress bar
func (p ProgressBar) View() string {
	w := p.barWidth()
	filled := int(float64(w) * p.Report.Ratio)
	if filled > w {
		filled = w
	}

	var sb strings.Builder
	sb.WriteString(p.TimeStyle.Render(p.Report.CurrentText))
	sb.WriteString(" ")
	sb.WriteString(p.FilledStyle.Render(strings.Repeat(p.BarChar, filled)))
	sb.WriteString(p.EmptyStyle.Render(strings.Repeat(p.EmptyChar, w-filled)))
	sb.WriteString(" ")
	sb.WriteString(p.TimeStyle.Render(p.Report.TotalText))
	return sb.String()
}
