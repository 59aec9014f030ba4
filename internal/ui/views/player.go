package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/vinyl_player/internal/progress"
	"github.com/jscyril/vinyl_player/internal/ui/components"
)

const noTrack = "No track selected"

// PlayerView displays the record, the current track and the controls.
// Its line layout is fixed so mouse clicks can be mapped back onto it:
// title, canvas rows, progress, volume and pan, status.
type PlayerView struct {
	Width       int
	Title       string
	Canvas      string
	ProgressBar components.ProgressBar
	Volume      components.Slider
	Pan         components.Slider
	Status      string
	Err         error

	canvasRows int

	TitleStyle  lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
}

// NewPlayerView creates a new player view. canvasRows is the number of
// terminal lines the record image occupies.
func NewPlayerView(width, canvasRows int) PlayerView {
	return PlayerView{
		Width:       width,
		Title:       noTrack,
		ProgressBar: components.NewProgressBar(width),
		Volume: components.NewSlider("Volume", 0, 1, 20, func(v float64) string {
			return fmt.Sprintf("%3d%%", int(v*100+0.5))
		}),
		Pan: components.NewSlider("Pan   ", -1, 1, 20, func(v float64) string {
			return fmt.Sprintf("%+.1f", v)
		}),
		canvasRows: canvasRows,
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		StatusStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		ErrorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

// SetTrack shows a newly started track.
func (v *PlayerView) SetTrack(title string, total time.Duration) {
	v.Title = title
	v.ProgressBar.SetReport(progress.Reset(total))
}

// SetProgress refreshes the progress strip.
func (v *PlayerView) SetProgress(r progress.Report) {
	v.ProgressBar.SetReport(r)
}

// SetWidth resizes the controls.
func (v *PlayerView) SetWidth(width int) {
	v.Width = width
	v.ProgressBar.Width = width
}

// SetCanvasRows changes how many lines the record image occupies.
func (v *PlayerView) SetCanvasRows(rows int) {
	v.canvasRows = max(rows, 0)
}

// CanvasRows is the number of lines reserved for the record image.
func (v PlayerView) CanvasRows() int {
	return v.canvasRows
}

// FixedLines counts the lines that do not belong to the canvas.
const FixedLines = 5

// ProgressRow is the line holding the progress bar.
func (v PlayerView) ProgressRow() int {
	return 1 + v.canvasRows
}

// Lines is the number of lines View renders.
func (v PlayerView) Lines() int {
	return v.canvasRows + FixedLines
}

// View renders the player view
func (v PlayerView) View() string {
	lines := make([]string, 0, v.Lines())
	lines = append(lines, v.TitleStyle.Render("♪ "+v.Title))

	canvas := strings.Split(v.Canvas, "\n")
	for i := 0; i < v.canvasRows; i++ {
		if i < len(canvas) {
			lines = append(lines, canvas[i])
		} else {
			lines = append(lines, "")
		}
	}

	lines = append(lines, v.ProgressBar.View())
	lines = append(lines, v.Volume.View())
	lines = append(lines, v.Pan.View())

	switch {
	case v.Err != nil:
		lines = append(lines, v.ErrorStyle.Render("Error: "+v.Err.Error()))
	default:
		lines = append(lines, v.StatusStyle.Render(v.Status))
	}

	return strings.Join(lines, "\n")
}
