package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Slider shows a value on a fixed range as a knob on a track.
type Slider struct {
	Label      string
	Min, Max   float64
	Value      float64
	Width      int
	Format     func(float64) string
	LabelStyle lipgloss.Style
	KnobStyle  lipgloss.Style
	TrackStyle lipgloss.Style
}

// NewSlider creates a slider over [lo, hi]. format renders the value after
// the bar; nil hides it.
func NewSlider(label string, lo, hi float64, width int, format func(float64) string) Slider {
	return Slider{
		Label:      label,
		Min:        lo,
		Max:        hi,
		Width:      width,
		Format:     format,
		LabelStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		KnobStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#1DB954")),
		TrackStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// knob is the cell index of the value on the track.
func (s Slider) knob() int {
	if s.Width <= 1 || s.Max <= s.Min {
		return 0
	}
	t := (s.Value - s.Min) / (s.Max - s.Min)
	t = math.Max(0, math.Min(1, t))
	return int(math.Round(t * float64(s.Width-1)))
}

// View renders the label, the bar and the formatted value.
func (s Slider) View() string {
	w := s.Width
	if w < 1 {
		w = 1
	}
	k := s.knob()

	var sb strings.Builder
	sb.WriteString(s.LabelStyle.Render(s.Label))
	sb.WriteString(" ")
	sb.WriteString(s.TrackStyle.Render(strings.Repeat("─", k)))
	sb.WriteString(s.KnobStyle.Render("●"))
	sb.WriteString(s.TrackStyle.Render(strings.Repeat("─", w-k-1)))
	if s.Format != nil {
		sb.WriteString(" ")
		sb.WriteString(s.LabelStyle.Render(s.Format(s.Value)))
	}
	return sb.String()
}
