package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/vinyl_player/api"
)

// Row is one playlist line.
type Row struct {
	Title string
	State api.LoadState
}

// TrackList is a scrolling window over the playlist rows. Cursor is the row
// the select key acts on; Active is the controller's current track.
type TrackList struct {
	Items   []Row
	Cursor  int
	Active  int // -1 for none
	Playing bool
	Height  int
	Width   int
	Offset  int

	CursorStyle  lipgloss.Style
	ActiveStyle  lipgloss.Style
	RowStyle     lipgloss.Style
	FailedStyle  lipgloss.Style
	PendingStyle lipgloss.Style
}

// NewTrackList creates a list showing height rows at most width cells wide.
func NewTrackList(height, width int) TrackList {
	return TrackList{
		Active: -1,
		Height: height,
		Width:  width,
		CursorStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		ActiveStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1DB954")).
			Bold(true).
			Padding(0, 1),
		RowStyle: lipgloss.NewStyle().
			Padding(0, 1),
		FailedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		PendingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// SetItems replaces the rows and scrolls back to the top.
func (l *TrackList) SetItems(items []Row) {
	l.Items = items
	l.Cursor, l.Offset = 0, 0
}

// Move shifts the cursor by delta rows, stopping at either end.
func (l *TrackList) Move(delta int) {
	if len(l.Items) == 0 {
		return
	}
	l.Cursor = max(0, min(len(l.Items)-1, l.Cursor+delta))
	l.scrollTo(l.Cursor)
}

// SetActive marks the current track and brings it into view.
func (l *TrackList) SetActive(index int, playing bool) {
	l.Active, l.Playing = index, playing
	if index >= 0 && index < len(l.Items) {
		l.Cursor = index
		l.scrollTo(index)
	}
}

func (l *TrackList) rows() int {
	return max(1, l.Height)
}

func (l *TrackList) scrollTo(i int) {
	switch n := l.rows(); {
	case i < l.Offset:
		l.Offset = i
	case i >= l.Offset+n:
		l.Offset = i - n + 1
	}
}

// RowAt maps a line of the rendered list to an item index.
func (l *TrackList) RowAt(line int) (int, bool) {
	i := l.Offset + line
	if line < 0 || line >= l.rows() || i >= len(l.Items) {
		return 0, false
	}
	return i, true
}

// View renders the visible rows with load and playback markers.
func (l TrackList) View() string {
	if len(l.Items) == 0 {
		return l.RowStyle.Render("No tracks")
	}

	end := min(l.Offset+l.rows(), len(l.Items))
	lines := make([]string, 0, end-l.Offset)
	for i := l.Offset; i < end; i++ {
		lines = append(lines, l.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (l TrackList) renderRow(i int) string {
	row := l.Items[i]

	marker := "  "
	if i == l.Active {
		marker = "■ "
		if l.Playing {
			marker = "▶ "
		}
	}
	text := marker + fmt.Sprintf("%2d. %s", i+1, ellipsize(row.Title, l.Width-16))

	switch row.State {
	case api.LoadFailed:
		text += l.FailedStyle.Render(" (failed)")
	case api.LoadUnloaded:
		text += l.PendingStyle.Render(" (loading)")
	}

	switch i {
	case l.Active:
		return l.ActiveStyle.Render(text)
	case l.Cursor:
		return l.CursorStyle.Render(text)
	}
	return l.RowStyle.Render(text)
}

// ellipsize cuts s to n runes, n >= 4.
func ellipsize(s string, n int) string {
	n = max(n, 4)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
