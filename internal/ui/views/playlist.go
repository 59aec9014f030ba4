package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/vinyl_player/api"
	"github.com/jscyril/vinyl_player/internal/ui/components"
)

// PlaylistView shows the fixed track list with the current track highlighted.
type PlaylistView struct {
	Width      int
	Height     int
	Name       string
	TrackList  components.TrackList
	TitleStyle lipgloss.Style
}

// NewPlaylistView creates a new playlist view. height counts the list rows,
// not the header.
func NewPlaylistView(pl *api.Playlist, width, height int) PlaylistView {
	list := components.NewTrackList(height, width)
	rows := make([]components.Row, len(pl.Tracks))
	for i, t := range pl.Tracks {
		rows[i] = components.Row{Title: t.DisplayTitle()}
	}
	list.SetItems(rows)

	return PlaylistView{
		Width:     width,
		Height:    height,
		Name:      pl.Name,
		TrackList: list,
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
	}
}

// SetLoadState updates the marker of one row.
func (v *PlaylistView) SetLoadState(index int, state api.LoadState) {
	if index >= 0 && index < len(v.TrackList.Items) {
		v.TrackList.Items[index].State = state
	}
}

// SetActive highlights the current track.
func (v *PlaylistView) SetActive(index int, playing bool) {
	v.TrackList.SetActive(index, playing)
}

// SetSize resizes the list.
func (v *PlaylistView) SetSize(width, height int) {
	v.Width = width
	v.Height = height
	v.TrackList.Width = width
	v.TrackList.Height = height
}

// Selected returns the cursor position.
func (v *PlaylistView) Selected() int {
	return v.TrackList.Cursor
}

// Move shifts the cursor by delta rows.
func (v *PlaylistView) Move(delta int) {
	v.TrackList.Move(delta)
}

// RowAt maps a line of this view to a track index. Line 0 is the header.
func (v *PlaylistView) RowAt(line int) (int, bool) {
	return v.TrackList.RowAt(line - 1)
}

// View renders the playlist view
func (v PlaylistView) View() string {
	header := "Playlist"
	if v.Name != "" {
		header += ": " + v.Name
	}
	var sb strings.Builder
	sb.WriteString(v.TitleStyle.Render(header))
	sb.WriteString("\n")
	sb.WriteString(v.TrackList.View())
	return sb.String()
}
