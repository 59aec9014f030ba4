package ui

import (
	"time"

	"github.com/jscyril/vinyl_player/api"
	"github.com/jscyril/vinyl_player/internal/player"
	"github.com/jscyril/vinyl_player/internal/progress"
	"github.com/jscyril/vinyl_player/internal/ui/views"
)

var _ player.Display = (*Screen)(nil)

// Screen owns the views. The controller and the frame loop write to it, the
// bubbletea model renders it.
type Screen struct {
	player   views.PlayerView
	playlist views.PlaylistView
}

// NewScreen lays out the views for a terminal of the given width. canvasRows
// is the height of the record image in lines.
func NewScreen(pl *api.Playlist, width, canvasRows, listRows int) *Screen {
	return &Screen{
		player:   views.NewPlayerView(width, canvasRows),
		playlist: views.NewPlaylistView(pl, width, listRows),
	}
}

// ShowTrack puts the title on screen and highlights the playlist row.
func (s *Screen) ShowTrack(index int, title string, total time.Duration) {
	s.player.SetTrack(title, total)
	s.playlist.SetActive(index, true)
}

// ShowProgress updates the progress strip.
func (s *Screen) ShowProgress(r progress.Report) {
	s.player.SetProgress(r)
}
