// Package player owns the playlist position and the playing flag, and drives
// the audio engine in response to transport controls.
package player

import (
	"fmt"
	"math"
	"time"

	"github.com/jscyril/vinyl_player/api"
	"github.com/jscyril/vinyl_player/internal/progress"
	playerrors "github.com/jscyril/vinyl_player/pkg/errors"
	"github.com/rs/zerolog"
)

// Entry pairs a playlist track with its sound handle.
type Entry struct {
	Track api.Track
	Sound api.Sound
}

// Display receives the visible consequences of transport actions.
type Display interface {
	// ShowTrack is called when a track starts: title, highlight and total time.
	ShowTrack(index int, title string, total time.Duration)
	// ShowProgress updates the progress fill and time text.
	ShowProgress(r progress.Report)
}

type nopDisplay struct{}

func (nopDisplay) ShowTrack(int, string, time.Duration) {}
func (nopDisplay) ShowProgress(progress.Report)         {}

// Controller is the Playback Controller. It is not safe for concurrent use;
// every call happens on the UI event loop.
type Controller struct {
	audio    api.AudioContext
	entries  []Entry
	state    api.PlayerState
	settings api.ControlSettings
	display  Display
	log      zerolog.Logger
}

// New creates a controller positioned on the first entry, not playing.
func New(audio api.AudioContext, entries []Entry, settings api.ControlSettings, display Display, logger zerolog.Logger) *Controller {
	if display == nil {
		display = nopDisplay{}
	}
	return &Controller{
		audio:    audio,
		entries:  entries,
		settings: settings,
		display:  display,
		log:      logger.With().Str("component", "player").Logger(),
	}
}

// State returns a copy of the player state.
func (c *Controller) State() api.PlayerState {
	return c.state
}

// Settings returns the current volume and pan.
func (c *Controller) Settings() api.ControlSettings {
	return c.settings
}

// Len is the number of playlist entries.
func (c *Controller) Len() int {
	return len(c.entries)
}

// Entry returns the entry at i.
func (c *Controller) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Current returns the sound at the current index, or nil for an empty playlist.
func (c *Controller) Current() api.Sound {
	if len(c.entries) == 0 {
		return nil
	}
	return c.entries[c.state.CurrentIndex].Sound
}

// Active reports whether the current sound is audibly playing.
func (c *Controller) Active() bool {
	s := c.Current()
	return c.state.IsPlaying && s != nil && s.IsPlaying()
}

// Play starts the current track. Every other sound is stopped first so at most
// one plays. A track that has not finished loading leaves the state unchanged
// and returns ErrTrackNotLoaded.
func (c *Controller) Play() error {
	if len(c.entries) == 0 {
		return playerrors.ErrEmptyPlaylist
	}

	if c.audio != nil {
		if err := c.audio.Resume(); err != nil {
			c.log.Warn().Err(err).Msg("resume audio output")
		}
	}

	c.stopOthers()

	entry := c.entries[c.state.CurrentIndex]
	if entry.Sound == nil || !entry.Sound.IsLoaded() {
		c.log.Warn().Str("track", entry.Track.Source).Msg("track not loaded yet")
		return playerrors.NewPlayerError("play", entry.Track.DisplayTitle(), playerrors.ErrTrackNotLoaded)
	}

	if err := entry.Sound.Play(); err != nil {
		c.log.Error().Err(err).Str("track", entry.Track.Source).Msg("play failed")
		return playerrors.NewPlayerError("play", entry.Track.DisplayTitle(), err)
	}
	c.state.IsPlaying = true

	entry.Sound.SetVolume(c.settings.Volume)
	entry.Sound.Pan(c.settings.Pan)

	c.display.ShowTrack(c.state.CurrentIndex, entry.Track.DisplayTitle(), entry.Sound.Duration())
	c.log.Info().Int("index", c.state.CurrentIndex).Str("title", entry.Track.DisplayTitle()).Msg("playing")
	return nil
}

// stopOthers stops every playing sound except the current one, which may be
// paused and about to resume.
func (c *Controller) stopOthers() {
	for i, e := range c.entries {
		if i == c.state.CurrentIndex || e.Sound == nil {
			continue
		}
		if e.Sound.IsPlaying() {
			e.Sound.Stop()
		}
	}
}

// Pause pauses the current track if it is playing.
func (c *Controller) Pause() {
	s := c.Current()
	if s == nil || !s.IsPlaying() {
		return
	}
	s.Pause()
	c.state.IsPlaying = false
}

// TogglePlay plays when idle and pauses while playing.
func (c *Controller) TogglePlay() error {
	if c.state.IsPlaying {
		c.Pause()
		return nil
	}
	return c.Play()
}

// Stop stops the current track and resets the displayed progress.
func (c *Controller) Stop() {
	s := c.Current()
	if s == nil {
		return
	}
	s.Stop()
	c.state.IsPlaying = false
	c.display.ShowProgress(progress.Reset(s.Duration()))
}

// Next moves to the following track, wrapping to the first, and plays it.
func (c *Controller) Next() error {
	n := len(c.entries)
	if n == 0 {
		return playerrors.ErrEmptyPlaylist
	}
	c.switchTo((c.state.CurrentIndex + 1) % n)
	return c.Play()
}

// Prev moves to the preceding track, wrapping to the last, and plays it.
func (c *Controller) Prev() error {
	n := len(c.entries)
	if n == 0 {
		return playerrors.ErrEmptyPlaylist
	}
	c.switchTo((c.state.CurrentIndex - 1 + n) % n)
	return c.Play()
}

// Select jumps to the track at index and plays it.
func (c *Controller) Select(index int) error {
	if index < 0 || index >= len(c.entries) {
		return fmt.Errorf("select %d: %w", index, playerrors.ErrTrackNotFound)
	}
	c.switchTo(index)
	return c.Play()
}

// switchTo stops and rewinds the outgoing track, then changes the index.
// Switching to the same index restarts it.
func (c *Controller) switchTo(index int) {
	if s := c.Current(); s != nil {
		s.Stop()
	}
	c.state.CurrentIndex = index
	c.state.IsPlaying = false
}

// SetVolume stores the volume and applies it to the current track.
func (c *Controller) SetVolume(v float64) error {
	if v < 0 || v > 1 {
		return playerrors.ErrInvalidVolume
	}
	c.settings.Volume = v
	if s := c.Current(); s != nil {
		s.SetVolume(v)
	}
	return nil
}

// SetPan stores the pan and applies it to the current track.
func (c *Controller) SetPan(p float64) error {
	if p < -1 || p > 1 {
		return playerrors.ErrInvalidPan
	}
	c.settings.Pan = p
	if s := c.Current(); s != nil {
		s.Pan(p)
	}
	return nil
}

// Seek jumps the current track to a normalized position; p is clamped to [0,1].
func (c *Controller) Seek(p float64) error {
	if math.IsNaN(p) {
		return playerrors.ErrInvalidPosition
	}
	s := c.Current()
	if s == nil {
		return playerrors.ErrEmptyPlaylist
	}
	target := progress.SeekTarget(p, s.Duration())
	s.Jump(target)
	c.log.Debug().Float64("position", p).Dur("target", target).Msg("seek")
	return nil
}
