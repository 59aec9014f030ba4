package player

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/jscyril/vinyl_player/api"
	"github.com/jscyril/vinyl_player/internal/progress"
	playerrors "github.com/jscyril/vinyl_player/pkg/errors"
	"github.com/rs/zerolog"
)

type fakeSound struct {
	loaded   bool
	playing  bool
	current  time.Duration
	duration time.Duration
	volume   float64
	pan      float64
	plays    int
	stops    int
}

func (s *fakeSound) Samples(int) []float64 { return nil }
func (s *fakeSound) Play() error {
	if !s.loaded {
		return playerrors.ErrTrackNotLoaded
	}
	s.playing = true
	s.plays++
	return nil
}
func (s *fakeSound) Pause() { s.playing = false }
func (s *fakeSound) Stop() {
	s.playing = false
	s.current = 0
	s.stops++
}
func (s *fakeSound) IsPlaying() bool { return s.playing }
func (s *fakeSound) IsLoaded() bool  { return s.loaded }
func (s *fakeSound) LoadState() api.LoadState {
	if s.loaded {
		return api.LoadLoaded
	}
	return api.LoadUnloaded
}
func (s *fakeSound) CurrentTime() time.Duration { return s.current }
func (s *fakeSound) Duration() time.Duration    { return s.duration }
func (s *fakeSound) Jump(d time.Duration)       { s.current = d }
func (s *fakeSound) SetVolume(v float64)        { s.volume = v }
func (s *fakeSound) Pan(p float64)              { s.pan = p }

type fakeAudio struct {
	resumes int
	err     error
}

func (a *fakeAudio) Resume() error  { a.resumes++; return a.err }
func (a *fakeAudio) Suspend() error { return nil }

type trackCall struct {
	Index int
	Title string
	Total time.Duration
}

type recordingDisplay struct {
	tracks   []trackCall
	progress []progress.Report
}

func (d *recordingDisplay) ShowTrack(index int, title string, total time.Duration) {
	d.tracks = append(d.tracks, trackCall{index, title, total})
}

func (d *recordingDisplay) ShowProgress(r progress.Report) {
	d.progress = append(d.progress, r)
}

func newTestController(n int) (*Controller, []*fakeSound, *fakeAudio, *recordingDisplay) {
	sounds := make([]*fakeSound, n)
	entries := make([]Entry, n)
	for i := range sounds {
		sounds[i] = &fakeSound{loaded: true, duration: time.Duration(i+1) * time.Minute}
		entries[i] = Entry{
			Track: api.Track{Title: string(rune('A' + i)), Source: string(rune('a'+i)) + ".mp3"},
			Sound: sounds[i],
		}
	}
	audio := &fakeAudio{}
	display := &recordingDisplay{}
	c := New(audio, entries, api.ControlSettings{Volume: 0.5, Pan: 0}, display, zerolog.Nop())
	return c, sounds, audio, display
}

func playingCount(sounds []*fakeSound) int {
	n := 0
	for _, s := range sounds {
		if s.playing {
			n++
		}
	}
	return n
}

func TestPlayStartsCurrentTrack(t *testing.T) {
	c, sounds, audio, display := newTestController(3)

	if err := c.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}

	if !c.State().IsPlaying || !sounds[0].playing {
		t.Error("first track should be playing")
	}
	if audio.resumes != 1 {
		t.Errorf("audio resumed %d times, want 1", audio.resumes)
	}
	if sounds[0].volume != 0.5 {
		t.Errorf("volume applied = %v, want 0.5", sounds[0].volume)
	}
	want := []trackCall{{0, "A", time.Minute}}
	if diff := deep.Equal(display.tracks, want); diff != nil {
		t.Error(diff)
	}
}

func TestPlayWithAudioResumeFailureStillPlays(t *testing.T) {
	c, sounds, audio, _ := newTestController(1)
	audio.err = errors.New("device busy")

	if err := c.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !sounds[0].playing {
		t.Error("track should play even if resume reports an error")
	}
}

func TestPlayNotLoadedIsNoop(t *testing.T) {
	c, sounds, _, display := newTestController(2)
	sounds[0].loaded = false

	err := c.Play()
	if !errors.Is(err, playerrors.ErrTrackNotLoaded) {
		t.Fatalf("Play = %v, want ErrTrackNotLoaded", err)
	}
	if c.State().IsPlaying {
		t.Error("state should stay not playing")
	}
	if len(display.tracks) != 0 {
		t.Error("display should not change for an unloaded track")
	}
}

func TestNextPrevWrapAround(t *testing.T) {
	c, _, _, _ := newTestController(3)

	steps := []struct {
		name string
		move func() error
		want int
	}{
		{"next", c.Next, 1},
		{"next", c.Next, 2},
		{"next wraps", c.Next, 0},
		{"prev wraps", c.Prev, 2},
		{"prev", c.Prev, 1},
	}
	for _, s := range steps {
		if err := s.move(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		if got := c.State().CurrentIndex; got != s.want {
			t.Fatalf("%s: index = %d, want %d", s.name, got, s.want)
		}
	}
}

func TestAtMostOneTrackPlays(t *testing.T) {
	c, sounds, _, _ := newTestController(4)

	ops := []func() error{c.Play, c.Next, c.Next, c.Prev, func() error { return c.Select(3) }, c.Next}
	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
		if n := playingCount(sounds); n != 1 {
			t.Fatalf("after op %d, %d tracks playing", i, n)
		}
		if !sounds[c.State().CurrentIndex].playing {
			t.Fatalf("after op %d, current track is not the one playing", i)
		}
	}
}

func TestNextIntoUnloadedTrackStopsPrevious(t *testing.T) {
	c, sounds, _, _ := newTestController(2)
	sounds[1].loaded = false

	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	if err := c.Next(); !errors.Is(err, playerrors.ErrTrackNotLoaded) {
		t.Fatalf("Next = %v, want ErrTrackNotLoaded", err)
	}
	if c.State().CurrentIndex != 1 || c.State().IsPlaying {
		t.Errorf("state = %+v, want index 1 not playing", c.State())
	}
	if playingCount(sounds) != 0 {
		t.Error("previous track should have been stopped")
	}
}

func TestEmptyPlaylist(t *testing.T) {
	c := New(nil, nil, api.ControlSettings{}, nil, zerolog.Nop())

	for name, op := range map[string]func() error{"play": c.Play, "next": c.Next, "prev": c.Prev} {
		if err := op(); !errors.Is(err, playerrors.ErrEmptyPlaylist) {
			t.Errorf("%s = %v, want ErrEmptyPlaylist", name, err)
		}
	}
	c.Pause()
	c.Stop()
	if c.Current() != nil || c.Active() {
		t.Error("empty controller should have no current sound")
	}
}

func TestPauseResumesFromPosition(t *testing.T) {
	c, sounds, _, _ := newTestController(1)

	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	sounds[0].current = 30 * time.Second
	c.Pause()

	if c.State().IsPlaying || sounds[0].playing {
		t.Fatal("pause should stop playback")
	}
	if sounds[0].current != 30*time.Second {
		t.Error("pause should keep the position")
	}

	// Pause when nothing plays does nothing.
	c.Pause()

	if err := c.TogglePlay(); err != nil {
		t.Fatal(err)
	}
	if !c.State().IsPlaying || sounds[0].current != 30*time.Second {
		t.Error("toggle should resume from the paused position")
	}
	if err := c.TogglePlay(); err != nil {
		t.Fatal(err)
	}
	if c.State().IsPlaying {
		t.Error("second toggle should pause")
	}
}

func TestStopResetsProgress(t *testing.T) {
	c, sounds, _, display := newTestController(2)

	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	sounds[0].current = 20 * time.Second
	c.Stop()

	if c.State().IsPlaying || sounds[0].current != 0 {
		t.Error("stop should rewind and clear the playing flag")
	}
	if c.State().CurrentIndex != 0 {
		t.Error("stop should keep the current index")
	}
	want := []progress.Report{progress.Reset(time.Minute)}
	if diff := deep.Equal(display.progress, want); diff != nil {
		t.Error(diff)
	}
}

func TestSettingsApplyImmediately(t *testing.T) {
	c, sounds, _, _ := newTestController(2)

	if err := c.SetVolume(0.8); err != nil {
		t.Fatal(err)
	}
	if err := c.SetPan(-0.25); err != nil {
		t.Fatal(err)
	}
	if sounds[0].volume != 0.8 || sounds[0].pan != -0.25 {
		t.Errorf("current sound got volume %v pan %v", sounds[0].volume, sounds[0].pan)
	}

	if err := c.Next(); err != nil {
		t.Fatal(err)
	}
	if sounds[1].volume != 0.8 || sounds[1].pan != -0.25 {
		t.Error("settings should carry over to the next track on play")
	}

	if err := c.SetVolume(1.5); !errors.Is(err, playerrors.ErrInvalidVolume) {
		t.Errorf("SetVolume(1.5) = %v", err)
	}
	if err := c.SetPan(-2); !errors.Is(err, playerrors.ErrInvalidPan) {
		t.Errorf("SetPan(-2) = %v", err)
	}
	if diff := deep.Equal(c.Settings(), api.ControlSettings{Volume: 0.8, Pan: -0.25}); diff != nil {
		t.Error(diff)
	}
}

func TestSeek(t *testing.T) {
	c, sounds, _, _ := newTestController(2)
	sounds[0].duration = 200 * time.Second

	if err := c.Seek(0.5); err != nil {
		t.Fatal(err)
	}
	if sounds[0].current != 100*time.Second {
		t.Errorf("seek target = %v, want 1m40s", sounds[0].current)
	}
	if err := c.Seek(1.2); err != nil || sounds[0].current != 200*time.Second {
		t.Errorf("Seek(1.2) = %v at %v, want clamped to the end", err, sounds[0].current)
	}
	if err := c.Seek(math.NaN()); !errors.Is(err, playerrors.ErrInvalidPosition) {
		t.Errorf("Seek(NaN) = %v", err)
	}
}

func TestSelectOutOfRange(t *testing.T) {
	c, _, _, _ := newTestController(2)
	if err := c.Select(5); !errors.Is(err, playerrors.ErrTrackNotFound) {
		t.Errorf("Select(5) = %v, want ErrTrackNotFound", err)
	}
	if c.State().CurrentIndex != 0 {
		t.Error("failed select should not move")
	}
}
