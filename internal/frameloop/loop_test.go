package frameloop

import (
	"testing"
	"time"

	"github.com/jscyril/vinyl_player/api"
	"github.com/jscyril/vinyl_player/internal/player"
	"github.com/jscyril/vinyl_player/internal/progress"
	"github.com/jscyril/vinyl_player/internal/render"
	"github.com/rs/zerolog"
)

type stubSound struct {
	api.Sound // methods the loop never reaches panic
	playing   bool
	current   time.Duration
	duration  time.Duration
}

func (s *stubSound) Play() error                { s.playing = true; return nil }
func (s *stubSound) Pause()                     { s.playing = false }
func (s *stubSound) Stop()                      { s.playing = false; s.current = 0 }
func (s *stubSound) IsPlaying() bool            { return s.playing }
func (s *stubSound) IsLoaded() bool             { return true }
func (s *stubSound) CurrentTime() time.Duration { return s.current }
func (s *stubSound) Duration() time.Duration    { return s.duration }
func (s *stubSound) SetVolume(float64)          {}
func (s *stubSound) Pan(float64)                {}
func (s *stubSound) Samples(int) []float64      { return nil }

type countingSpectrum struct {
	inputs   int
	analyses int
	out      []float64
}

func (c *countingSpectrum) SetInput(api.SampleSource) { c.inputs++ }
func (c *countingSpectrum) Analyze() []float64        { c.analyses++; return c.out }
func (c *countingSpectrum) Spectrum() []float64       { return c.out }

type countingLevel struct {
	calls int
	level float64
}

func (c *countingLevel) SetInput(api.SampleSource) {}
func (c *countingLevel) GetLevel() float64         { c.calls++; return c.level }

type progressLog struct {
	reports []progress.Report
}

func (p *progressLog) ShowTrack(int, string, time.Duration) {}
func (p *progressLog) ShowProgress(r progress.Report)       { p.reports = append(p.reports, r) }

func setup(sounds ...*stubSound) (*Loop, *player.Controller, *countingSpectrum, *countingLevel, *progressLog) {
	entries := make([]player.Entry, len(sounds))
	for i, s := range sounds {
		entries[i] = player.Entry{Track: api.Track{Title: "t"}, Sound: s}
	}
	display := &progressLog{}
	ctrl := player.New(nil, entries, api.ControlSettings{Volume: 1}, display, zerolog.Nop())
	spectrum := &countingSpectrum{out: make([]float64, 64)}
	level := &countingLevel{level: 0.4}
	loop := New(ctrl, progress.NewReporter(0), render.NewVinyl(render.DefaultParams()),
		spectrum, level, display, zerolog.Nop())
	return loop, ctrl, spectrum, level, display
}

func TestIdleFrameSkipsAnalysis(t *testing.T) {
	loop, _, spectrum, level, display := setup(&stubSound{duration: time.Minute})
	rec := render.NewRecorder(200, 200)

	for i := 0; i < 3; i++ {
		f := loop.Tick(rec)
		if f.Active {
			t.Fatal("frame should be idle before play")
		}
	}

	if spectrum.analyses != 0 || level.calls != 0 {
		t.Errorf("analyzers ran while idle: %d spectrum, %d level", spectrum.analyses, level.calls)
	}
	if len(display.reports) != 0 {
		t.Error("progress should not update while idle")
	}
	if loop.FrameCount() != 3 {
		t.Errorf("frame count = %d, want 3", loop.FrameCount())
	}
	if got := rec.Count(render.OpText); got != 3 {
		t.Errorf("idle prompt drawn %d times, want 3", got)
	}
}

func TestActiveFrameDrawsAndReports(t *testing.T) {
	s := &stubSound{duration: time.Minute, current: 15 * time.Second}
	loop, ctrl, spectrum, level, display := setup(s)
	if err := ctrl.Play(); err != nil {
		t.Fatal(err)
	}
	rec := render.NewRecorder(200, 200)

	f := loop.Tick(rec)

	if !f.Active || f.Advanced {
		t.Fatalf("frame = %+v, want active without advance", f)
	}
	if f.Progress.Ratio != 0.25 || f.Progress.CurrentText != "0:15" {
		t.Errorf("progress = %+v", f.Progress)
	}
	if f.Level != 0.4 {
		t.Errorf("level = %v, want 0.4", f.Level)
	}
	if spectrum.inputs != 1 || spectrum.analyses != 1 || level.calls != 1 {
		t.Error("analyzers should run once per active frame")
	}
	if len(display.reports) != 1 {
		t.Errorf("progress shown %d times, want 1", len(display.reports))
	}
	if got := rec.Count(render.OpRect); got != 180 {
		t.Errorf("bars = %d, want 180", got)
	}
}

func TestPausedTrackDrawsIdle(t *testing.T) {
	s := &stubSound{duration: time.Minute}
	loop, ctrl, spectrum, _, _ := setup(s)
	if err := ctrl.Play(); err != nil {
		t.Fatal(err)
	}
	ctrl.Pause()

	if f := loop.Tick(render.NewRecorder(100, 100)); f.Active {
		t.Error("paused track should draw the idle record")
	}
	if spectrum.analyses != 0 {
		t.Error("spectrum should not be read while paused")
	}
}

func TestAutoAdvanceNearEnd(t *testing.T) {
	first := &stubSound{duration: time.Minute, current: time.Minute - 50*time.Millisecond}
	second := &stubSound{duration: 2 * time.Minute}
	loop, ctrl, _, _, _ := setup(first, second)
	if err := ctrl.Play(); err != nil {
		t.Fatal(err)
	}

	f := loop.Tick(render.NewRecorder(100, 100))

	if !f.Progress.Ended || !f.Advanced || f.Err != nil {
		t.Fatalf("frame = %+v, want ended and advanced", f)
	}
	if ctrl.State().CurrentIndex != 1 || !ctrl.State().IsPlaying {
		t.Errorf("state = %+v, want second track playing", ctrl.State())
	}
	if first.playing || !second.playing {
		t.Error("only the second track should be playing")
	}
}

func TestAutoAdvanceWrapsSingleTrack(t *testing.T) {
	only := &stubSound{duration: time.Minute, current: time.Minute}
	loop, ctrl, _, _, _ := setup(only)
	if err := ctrl.Play(); err != nil {
		t.Fatal(err)
	}

	f := loop.Tick(render.NewRecorder(100, 100))

	if !f.Advanced || ctrl.State().CurrentIndex != 0 {
		t.Fatalf("frame = %+v, index %d", f, ctrl.State().CurrentIndex)
	}
	if only.current != 0 || !only.playing {
		t.Error("a single track should restart from the beginning")
	}
}

func TestEmptySpectrumStillDrawsRecord(t *testing.T) {
	loop, ctrl, spectrum, _, _ := setup(&stubSound{duration: time.Minute})
	spectrum.out = nil
	if err := ctrl.Play(); err != nil {
		t.Fatal(err)
	}
	rec := render.NewRecorder(100, 100)

	loop.Tick(rec)

	if rec.Count(render.OpRect) != 0 {
		t.Error("no bars without a spectrum")
	}
	if rec.Count(render.OpEllipse) == 0 {
		t.Error("record should still be drawn")
	}
}
