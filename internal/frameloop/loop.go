// Package frameloop runs one animation frame: it fades the previous image,
// advances progress, draws the record, and auto-advances finished tracks.
package frameloop

import (
	"github.com/jscyril/vinyl_player/api"
	"github.com/jscyril/vinyl_player/internal/player"
	"github.com/jscyril/vinyl_player/internal/progress"
	"github.com/jscyril/vinyl_player/internal/render"
	"github.com/rs/zerolog"
)

// Frame summarizes what a tick did.
type Frame struct {
	Number   int
	Active   bool
	Progress progress.Report
	Level    float64
	Advanced bool
	Err      error // from auto-advance
}

// Loop holds the per-frame collaborators.
type Loop struct {
	ctrl     *player.Controller
	reporter *progress.Reporter
	vinyl    *render.Vinyl
	spectrum api.SpectrumAnalyzer
	level    api.LevelMeter
	display  player.Display
	log      zerolog.Logger

	frame int
}

// New wires a loop. spectrum and level are only read on frames where a
// track is playing.
func New(ctrl *player.Controller, reporter *progress.Reporter, vinyl *render.Vinyl,
	spectrum api.SpectrumAnalyzer, level api.LevelMeter, display player.Display, logger zerolog.Logger) *Loop {
	return &Loop{
		ctrl:     ctrl,
		reporter: reporter,
		vinyl:    vinyl,
		spectrum: spectrum,
		level:    level,
		display:  display,
		log:      logger.With().Str("component", "frameloop").Logger(),
	}
}

// FrameCount is the number of ticks so far; it drives the record rotation.
func (l *Loop) FrameCount() int {
	return l.frame
}

// Tick draws one frame onto c.
func (l *Loop) Tick(c render.Canvas) Frame {
	l.vinyl.Fade(c)
	l.frame++

	f := Frame{Number: l.frame}
	if !l.ctrl.Active() {
		l.vinyl.DrawIdle(c)
		return f
	}

	sound := l.ctrl.Current()
	f.Active = true
	f.Progress = l.reporter.Update(sound)
	if l.display != nil {
		l.display.ShowProgress(f.Progress)
	}

	l.spectrum.SetInput(sound)
	l.level.SetInput(sound)
	spectrum := l.spectrum.Analyze()
	f.Level = l.level.GetLevel()
	l.vinyl.DrawActive(c, l.frame, spectrum, f.Level)

	if f.Progress.Ended {
		l.log.Debug().Int("index", l.ctrl.State().CurrentIndex).Msg("track ended, advancing")
		f.Advanced = true
		if err := l.ctrl.Next(); err != nil {
			l.log.Warn().Err(err).Msg("auto-advance")
			f.Err = err
		}
	}
	return f
}
