package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jscyril/vinyl_player/api"
	"github.com/jscyril/vinyl_player/internal/analysis"
	"github.com/jscyril/vinyl_player/internal/audio"
	"github.com/jscyril/vinyl_player/internal/config"
	"github.com/jscyril/vinyl_player/internal/frameloop"
	"github.com/jscyril/vinyl_player/internal/library"
	"github.com/jscyril/vinyl_player/internal/logging"
	"github.com/jscyril/vinyl_player/internal/player"
	"github.com/jscyril/vinyl_player/internal/playlist"
	"github.com/jscyril/vinyl_player/internal/progress"
	"github.com/jscyril/vinyl_player/internal/render"
	"github.com/jscyril/vinyl_player/internal/ui"
	"github.com/jscyril/vinyl_player/pkg/events"
)

// playlistRows is the initial playlist height before the first resize.
const playlistRows = 8

var errNoPlaylist = errors.New("no playlist given: pass a path or set \"playlist\" in the config file")

func run(ctx context.Context, cfg *config.Config, f flags) error {
	logger, closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	vinyl := render.NewVinyl(vinylParams(cfg))

	if f.snapshot != "" {
		return snapshot(f.snapshot, cfg, vinyl)
	}

	if cfg.Playlist == "" {
		return errNoPlaylist
	}
	loader := playlist.NewLoader(library.NewScanner(0), logger)
	pl, err := loader.Load(ctx, cfg.Playlist)
	if err != nil {
		return fmt.Errorf("load playlist: %w", err)
	}

	if f.export != "" {
		if err := playlist.Save(f.export, pl); err != nil {
			return fmt.Errorf("export playlist: %w", err)
		}
		fmt.Printf("Exported %d tracks to %s\n", len(pl.Tracks), f.export)
		return nil
	}

	engine := audio.NewEngine(cfg.SampleRate, logger)
	engine.SetLoadWorkers(cfg.LoadWorkers)
	if err := engine.Init(); err != nil {
		return fmt.Errorf("init audio: %w", err)
	}
	defer engine.Close()
	// Output stays suspended until the first play.
	if err := engine.Suspend(); err != nil {
		logger.Warn().Err(err).Msg("suspend audio output")
	}

	bus := events.NewEventBus()
	defer bus.Close()
	loads := bus.SubscribeAll()

	entries := make([]player.Entry, len(pl.Tracks))
	for i, track := range pl.Tracks {
		sound := engine.Load(track.Source,
			func(*audio.Sound) {
				bus.Publish(api.Event{Type: api.EventTrackLoaded, Index: i})
			},
			func(err error) {
				bus.Publish(api.Event{Type: api.EventLoadFailed, Index: i, Payload: err})
			})
		entries[i] = player.Entry{Track: track, Sound: sound}
	}

	screen := ui.NewScreen(pl, 80, cfg.Canvas.Height/2, playlistRows)
	ctrl := player.New(engine, entries,
		api.ControlSettings{Volume: cfg.DefaultVolume, Pan: cfg.DefaultPan}, screen, logger)

	v := cfg.Visualizer
	fft := analysis.NewFFT(analysis.FFTConfig{
		Size:        v.FFTSize,
		Smoothing:   v.Smoothing,
		MinDecibels: v.MinDecibels,
		MaxDecibels: v.MaxDecibels,
	})
	level := analysis.NewAmplitude(v.FFTSize, 0)
	loop := frameloop.New(ctrl, progress.NewReporter(cfg.EndEpsilon()), vinyl, fft, level, screen, logger)

	logger.Info().Str("playlist", cfg.Playlist).Int("tracks", len(entries)).Msg("starting")
	return ui.Run(ctx, ui.Options{
		Controller:    ctrl,
		Loop:          loop,
		Canvas:        render.NewGG(cfg.Canvas.Width, cfg.Canvas.Height),
		Screen:        screen,
		Events:        loads,
		Keys:          cfg.KeyBindings,
		FrameInterval: cfg.FrameInterval(),
		Logger:        logger,
	})
}

func vinylParams(cfg *config.Config) render.Params {
	p := render.DefaultParams()
	p.Bars = cfg.Visualizer.Bars
	p.Amplification = cfg.Visualizer.Amplification
	p.SpectrumFraction = cfg.Visualizer.SpectrumFraction
	p.RotationSpeed = cfg.Visualizer.RotationSpeed
	return p
}

// snapshot renders the idle record once and writes it as PNG.
func snapshot(path string, cfg *config.Config, vinyl *render.Vinyl) error {
	canvas := render.NewGG(cfg.Canvas.Width, cfg.Canvas.Height)
	vinyl.Fade(canvas)
	vinyl.DrawIdle(canvas)
	if err := canvas.SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
