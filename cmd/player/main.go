package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jscyril/vinyl_player/internal/config"
	"github.com/spf13/cobra"
)

type flags struct {
	config   string
	playlist string
	fps      int
	logFile  string
	logLevel string
	volume   float64
	pan      float64
	export   string
	snapshot string
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "vinylplayer [playlist]",
		Short: "A terminal music player with a spinning vinyl visualizer",
		Long: `vinylplayer plays a fixed playlist and animates a spinning record whose
rim carries a ring of frequency bars and whose centre glows with the volume.

The playlist can be a directory of audio files, an .m3u file, a .json export
or a single audio file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.playlist = args[0]
			}
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return run(ctx, cfg, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "config file (default $VINYL_PLAYER_CONFIG or ~/.config/vinylplayer/config.json)")
	fl.StringVarP(&f.playlist, "playlist", "p", "", "directory, .m3u, .json or audio file to play")
	fl.IntVar(&f.fps, "fps", 0, "animation frames per second")
	fl.StringVar(&f.logFile, "log-file", "", "write logs to this file (empty disables)")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fl.Float64Var(&f.volume, "volume", 0, "initial volume, 0 to 1")
	fl.Float64Var(&f.pan, "pan", 0, "initial pan, -1 (left) to 1 (right)")
	fl.StringVar(&f.export, "export", "", "write the loaded playlist to this .json or .m3u file and exit")
	fl.StringVar(&f.snapshot, "snapshot", "", "render the idle record to this PNG file and exit")

	return cmd
}

// loadConfig reads .env and the config file, then applies flags that were set.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	path := f.config
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	fl := cmd.Flags()
	if f.playlist != "" {
		cfg.Playlist = f.playlist
	}
	if fl.Changed("fps") {
		cfg.FPS = f.fps
	}
	if fl.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fl.Changed("volume") {
		cfg.DefaultVolume = f.volume
	}
	if fl.Changed("pan") {
		cfg.DefaultPan = f.pan
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
