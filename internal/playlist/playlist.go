// Package playlist builds the fixed track list the player is started with,
// from a directory, an m3u file or a JSON export.
package playlist

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jscyril/vinyl_player/api"
	"github.com/jscyril/vinyl_player/internal/audio"
	"github.com/jscyril/vinyl_player/internal/library"
	playerrors "github.com/jscyril/vinyl_player/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/ushis/m3u"
)

// Loader resolves a playlist argument into tracks.
type Loader struct {
	scanner *library.Scanner
	log     zerolog.Logger
}

// NewLoader returns a loader that reads directories with scanner.
func NewLoader(scanner *library.Scanner, logger zerolog.Logger) *Loader {
	if scanner == nil {
		scanner = library.NewScanner(0)
	}
	return &Loader{scanner: scanner, log: logger.With().Str("component", "playlist").Logger()}
}

// Load reads path as a directory, an .m3u/.m3u8 file, a .json export or a
// single audio file. Missing entries are kept so they show as failed loads.
func (l *Loader) Load(ctx context.Context, path string) (*api.Playlist, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, playerrors.ErrPlaylistNotFound)
		}
		return nil, fmt.Errorf("stat playlist: %w", err)
	}

	var pl *api.Playlist
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case info.IsDir():
		pl, err = l.loadDir(ctx, path)
	case ext == ".m3u" || ext == ".m3u8":
		pl, err = l.loadM3U(path)
	case ext == ".json":
		pl, err = loadJSON(path)
	case audio.IsSupported(path):
		var t *api.Track
		t, err = l.scanner.ScanFile(path)
		if err == nil {
			pl = &api.Playlist{Name: library.TitleFromPath(path), Tracks: []api.Track{*t}}
		}
	default:
		return nil, fmt.Errorf("%s: %w", path, playerrors.ErrInvalidFormat)
	}
	if err != nil {
		return nil, err
	}

	if len(pl.Tracks) == 0 {
		return nil, fmt.Errorf("%s: %w", path, playerrors.ErrEmptyPlaylist)
	}
	if pl.CreatedAt.IsZero() {
		pl.CreatedAt = time.Now()
	}
	l.log.Info().Str("path", path).Int("tracks", len(pl.Tracks)).Msg("playlist loaded")
	return pl, nil
}

func (l *Loader) loadDir(ctx context.Context, dir string) (*api.Playlist, error) {
	tracks, errs := l.scanner.ScanDir(ctx, dir)
	for _, err := range errs {
		l.log.Warn().Err(err).Msg("skipped while scanning")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &api.Playlist{Name: filepath.Base(dir), Tracks: tracks}, nil
}

func (l *Loader) loadM3U(path string) (*api.Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open playlist: %w", err)
	}
	defer f.Close()

	entries, err := m3u.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse m3u: %w", err)
	}

	base := filepath.Dir(path)
	pl := &api.Playlist{Name: library.TitleFromPath(path)}
	for _, e := range entries {
		if e.Path == "" {
			continue
		}
		source := resolve(base, e.Path)
		track := api.Track{
			ID:       library.TrackID(source),
			Title:    e.Title,
			Source:   source,
			Duration: time.Duration(e.Time) * time.Second,
		}
		if track.Title == "" {
			if t, err := l.scanner.ScanFile(source); err == nil {
				track.Title, track.Artist = t.Title, t.Artist
			} else {
				track.Title = library.TitleFromPath(source)
			}
		}
		pl.Tracks = append(pl.Tracks, track)
	}
	return pl, nil
}

func loadJSON(path string) (*api.Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}

	var pl api.Playlist
	if err := json.Unmarshal(data, &pl); err != nil {
		return nil, fmt.Errorf("unmarshal playlist: %w", err)
	}

	base := filepath.Dir(path)
	for i := range pl.Tracks {
		t := &pl.Tracks[i]
		t.Source = resolve(base, t.Source)
		if t.ID == "" {
			t.ID = library.TrackID(t.Source)
		}
		if t.Title == "" {
			t.Title = library.TitleFromPath(t.Source)
		}
	}
	if pl.Name == "" {
		pl.Name = library.TitleFromPath(path)
	}
	return &pl, nil
}

// resolve makes a playlist entry relative to the playlist file. URLs and
// absolute paths are returned unchanged.
func resolve(base, source string) string {
	if filepath.IsAbs(source) || strings.Contains(source, "://") {
		return source
	}
	return filepath.Join(base, filepath.FromSlash(source))
}

// Save writes pl to path, as m3u when the extension says so and JSON otherwise.
func Save(path string, pl *api.Playlist) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create playlist directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".m3u" || ext == ".m3u8" {
		return saveM3U(path, pl)
	}

	data, err := json.MarshalIndent(pl, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal playlist: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write playlist file: %w", err)
	}
	return nil
}

func saveM3U(path string, pl *api.Playlist) error {
	list := make(m3u.Playlist, len(pl.Tracks))
	for i, t := range pl.Tracks {
		list[i] = m3u.Track{
			Path:  t.Source,
			Title: t.DisplayTitle(),
			Time:  int64(t.Duration.Seconds()),
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create playlist file: %w", err)
	}
	defer f.Close()

	if _, err := list.WriteTo(f); err != nil {
		return fmt.Errorf("write playlist file: %w", err)
	}
	return nil
}
