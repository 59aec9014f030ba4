package library

import (
	"cmp"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"

	"github.com/jscyril/vinyl_player/api"
	"github.com/jscyril/vinyl_player/internal/audio"
	playerrors "github.com/jscyril/vinyl_player/pkg/errors"
)

// Scanner finds playable files under a set of roots and reads their tags on
// a pool of workers.
type Scanner struct {
	workers int
	meta    *MetadataReader
}

// NewScanner returns a scanner with the given pool size; values below one
// use four workers.
func NewScanner(workers int) *Scanner {
	if workers <= 0 {
		workers = 4
	}
	return &Scanner{workers: workers, meta: NewMetadataReader()}
}

// Scan walks paths and reads tags with a worker pool. Results arrive in no
// particular order; both channels are closed when scanning ends. Errors are
// dropped once the error buffer is full.
func (s *Scanner) Scan(ctx context.Context, paths []string) (<-chan *api.Track, <-chan error) {
	tracks := make(chan *api.Track, 100)
	errs := make(chan error, 10)
	files := make(chan string, 100)

	fail := func(path string, err error) {
		select {
		case errs <- &playerrors.ScanError{Path: path, Err: err}:
		default:
		}
	}

	go func() {
		defer close(files)
		for _, root := range paths {
			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				switch {
				case err != nil:
					fail(p, err)
					return nil
				case d.IsDir() || !audio.IsSupported(p):
					return ctx.Err()
				}
				select {
				case files <- p:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			if err != nil {
				fail(root, err)
			}
		}
	}()

	var wg sync.WaitGroup
	for range s.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range files {
				track, err := s.meta.Read(p)
				if err != nil {
					fail(p, err)
					continue
				}
				select {
				case tracks <- track:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(tracks)
		close(errs)
	}()

	return tracks, errs
}

// ScanDir scans a directory and returns its tracks sorted by path. Files
// whose tags cannot be read are reported in the returned error slice.
func (s *Scanner) ScanDir(ctx context.Context, dir string) ([]api.Track, []error) {
	trackCh, errCh := s.Scan(ctx, []string{dir})

	var (
		tracks []api.Track
		errs   []error
	)
	for trackCh != nil || errCh != nil {
		select {
		case t, ok := <-trackCh:
			if !ok {
				trackCh = nil
				continue
			}
			tracks = append(tracks, *t)
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			errs = append(errs, err)
		}
	}
	if ctx.Err() != nil {
		return nil, errs
	}

	slices.SortFunc(tracks, func(a, b api.Track) int { return cmp.Compare(a.Source, b.Source) })
	return tracks, errs
}

// ScanFile reads a single file, rejecting formats the decoder cannot play.
func (s *Scanner) ScanFile(path string) (*api.Track, error) {
	if !audio.IsSupported(path) {
		return nil, playerrors.ErrInvalidFormat
	}
	return s.meta.Read(path)
}
