package library

import (
	"cmp"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/jscyril/vinyl_player/api"
)

// MetadataReader turns audio files into tracks using their embedded tags.
type MetadataReader struct{}

// NewMetadataReader creates a new metadata reader
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

// Read returns a Track for path. Files without readable tags are titled
// after their file name.
func (r *MetadataReader) Read(path string) (*api.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	track := &api.Track{
		ID:     TrackID(path),
		Title:  TitleFromPath(path),
		Source: path,
	}

	m, err := tag.ReadFrom(f)
	if err != nil {
		return track, nil
	}
	track.Title = cmp.Or(strings.TrimSpace(m.Title()), track.Title)
	track.Artist = strings.TrimSpace(m.Artist())
	return track, nil
}

// TrackID is a stable id derived from the track's source.
func TrackID(source string) string {
	sum := md5.Sum([]byte(source))
	return fmt.Sprintf("track-%x", sum[:8])
}

// TitleFromPath is the file name without its extension.
func TitleFromPath(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
