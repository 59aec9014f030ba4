package main

import (
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jscyril/vinyl_player/api"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestSnapshotWritesIdleFrame(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "idle.png")

	err := execute(t, "--config", filepath.Join(dir, "config.json"), "--snapshot", out)
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("snapshot size = %v, want 64x64", b)
	}
}

func TestExportPlaylist(t *testing.T) {
	dir := t.TempDir()
	music := filepath.Join(dir, "music")
	if err := os.Mkdir(music, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"one.mp3", "two.wav"} {
		if err := os.WriteFile(filepath.Join(music, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	out := filepath.Join(dir, "export.json")

	err := execute(t, "--config", filepath.Join(dir, "config.json"), "--export", out, music)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var pl api.Playlist
	if err := json.Unmarshal(data, &pl); err != nil {
		t.Fatal(err)
	}
	if len(pl.Tracks) != 2 || pl.Tracks[0].Title != "one" {
		t.Errorf("exported tracks = %+v", pl.Tracks)
	}
}

func TestInvalidFlags(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.json")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"volume out of range", []string{"--volume", "2"}, "default_volume"},
		{"zero fps", []string{"--fps", "0"}, "fps"},
		{"no playlist", nil, "no playlist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, append([]string{"--config", cfg}, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
