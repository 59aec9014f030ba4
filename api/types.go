package api

import "time"

// Track is one playlist entry: where the audio lives and what to call it.
type Track struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Artist   string        `json:"artist,omitempty"`
	Source   string        `json:"source"`
	Duration time.Duration `json:"duration,omitempty"`
}

// DisplayTitle returns the text shown for the track in the playlist and header.
func (t Track) DisplayTitle() string {
	if t.Artist != "" && t.Title != "" {
		return t.Artist + " - " + t.Title
	}
	return t.Title
}

type Playlist struct {
	Name      string    `json:"name"`
	Tracks    []Track   `json:"tracks"`
	CreatedAt time.Time `json:"created_at"`
}

// LoadState is the load lifecycle of a sound: unloaded -> loaded | failed.
type LoadState int32

const (
	LoadUnloaded LoadState = iota
	LoadLoaded
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadLoaded:
		return "loaded"
	case LoadFailed:
		return "failed"
	default:
		return "unloaded"
	}
}

// PlayerState is the single shared playback record. IsPlaying is only true
// while the sound at CurrentIndex is producing audio.
type PlayerState struct {
	CurrentIndex int
	IsPlaying    bool
}

// ControlSettings mirrors the volume and pan controls.
type ControlSettings struct {
	Volume float64 // 0.0 to 1.0
	Pan    float64 // -1.0 to 1.0
}

// SampleSource exposes the most recent mono samples of a playing sound.
type SampleSource interface {
	Samples(n int) []float64
}

// Sound is a loaded (or loading) audio track handle.
type Sound interface {
	SampleSource

	Play() error
	Pause()
	Stop()
	IsPlaying() bool
	IsLoaded() bool
	LoadState() LoadState
	CurrentTime() time.Duration
	Duration() time.Duration
	Jump(position time.Duration)
	SetVolume(level float64)
	Pan(pan float64)
}

// AudioContext is the global output pipeline that can be suspended.
type AudioContext interface {
	Resume() error
	Suspend() error
}

// SpectrumAnalyzer produces frequency magnitudes in [0,1] for its input.
type SpectrumAnalyzer interface {
	SetInput(src SampleSource)
	Analyze() []float64
	Spectrum() []float64
}

// LevelMeter produces a scalar amplitude in [0,1] for its input.
type LevelMeter interface {
	SetInput(src SampleSource)
	GetLevel() float64
}

type EventType int

const (
	EventTrackLoaded EventType = iota
	EventLoadFailed
)

// Event is published on the event bus. Index refers to the playlist position.
type Event struct {
	Type    EventType
	Index   int
	Payload interface{}
}
