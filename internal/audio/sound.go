package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/jscyril/vinyl_player/api"
	playerrors "github.com/jscyril/vinyl_player/pkg/errors"
)

var _ api.Sound = (*Sound)(nil)

// tapSize must cover the largest FFT window the analyzers ask for.
const tapSize = 8192

// Sound is one decoded track. While playing it owns this pipeline:
//
//	[Buffer] -> [hold at end] -> [Ctrl] -> [Volume] -> [Pan] -> [Tap] -> [Speaker]
type Sound struct {
	src    string
	engine *Engine
	state  atomic.Int32

	mu      sync.Mutex
	buffer  *beep.Buffer
	stream  beep.StreamSeeker
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	pan     *effects.Pan
	tap     *Tap
	level   float64
	panning float64
	start   int // sample offset used by the next Play from stopped
	playing bool
}

func newSound(src string, engine *Engine) *Sound {
	return &Sound{src: src, engine: engine, level: 1}
}

// Source returns the locator the sound was loaded from.
func (s *Sound) Source() string {
	return s.src
}

// load decodes the whole file into memory at the engine's sample rate.
func (s *Sound) load() error {
	file, err := os.Open(s.src)
	if err != nil {
		s.state.Store(int32(api.LoadFailed))
		return &playerrors.LoadError{Source: s.src, Err: err}
	}
	defer file.Close()

	streamer, format, err := DecodeAudio(file, s.src)
	if err != nil {
		s.state.Store(int32(api.LoadFailed))
		return &playerrors.LoadError{Source: s.src, Err: err}
	}
	defer streamer.Close()

	rate := s.engine.sampleRate
	var src beep.Streamer = streamer
	if format.SampleRate != rate {
		src = beep.Resample(4, format.SampleRate, rate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: format.Precision})
	buffer.Append(src)
	if err := streamer.Err(); err != nil {
		s.state.Store(int32(api.LoadFailed))
		return &playerrors.LoadError{Source: s.src, Err: fmt.Errorf("decode: %w", err)}
	}

	s.mu.Lock()
	s.buffer = buffer
	s.mu.Unlock()
	s.state.Store(int32(api.LoadLoaded))
	return nil
}

// LoadState reports whether decoding is pending, done or failed.
func (s *Sound) LoadState() api.LoadState {
	return api.LoadState(s.state.Load())
}

// IsLoaded reports whether the sound can be played.
func (s *Sound) IsLoaded() bool {
	return s.LoadState() == api.LoadLoaded
}

// Play starts the sound from its start offset, or resumes it when paused.
func (s *Sound) Play() error {
	if !s.IsLoaded() {
		return playerrors.NewPlayerError("play", s.src, playerrors.ErrTrackNotLoaded)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl != nil {
		speaker.Lock()
		s.ctrl.Paused = false
		speaker.Unlock()
		s.playing = true
		return nil
	}

	stream := s.buffer.Streamer(0, s.buffer.Len())
	if s.start > 0 {
		if err := stream.Seek(s.start); err != nil {
			return playerrors.NewPlayerError("seek", s.src, err)
		}
	}
	s.start = 0

	s.stream = stream
	s.ctrl = &beep.Ctrl{Streamer: &holdAtEnd{s: stream}}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2}
	applyVolume(s.volume, s.level)
	s.pan = &effects.Pan{Streamer: s.volume, Pan: s.panning}
	s.tap = NewTap(s.pan, tapSize)
	s.playing = true

	speaker.Play(s.tap)
	return nil
}

// Pause holds the sound at its position. Play resumes it.
func (s *Sound) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil || !s.playing {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
	s.playing = false
}

// Stop detaches the sound from the speaker and rewinds it.
func (s *Sound) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl != nil {
		// A Ctrl without a streamer reports drained, so the mixer drops it.
		speaker.Lock()
		s.ctrl.Streamer = nil
		speaker.Unlock()
	}
	s.stream = nil
	s.ctrl = nil
	s.volume = nil
	s.pan = nil
	s.tap = nil
	s.start = 0
	s.playing = false
}

// IsPlaying reports whether the sound is audible right now.
func (s *Sound) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// CurrentTime is the play position, or the queued start when stopped.
func (s *Sound) CurrentTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	rate := s.engine.sampleRate
	if s.stream == nil {
		return rate.D(s.start)
	}
	speaker.Lock()
	pos := s.stream.Position()
	speaker.Unlock()
	return rate.D(pos)
}

// Duration is the decoded length, zero until loaded.
func (s *Sound) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buffer == nil {
		return 0
	}
	return s.engine.sampleRate.D(s.buffer.Len())
}

// Jump moves the play position. Positions past the end park at the last sample.
func (s *Sound) Jump(position time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buffer == nil {
		return
	}
	n := s.engine.sampleRate.N(position)
	if n < 0 {
		n = 0
	}
	if last := s.buffer.Len() - 1; n > last {
		n = max(last, 0)
	}

	if s.stream == nil {
		s.start = n
		return
	}
	speaker.Lock()
	_ = s.stream.Seek(n)
	speaker.Unlock()
}

// SetVolume sets a linear gain in [0,1].
func (s *Sound) SetVolume(level float64) {
	level = math.Max(0, math.Min(1, level))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = level
	if s.volume != nil {
		speaker.Lock()
		applyVolume(s.volume, level)
		speaker.Unlock()
	}
}

// Volume returns the linear gain last set.
func (s *Sound) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Pan balances the output between left (-1) and right (1).
func (s *Sound) Pan(pan float64) {
	pan = math.Max(-1, math.Min(1, pan))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.panning = pan
	if s.pan != nil {
		speaker.Lock()
		s.pan.Pan = pan
		speaker.Unlock()
	}
}

// Panning returns the balance last set.
func (s *Sound) Panning() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panning
}

// Samples returns the most recent mono samples heard, or nil when stopped.
func (s *Sound) Samples(n int) []float64 {
	s.mu.Lock()
	tap := s.tap
	s.mu.Unlock()

	if tap == nil {
		return nil
	}
	return tap.Samples(n)
}

// applyVolume maps a linear gain onto the exponential effects.Volume.
func applyVolume(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(level)
}
