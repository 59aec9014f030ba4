package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/jscyril/vinyl_player/api"
	playerrors "github.com/jscyril/vinyl_player/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// DefaultLoadWorkers bounds how many tracks decode at once.
const DefaultLoadWorkers = 2

// Ensure Engine implements AudioContext at compile time
var _ api.AudioContext = (*Engine)(nil)

// Engine owns the speaker and hands out Sounds. Every sound is resampled to
// the engine's rate at load time, so the speaker is initialized exactly once.
type Engine struct {
	sampleRate beep.SampleRate
	log        zerolog.Logger

	// slots caps concurrent decodes; each one holds a whole track in memory
	// while it resamples.
	slots *semaphore.Weighted

	mu          sync.Mutex
	initialized bool
	suspended   bool
}

// NewEngine creates an engine mixing at sampleRate Hz.
func NewEngine(sampleRate int, logger zerolog.Logger) *Engine {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Engine{
		sampleRate: beep.SampleRate(sampleRate),
		slots:      semaphore.NewWeighted(DefaultLoadWorkers),
		log:        logger.With().Str("component", "audio").Logger(),
	}
}

// SetLoadWorkers changes how many loads may decode at once. Call it before
// the first Load.
func (e *Engine) SetLoadWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.slots = semaphore.NewWeighted(int64(n))
}

// SampleRate returns the rate every sound is played at.
func (e *Engine) SampleRate() beep.SampleRate {
	return e.sampleRate
}

// Init opens the output device. It is safe to call more than once.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initLocked()
}

func (e *Engine) initLocked() error {
	if e.initialized {
		return nil
	}
	if err := speaker.Init(e.sampleRate, e.sampleRate.N(time.Second/10)); err != nil {
		return playerrors.NewPlayerError("speaker_init", "", err)
	}
	e.initialized = true
	e.log.Debug().Int("sample_rate", int(e.sampleRate)).Msg("speaker initialized")
	return nil
}

// Suspend pauses the whole output pipeline.
func (e *Engine) Suspend() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized || e.suspended {
		return nil
	}
	if err := speaker.Suspend(); err != nil {
		return playerrors.NewPlayerError("suspend", "", err)
	}
	e.suspended = true
	return nil
}

// Resume starts the output pipeline, opening the device on first use.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.initLocked(); err != nil {
		return err
	}
	if !e.suspended {
		return nil
	}
	if err := speaker.Resume(); err != nil {
		return playerrors.NewPlayerError("resume", "", err)
	}
	e.suspended = false
	return nil
}

// Load queues src for decoding and returns its handle immediately. Exactly
// one of onSuccess or onError runs once decoding is done; until then the
// sound reports itself as unloaded.
func (e *Engine) Load(src string, onSuccess func(*Sound), onError func(error)) *Sound {
	s := newSound(src, e)
	slots := e.slots

	go func() {
		// Acquire only fails on a cancelled context.
		_ = slots.Acquire(context.Background(), 1)
		defer slots.Release(1)

		if err := s.load(); err != nil {
			e.log.Error().Err(err).Str("source", src).Msg("load failed")
			if onError != nil {
				onError(err)
			}
			return
		}
		e.log.Info().Str("source", src).Dur("duration", s.Duration()).Msg("loaded")
		if onSuccess != nil {
			onSuccess(s)
		}
	}()

	return s
}

// Close stops all output and releases the device.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	e.initialized = false
	e.suspended = false
}
