package audio

import (
	"sync"

	"github.com/gopxl/beep/v2"
)

// Tap passes a stream through unchanged and keeps the last len(ring) frames
// as a mono mix, so analysis can read recent audio without touching the
// speaker goroutine.
type Tap struct {
	s beep.Streamer

	mu   sync.Mutex
	ring []float64
	next int // ring index the next frame is written to

	mono []float64 // scratch, only used from Stream
}

// NewTap wraps s, remembering the most recent size frames.
func NewTap(s beep.Streamer, size int) *Tap {
	return &Tap{s: s, ring: make([]float64, max(size, 1))}
}

// Stream implements beep.Streamer.
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.s.Stream(samples)
	if n == 0 {
		return n, ok
	}

	if cap(t.mono) < n {
		t.mono = make([]float64, n)
	}
	mono := t.mono[:n]
	for i, f := range samples[:n] {
		mono[i] = (f[0] + f[1]) / 2
	}
	if len(mono) > len(t.ring) {
		mono = mono[len(mono)-len(t.ring):]
	}

	t.mu.Lock()
	written := copy(t.ring[t.next:], mono)
	copy(t.ring, mono[written:])
	t.next = (t.next + len(mono)) % len(t.ring)
	t.mu.Unlock()
	return n, ok
}

// Err implements beep.Streamer.
func (t *Tap) Err() error {
	return t.s.Err()
}

// Samples returns the last n frames, oldest first. Frames older than the
// ring are reported as silence, so the result always has length n.
func (t *Tap) Samples(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	dst := out[max(0, n-len(t.ring)):]

	t.mu.Lock()
	// The ring holds older frames in ring[next:] and newer ones in ring[:next].
	start := len(t.ring) - len(dst)
	older := t.ring[t.next:]
	if start < len(older) {
		copied := copy(dst, older[start:])
		copy(dst[copied:], t.ring[:t.next])
	} else {
		copy(dst, t.ring[start-len(older):t.next])
	}
	t.mu.Unlock()
	return out
}

// holdAtEnd keeps a finished stream alive and silent, so the position stays
// parked at the end until someone stops or replaces the sound.
type holdAtEnd struct {
	s beep.Streamer
}

func (h *holdAtEnd) Stream(samples [][2]float64) (int, bool) {
	n, _ := h.s.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (h *holdAtEnd) Err() error {
	return h.s.Err()
}
