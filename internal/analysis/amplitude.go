package analysis

import (
	"math"

	"github.com/jscyril/vinyl_player/api"
)

var _ api.LevelMeter = (*Amplitude)(nil)

// Amplitude reports the RMS level of the input's latest window.
type Amplitude struct {
	size      int
	smoothing float64
	input     api.SampleSource
	level     float64
}

// NewAmplitude measures windows of size samples. smoothing in [0,1) blends
// each reading with the previous one.
func NewAmplitude(size int, smoothing float64) *Amplitude {
	if size <= 0 {
		size = 1024
	}
	if smoothing < 0 || smoothing >= 1 {
		smoothing = 0
	}
	return &Amplitude{size: size, smoothing: smoothing}
}

// SetInput selects the sound to measure. nil resets the level.
func (a *Amplitude) SetInput(src api.SampleSource) {
	if src == a.input {
		return
	}
	a.input = src
	a.level = 0
}

// GetLevel returns the current level in [0,1]; 0 without input.
func (a *Amplitude) GetLevel() float64 {
	var rms float64
	if a.input != nil {
		if samples := a.input.Samples(a.size); len(samples) > 0 {
			var sum float64
			for _, s := range samples {
				sum += s * s
			}
			rms = math.Sqrt(sum / float64(len(samples)))
		}
	}
	a.level = clamp01(a.smoothing*a.level + (1-a.smoothing)*rms)
	return a.level
}
