package analysis

import (
	"math"
	"math/cmplx"

	"github.com/jscyril/vinyl_player/api"
	"gonum.org/v1/gonum/dsp/fourier"
)

var _ api.SpectrumAnalyzer = (*FFT)(nil)

// FFTConfig tunes the spectrum analyzer.
type FFTConfig struct {
	Size        int     // window length in samples, a power of two
	Smoothing   float64 // 0 = no smoothing, towards 1 = slower decay
	MinDecibels float64 // maps to 0
	MaxDecibels float64 // maps to 1
}

// DefaultFFTConfig matches the browser AnalyserNode defaults.
func DefaultFFTConfig() FFTConfig {
	return FFTConfig{
		Size:        2048,
		Smoothing:   0.8,
		MinDecibels: -100,
		MaxDecibels: -30,
	}
}

// FFT produces Size/2 magnitudes in [0,1] for the current input.
type FFT struct {
	cfg    FFTConfig
	input  api.SampleSource
	fft    *fourier.FFT
	window []float64
	buf    []float64
	coeffs []complex128
	smooth []float64

	spectrum []float64
}

// NewFFT creates an analyzer. Invalid sizes fall back to the default.
func NewFFT(cfg FFTConfig) *FFT {
	def := DefaultFFTConfig()
	if cfg.Size < 32 || cfg.Size&(cfg.Size-1) != 0 {
		cfg.Size = def.Size
	}
	if cfg.Smoothing < 0 || cfg.Smoothing >= 1 {
		cfg.Smoothing = def.Smoothing
	}
	if cfg.MaxDecibels <= cfg.MinDecibels {
		cfg.MinDecibels, cfg.MaxDecibels = def.MinDecibels, def.MaxDecibels
	}

	window := make([]float64, cfg.Size)
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(cfg.Size-1)))
	}

	return &FFT{
		cfg:    cfg,
		fft:    fourier.NewFFT(cfg.Size),
		window: window,
		buf:    make([]float64, cfg.Size),
		smooth: make([]float64, cfg.Size/2),
	}
}

// Bins returns the length of a non-empty spectrum.
func (f *FFT) Bins() int {
	return f.cfg.Size / 2
}

// SetInput selects the sound to analyze. Switching sources resets smoothing.
func (f *FFT) SetInput(src api.SampleSource) {
	if src == f.input {
		return
	}
	f.input = src
	clear(f.smooth)
}

// Analyze reads the latest window from the input and returns the spectrum.
// The result is empty when there is no input or the input has no samples.
func (f *FFT) Analyze() []float64 {
	if f.input == nil {
		f.spectrum = nil
		return nil
	}
	samples := f.input.Samples(f.cfg.Size)
	if len(samples) == 0 {
		f.spectrum = nil
		return nil
	}

	clear(f.buf)
	copy(f.buf, samples)
	for i := range f.buf {
		f.buf[i] *= f.window[i]
	}
	f.coeffs = f.fft.Coefficients(f.coeffs, f.buf)

	bins := f.Bins()
	if cap(f.spectrum) < bins {
		f.spectrum = make([]float64, bins)
	}
	f.spectrum = f.spectrum[:bins]

	n := float64(f.cfg.Size)
	span := f.cfg.MaxDecibels - f.cfg.MinDecibels
	for k := 0; k < bins; k++ {
		mag := cmplx.Abs(f.coeffs[k]) / n
		f.smooth[k] = f.cfg.Smoothing*f.smooth[k] + (1-f.cfg.Smoothing)*mag

		if f.smooth[k] <= 0 {
			f.spectrum[k] = 0
			continue
		}
		db := 20 * math.Log10(f.smooth[k])
		f.spectrum[k] = clamp01((db - f.cfg.MinDecibels) / span)
	}
	return f.spectrum
}

// Spectrum returns the result of the last Analyze.
func (f *FFT) Spectrum() []float64 {
	return f.spectrum
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
