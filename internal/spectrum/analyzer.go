package spectrum

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Analyzer converts windows of mono samples into byte frames using the same
// mapping as a browser AnalyserNode: windowed FFT, normalized magnitudes,
// exponential smoothing between calls, then decibels mapped onto 0..255.
type Analyzer struct {
	size      int
	smoothing float64
	minDB     float64
	maxDB     float64

	window   []float64
	input    []float64
	smoothed []float64
	frame    Frame
}

// Config controls Analyzer behavior.
type Config struct {
	FFTSize   int
	Smoothing float64
	MinDB     float64
	MaxDB     float64
}

// NewAnalyzer creates an Analyzer. FFTSize is rounded up to a power of two
// and defaults to 512.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = 512
	}
	cfg.FFTSize = nextPow2(cfg.FFTSize)
	if cfg.Smoothing < 0 || cfg.Smoothing >= 1 {
		cfg.Smoothing = 0.8
	}
	if cfg.MaxDB <= cfg.MinDB {
		cfg.MinDB, cfg.MaxDB = -100, -30
	}
	return &Analyzer{
		size:      cfg.FFTSize,
		smoothing: cfg.Smoothing,
		minDB:     cfg.MinDB,
		maxDB:     cfg.MaxDB,
		window:    window.Blackman(cfg.FFTSize),
		input:     make([]float64, cfg.FFTSize),
		smoothed:  make([]float64, cfg.FFTSize/2),
		frame:     make(Frame, cfg.FFTSize/2),
	}
}

// Analyze consumes the most recent samples (oldest first) and returns the
// updated frame. The returned slice is reused by the next call. Short input
// is zero padded at the front so the newest sample stays at the window end.
func (a *Analyzer) Analyze(samples []float64) Frame {
	if len(samples) > a.size {
		samples = samples[len(samples)-a.size:]
	}
	pad := a.size - len(samples)
	for i := range a.input {
		if i < pad {
			a.input[i] = 0
			continue
		}
		a.input[i] = samples[i-pad] * a.window[i]
	}

	coeffs := fft.FFTReal(a.input)

	scale := 1 / float64(a.size)
	span := a.maxDB - a.minDB
	for k := range a.smoothed {
		mag := cmplxAbs(coeffs[k]) * scale
		s := a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
		if math.IsNaN(s) || math.IsInf(s, 0) {
			s = 0
		}
		a.smoothed[k] = s

		if s <= 0 {
			a.frame[k] = 0
			continue
		}
		db := 20 * math.Log10(s)
		v := math.Floor(255 * (db - a.minDB) / span)
		switch {
		case v < 0:
			v = 0
		case v > 255:
			v = 255
		}
		a.frame[k] = uint8(v)
	}
	return a.frame
}

// Reset forgets the smoothing history, e.g. after a seek or a new track.
func (a *Analyzer) Reset() {
	for i := range a.smoothed {
		a.smoothed[i] = 0
	}
	for i := range a.frame {
		a.frame[i] = 0
	}
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
