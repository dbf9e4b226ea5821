// Package visualizer computes frequency-bar frames for the spectrum view.
package visualizer

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Defaults of a browser analyser node.
const (
	DefaultFFTSize   = 256
	DefaultMinDb     = -100.0
	DefaultMaxDb     = -30.0
	DefaultSmoothing = 0.8
)

// Analyzer turns blocks of samples into byte spectra with the same
// windowing, smoothing and dB scaling as a browser analyser node. It keeps
// the smoothed spectrum between calls and is not safe for concurrent use.
type Analyzer struct {
	fftSize   int
	minDb     float64
	maxDb     float64
	smoothing float64

	fft   *fourier.FFT
	block []float64
	coeff []complex128
	prev  []float64
}

type AnalyzerOption func(*Analyzer)

// WithFFTSize sets the block size; it must be a power of two of at least 32.
func WithFFTSize(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n >= 32 && n&(n-1) == 0 {
			a.fftSize = n
		}
	}
}

func WithDecibelRange(minDb, maxDb float64) AnalyzerOption {
	return func(a *Analyzer) {
		if minDb < maxDb {
			a.minDb, a.maxDb = minDb, maxDb
		}
	}
}

// WithSmoothing sets the time constant in [0,1).
func WithSmoothing(tau float64) AnalyzerOption {
	return func(a *Analyzer) {
		if tau >= 0 && tau < 1 {
			a.smoothing = tau
		}
	}
}

func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		fftSize:   DefaultFFTSize,
		minDb:     DefaultMinDb,
		maxDb:     DefaultMaxDb,
		smoothing: DefaultSmoothing,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.fft = fourier.NewFFT(a.fftSize)
	a.block = make([]float64, a.fftSize)
	a.coeff = make([]complex128, a.fftSize/2+1)
	a.prev = make([]float64, a.fftSize/2)
	return a
}

// FFTSize returns the analysis block length.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// FrequencyBinCount is half the FFT size.
func (a *Analyzer) FrequencyBinCount() int { return a.fftSize / 2 }

// Reset clears the smoothing history.
func (a *Analyzer) Reset() {
	clear(a.prev)
}

// ByteFrequencyData analyses the last FFTSize samples of block (zero
// padded at the front when shorter) and returns one byte per bin.
func (a *Analyzer) ByteFrequencyData(block []float64) []byte {
	clear(a.block)
	if len(block) > a.fftSize {
		block = block[len(block)-a.fftSize:]
	}
	copy(a.block[a.fftSize-len(block):], block)
	window.Blackman(a.block)

	a.coeff = a.fft.Coefficients(a.coeff, a.block)

	out := make([]byte, len(a.prev))
	scale := 1 / float64(a.fftSize)
	rangeScale := 255 / (a.maxDb - a.minDb)
	for k := range a.prev {
		c := a.coeff[k]
		mag := math.Hypot(real(c), imag(c)) * scale
		a.prev[k] = a.smoothing*a.prev[k] + (1-a.smoothing)*mag
		if math.IsNaN(a.prev[k]) || math.IsInf(a.prev[k], 0) {
			a.prev[k] = 0
		}
		out[k] = toByte((linearToDb(a.prev[k]) - a.minDb) * rangeScale)
	}
	return out
}

func linearToDb(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

func toByte(v float64) byte {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return byte(v)
}
