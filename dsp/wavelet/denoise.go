package wavelet

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-denoise/dsp/core"
)

const (
	// DefaultWavelet is the filter bank used by Denoise.
	DefaultWavelet = "db8"
	// DefaultLevels is the decomposition depth used by Denoise.
	DefaultLevels = 4
	// DefaultThresholdFactor scales the universal threshold.
	DefaultThresholdFactor = 0.5

	// madScale converts the median absolute deviation of Gaussian noise to
	// its standard deviation.
	madScale = 0.6745
)

// Config holds the Denoise parameters.
type Config struct {
	Wavelet         string
	Levels          int
	ThresholdFactor float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns db8, four levels and a threshold factor of 0.5.
func DefaultConfig() Config {
	return Config{
		Wavelet:         DefaultWavelet,
		Levels:          DefaultLevels,
		ThresholdFactor: DefaultThresholdFactor,
	}
}

// WithWavelet selects the filter bank by name.
func WithWavelet(name string) Option {
	return func(c *Config) { c.Wavelet = name }
}

// WithLevels sets the decomposition depth.
func WithLevels(levels int) Option {
	return func(c *Config) { c.Levels = levels }
}

// WithThresholdFactor scales the universal threshold.
func WithThresholdFactor(factor float64) Option {
	return func(c *Config) { c.ThresholdFactor = factor }
}

// Validate checks c without looking up the wavelet.
func (c Config) Validate() error {
	if c.Levels < 1 {
		return fmt.Errorf("wavelet: levels must be >= 1: %d", c.Levels)
	}
	if c.ThresholdFactor < 0 || math.IsNaN(c.ThresholdFactor) || math.IsInf(c.ThresholdFactor, 0) {
		return fmt.Errorf("wavelet: threshold factor must be finite and >= 0: %v", c.ThresholdFactor)
	}
	return nil
}

// Denoise soft-thresholds every coefficient band of a multilevel
// decomposition of signal and reconstructs exactly len(signal) samples.
//
// The threshold is factor * sigma * sqrt(2 ln N), with sigma estimated as
// median(|cD_1|) / 0.6745 from the finest detail band.
func Denoise(signal []float64, opts ...Option) ([]float64, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(signal) == 0 {
		return nil, core.ErrEmptySignal
	}

	w, err := Lookup(cfg.Wavelet)
	if err != nil {
		return nil, err
	}

	coeffs, err := Decompose(signal, w, cfg.Levels)
	if err != nil {
		return nil, err
	}

	t := UniversalThreshold(coeffs[len(coeffs)-1], len(signal), cfg.ThresholdFactor)
	for _, band := range coeffs {
		SoftThresholdInPlace(band, t)
	}

	rec, err := Reconstruct(coeffs, w)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(signal))
	core.CopyInto(out, rec)
	return out, nil
}

// UniversalThreshold returns factor * sigma * sqrt(2 ln n) where sigma is
// the MAD estimate of the noise level in finest.
func UniversalThreshold(finest []float64, n int, factor float64) float64 {
	if n < 1 || len(finest) == 0 {
		return 0
	}
	sigma := NoiseSigma(finest)
	return factor * sigma * math.Sqrt(2*math.Log(float64(n)))
}

// NoiseSigma estimates the standard deviation of Gaussian noise in detail
// coefficients as median(|d|) / 0.6745.
func NoiseSigma(detail []float64) float64 {
	abs := make([]float64, len(detail))
	for i, v := range detail {
		abs[i] = math.Abs(v)
	}
	return Median(abs) / madScale
}

// Median returns the middle value of x, averaging the two middle values for
// even lengths. It returns 0 for an empty slice and does not modify x.
func Median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	s := make([]float64, len(x))
	copy(s, x)
	sort.Float64s(s)

	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

// SoftThreshold returns sign(c) * max(|c| - t, 0).
func SoftThreshold(c, t float64) float64 {
	mag := math.Abs(c) - t
	if mag <= 0 {
		return 0
	}
	return math.Copysign(mag, c)
}

// SoftThresholdInPlace applies SoftThreshold to every element of x.
func SoftThresholdInPlace(x []float64, t float64) {
	for i, v := range x {
		x[i] = SoftThreshold(v, t)
	}
}
