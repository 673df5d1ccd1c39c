package fir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/window"
)

// DesignOption configures [Design].
type DesignOption func(*designConfig)

type designConfig struct {
	window  window.Type
	beta    float64
	noScale bool
}

// WithWindow selects the taper. The default is Hamming.
func WithWindow(t window.Type) DesignOption {
	return func(c *designConfig) {
		c.window = t
	}
}

// WithKaiserBeta sets beta for [window.TypeKaiser].
func WithKaiserBeta(beta float64) DesignOption {
	return func(c *designConfig) {
		if beta >= 0 {
			c.beta = beta
		}
	}
}

// WithoutScaling leaves the taps unnormalised.
func WithoutScaling() DesignOption {
	return func(c *designConfig) {
		c.noScale = true
	}
}

// Design returns numTaps windowed-sinc coefficients.
//
// cutoffs are band edges in Hz, strictly increasing inside (0, sampleRate/2).
// passZero selects whether the response starts with a passband at DC: one
// cutoff with passZero is a lowpass, without it a highpass; two cutoffs
// without passZero give a bandpass, with it a bandstop. Filters that pass
// Nyquist need an odd tap count.
func Design(numTaps int, cutoffs []float64, sampleRate float64, passZero bool, opts ...DesignOption) ([]float64, error) {
	cfg := designConfig{window: window.TypeHamming, beta: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if numTaps < 1 {
		return nil, fmt.Errorf("fir: numTaps must be >= 1: %d: %w", numTaps, core.ErrInvalidFilterSpec)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("fir: sample rate must be > 0: %v: %w", sampleRate, core.ErrInvalidFilterSpec)
	}
	if len(cutoffs) == 0 {
		return nil, fmt.Errorf("fir: at least one cutoff required: %w", core.ErrInvalidFilterSpec)
	}

	nyquist := sampleRate / 2
	edges := make([]float64, 0, len(cutoffs)+2)
	if passZero {
		edges = append(edges, 0)
	}
	prev := 0.0
	for _, fc := range cutoffs {
		norm := fc / nyquist
		if !(norm > 0 && norm < 1) {
			return nil, fmt.Errorf("fir: cutoff %v Hz outside (0, %v): %w", fc, nyquist, core.ErrInvalidFilterSpec)
		}
		if norm <= prev {
			return nil, fmt.Errorf("fir: cutoffs must be strictly increasing: %w", core.ErrInvalidFilterSpec)
		}
		prev = norm
		edges = append(edges, norm)
	}

	passNyquist := (len(cutoffs)%2 == 1) != passZero
	if passNyquist && numTaps%2 == 0 {
		return nil, fmt.Errorf("fir: a filter passing Nyquist needs an odd tap count: %d: %w",
			numTaps, core.ErrInvalidFilterSpec)
	}
	if passNyquist {
		edges = append(edges, 1)
	}

	alpha := 0.5 * float64(numTaps-1)
	h := make([]float64, numTaps)
	for i := range h {
		m := float64(i) - alpha
		for b := 0; b+1 < len(edges); b += 2 {
			left, right := edges[b], edges[b+1]
			h[i] += right*sinc(right*m) - left*sinc(left*m)
		}
	}

	taper := window.Generate(cfg.window, numTaps, window.WithAlpha(cfg.beta))
	if err := window.ApplyCoefficientsInPlace(h, taper); err != nil {
		return nil, fmt.Errorf("fir: %w", err)
	}

	if cfg.noScale {
		return h, nil
	}

	// Unit gain at DC, at Nyquist, or in the middle of the first passband.
	left, right := edges[0], edges[1]
	var f float64
	switch {
	case left == 0:
		f = 0
	case right == 1:
		f = 1
	default:
		f = 0.5 * (left + right)
	}
	s := 0.0
	for i, v := range h {
		s += v * math.Cos(math.Pi*(float64(i)-alpha)*f)
	}
	for i := range h {
		h[i] /= s
	}

	return h, nil
}

// Lowpass designs a lowpass filter with cutoff in Hz.
func Lowpass(numTaps int, cutoff, sampleRate float64, opts ...DesignOption) ([]float64, error) {
	return Design(numTaps, []float64{cutoff}, sampleRate, true, opts...)
}

// Highpass designs a highpass filter with cutoff in Hz. numTaps must be odd.
func Highpass(numTaps int, cutoff, sampleRate float64, opts ...DesignOption) ([]float64, error) {
	return Design(numTaps, []float64{cutoff}, sampleRate, false, opts...)
}

// Bandpass designs a bandpass filter passing [low, high] Hz.
func Bandpass(numTaps int, low, high, sampleRate float64, opts ...DesignOption) ([]float64, error) {
	return Design(numTaps, []float64{low, high}, sampleRate, false, opts...)
}

// Bandstop designs a bandstop filter rejecting [low, high] Hz. numTaps must be odd.
func Bandstop(numTaps int, low, high, sampleRate float64, opts ...DesignOption) ([]float64, error) {
	return Design(numTaps, []float64{low, high}, sampleRate, true, opts...)
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}
