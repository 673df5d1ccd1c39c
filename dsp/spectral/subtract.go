package spectral

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/spectrum"
)

// Subtractor removes a fixed noise magnitude spectrum from chunks.
//
// The noise spectrum is computed once at construction. A Subtractor is
// immutable and safe for concurrent use.
type Subtractor struct {
	noiseMag []float64
	noiseLen int
}

// NewSubtractor computes the magnitude spectrum of noise. An empty noise
// estimate gives a Subtractor that passes chunks through unchanged.
func NewSubtractor(noise []float64) (*Subtractor, error) {
	if len(noise) == 0 {
		return &Subtractor{}, nil
	}

	bins, err := spectrum.RFFT(noise)
	if err != nil {
		return nil, fmt.Errorf("spectral: noise spectrum: %w", err)
	}
	return &Subtractor{noiseMag: spectrum.Magnitude(bins), noiseLen: len(noise)}, nil
}

// NoiseBins returns the number of bins in the noise magnitude spectrum.
func (s *Subtractor) NoiseBins() int { return len(s.noiseMag) }

// NoiseMagnitude returns the noise magnitude expected in the rFFT of a
// chunk of n samples: resampled to n/2+1 bins and scaled by sqrt(n/m),
// where m is the noise estimate length, so that broadband noise keeps its
// level when the estimate and the chunk differ in length.
func (s *Subtractor) NoiseMagnitude(n int) ([]float64, error) {
	bins := n/2 + 1
	if len(s.noiseMag) == 0 {
		return make([]float64, bins), nil
	}
	mag, err := spectrum.Resample(s.noiseMag, bins)
	if err != nil {
		return nil, err
	}
	if n != s.noiseLen {
		scale := math.Sqrt(float64(n) / float64(s.noiseLen))
		for k := range mag {
			mag[k] *= scale
		}
	}
	return mag, nil
}

// Process returns chunk with the noise magnitude subtracted bin by bin,
// floored at zero, recombined with the chunk's own phase.
func (s *Subtractor) Process(chunk []float64) ([]float64, error) {
	if len(chunk) == 0 {
		return nil, core.ErrEmptySignal
	}
	if len(s.noiseMag) == 0 {
		out := make([]float64, len(chunk))
		copy(out, chunk)
		return out, nil
	}

	plan, err := spectrum.NewPlan(len(chunk))
	if err != nil {
		return nil, err
	}

	bins, err := plan.Forward(chunk)
	if err != nil {
		return nil, err
	}

	mag := spectrum.Magnitude(bins)
	phase := spectrum.Phase(bins)

	noise, err := s.NoiseMagnitude(len(chunk))
	if err != nil {
		return nil, err
	}

	for k := range mag {
		mag[k] = max(mag[k]-noise[k], 0)
	}

	cleaned, err := spectrum.Polar(mag, phase)
	if err != nil {
		return nil, err
	}
	return plan.Inverse(cleaned)
}

// Subtract is a one-shot form of NewSubtractor(noise).Process(chunk).
// The sample rate is validated but does not affect the result, since the
// noise spectrum is aligned by normalized frequency.
func Subtract(chunk, noise []float64, sampleRate float64) ([]float64, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidSampleRate, sampleRate)
	}

	s, err := NewSubtractor(noise)
	if err != nil {
		return nil, err
	}
	return s.Process(chunk)
}
