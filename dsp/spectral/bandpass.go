package spectral

import (
	"fmt"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/spectrum"
)

// Bandpass zeroes every real-FFT bin of chunk whose centre frequency k*fs/N
// lies outside band and transforms back to len(chunk) samples.
//
// A band with no edges returns a copy of chunk without transforming it.
func Bandpass(chunk []float64, sampleRate float64, band Band) ([]float64, error) {
	if len(chunk) == 0 {
		return nil, core.ErrEmptySignal
	}
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidSampleRate, sampleRate)
	}
	if err := band.Validate(); err != nil {
		return nil, err
	}
	if band.IsAll() {
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

	for k, f := range spectrum.RFFTFreq(len(chunk), sampleRate) {
		if !band.Contains(f) {
			bins[k] = 0
		}
	}

	return plan.Inverse(bins)
}
