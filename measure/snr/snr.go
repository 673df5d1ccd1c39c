// Package snr scores a processed signal against a reference in decibels.
package snr

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"gonum.org/v1/gonum/floats"
)

// Powers returns mean(reference^2) and mean((test-reference)^2).
func Powers(reference, test []float64) (signal, noise float64, err error) {
	if len(reference) == 0 || len(test) == 0 {
		return 0, 0, core.ErrEmptySignal
	}
	if len(reference) != len(test) {
		return 0, 0, fmt.Errorf("snr: reference %d samples, test %d: %w",
			len(reference), len(test), core.ErrLengthMismatch)
	}

	n := float64(len(reference))
	diff := make([]float64, len(test))
	floats.SubTo(diff, test, reference)

	return floats.Dot(reference, reference) / n, floats.Dot(diff, diff) / n, nil
}

// SNR returns 10*log10(mean(reference^2) / mean((test-reference)^2)).
//
// A test signal identical to its reference scores exactly 0 dB, which is
// the baseline a noisy input gets when it is its own reference. Otherwise a
// noise power of zero scores +Inf.
func SNR(reference, test []float64) (float64, error) {
	signal, noise, err := Powers(reference, test)
	if err != nil {
		return 0, err
	}
	if slices.Equal(reference, test) {
		return 0, nil
	}
	if noise == 0 {
		return math.Inf(1), nil
	}
	return core.LinearPowerToDB(signal / noise), nil
}

// Improvement returns SNR(reference, denoised) - SNR(reference, noisy).
func Improvement(reference, noisy, denoised []float64) (float64, error) {
	before, err := SNR(reference, noisy)
	if err != nil {
		return 0, fmt.Errorf("snr: noisy: %w", err)
	}
	after, err := SNR(reference, denoised)
	if err != nil {
		return 0, fmt.Errorf("snr: denoised: %w", err)
	}
	return after - before, nil
}
