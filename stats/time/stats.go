package time

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	Power          float64 // energy / length
	Variance       float64 // population variance
	ZeroCrossings  int
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes the level statistics of signal.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	energy := floats.Dot(signal, signal)
	power := energy / float64(n)
	rms := math.Sqrt(power)
	peak := vecmath.MaxAbs(signal)
	mean, variance := stat.PopMeanVariance(signal, nil)

	s := Stats{
		Length:         n,
		DC:             mean,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		CrestFactor_dB: math.Inf(-1),
		Energy:         energy,
		Power:          power,
		Variance:       variance,
		ZeroCrossings:  ZeroCrossings(signal),
	}
	if rms > 0 {
		s.CrestFactor = peak / rms
		s.CrestFactor_dB = ampTodB(s.CrestFactor)
	}
	return s
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(floats.Dot(signal, signal) / float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return stat.Mean(signal, nil)
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	return vecmath.MaxAbs(signal)
}

// CrestFactor returns the crest factor (peak / RMS) of the signal.
// Returns 0 if RMS is zero.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// ZeroCrossings returns the number of zero crossings in the signal.
// A crossing is counted when consecutive samples have opposite signs.
func ZeroCrossings(signal []float64) int {
	var count int

	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}

// Compare holds the level change between two versions of a signal.
type Compare struct {
	Before Stats
	After  Stats
	// RMSChange_dB is After.RMS_dB - Before.RMS_dB.
	RMSChange_dB float64 //nolint:revive
}

// Diff computes Stats for both signals and their RMS change.
func Diff(before, after []float64) Compare {
	b, a := Calculate(before), Calculate(after)
	return Compare{Before: b, After: a, RMSChange_dB: a.RMS_dB - b.RMS_dB}
}
