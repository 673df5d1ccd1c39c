package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"sync"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	buf.data = core.EnsureLen(buf.data, 2*n)
	return buf.data[:n], buf.data[n:], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
// All three slices must have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
// All three slices must have the same length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// Polar builds mag[k]*exp(j*phase[k]). The slices must have equal length.
func Polar(mag, phase []float64) ([]complex128, error) {
	if len(mag) != len(phase) {
		return nil, fmt.Errorf("spectrum: polar length mismatch: %d != %d", len(mag), len(phase))
	}
	out := make([]complex128, len(mag))
	for i := range mag {
		out[i] = cmplx.Rect(mag[i], phase[i])
	}
	return out, nil
}

// RFFTFreq returns the centre frequency in Hz of each of the n/2+1 bins of
// a length-n real FFT.
func RFFTFreq(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n/2+1)
	step := sampleRate / float64(n)
	for k := range out {
		out[k] = float64(k) * step
	}
	return out
}

// Resample maps values defined on an evenly spaced grid over [0, 1] onto
// another evenly spaced grid of n points by linear interpolation.
//
// It aligns a spectrum computed at one FFT length with the bins of another.
func Resample(values []float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("spectrum: resample length must be > 0: %d", n)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("spectrum: resample requires non-empty values")
	}
	if len(values) == n {
		out := make([]float64, n)
		copy(out, values)
		return out, nil
	}
	if len(values) == 1 {
		out := make([]float64, n)
		for i := range out {
			out[i] = values[0]
		}
		return out, nil
	}

	x := unitGrid(len(values))
	q := unitGrid(n)
	return InterpolateLinear(x, values, q)
}

func unitGrid(n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	den := float64(n - 1)
	for i := range out {
		out[i] = float64(i) / den
	}
	return out
}

// InterpolateLinear performs piecewise-linear interpolation at queryX.
//
// x must be strictly increasing and have the same length as y. Queries
// outside the range of x take the nearest end value.
func InterpolateLinear(x, y, queryX []float64) ([]float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("spectrum: interpolate requires non-empty x and y")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("spectrum: interpolate x/y length mismatch: %d != %d", len(x), len(y))
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("spectrum: interpolate x must be strictly increasing at index %d", i)
		}
	}

	out := make([]float64, len(queryX))
	for i, q := range queryX {
		if q <= x[0] || math.IsNaN(q) {
			out[i] = y[0]
			continue
		}
		if q >= x[len(x)-1] {
			out[i] = y[len(y)-1]
			continue
		}

		j := sort.SearchFloat64s(x, q)
		x0, x1 := x[j-1], x[j]
		t := (q - x0) / (x1 - x0)
		out[i] = y[j-1] + t*(y[j]-y[j-1])
	}
	return out, nil
}
