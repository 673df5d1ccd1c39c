package wavelet

import (
	"fmt"

	"github.com/cwbudde/algo-denoise/dsp/core"
)

// DWT performs one level of the discrete wavelet transform of x and returns
// the approximation and detail bands, each of length floor((N+F-1)/2).
func DWT(x []float64, w Wavelet) (approx, detail []float64, err error) {
	if len(x) == 0 {
		return nil, nil, core.ErrEmptySignal
	}

	f := w.Len()
	outLen := (len(x) + f - 1) / 2
	approx = make([]float64, outLen)
	detail = make([]float64, outLen)

	for o := range outLen {
		var a, d float64
		base := 2*o + 1
		for j := range f {
			v := x[symmetricIndex(base-j, len(x))]
			a += w.DecLo[j] * v
			d += w.DecHi[j] * v
		}
		approx[o] = a
		detail[o] = d
	}
	return approx, detail, nil
}

// IDWT inverts one level of DWT. Both bands must have the same length n,
// and the output has length 2n-F+2.
func IDWT(approx, detail []float64, w Wavelet) ([]float64, error) {
	if len(approx) != len(detail) {
		return nil, fmt.Errorf("%w: approx %d, detail %d", core.ErrLengthMismatch, len(approx), len(detail))
	}

	f := w.Len()
	half := f / 2
	n := len(approx)
	if n < half {
		return nil, fmt.Errorf("wavelet: band length %d shorter than half filter %d", n, half)
	}

	out := make([]float64, 2*n-f+2)
	o := 0
	for i := half - 1; i < n; i++ {
		var even, odd float64
		for j := range half {
			a, d := approx[i-j], detail[i-j]
			even += w.RecLo[2*j]*a + w.RecHi[2*j]*d
			odd += w.RecLo[2*j+1]*a + w.RecHi[2*j+1]*d
		}
		out[o] = even
		out[o+1] = odd
		o += 2
	}
	return out, nil
}

// Decompose runs levels passes of DWT on x and returns
// [cA_levels, cD_levels, ..., cD_1].
func Decompose(x []float64, w Wavelet, levels int) ([][]float64, error) {
	if levels < 1 {
		return nil, fmt.Errorf("wavelet: levels must be >= 1: %d", levels)
	}
	if len(x) == 0 {
		return nil, core.ErrEmptySignal
	}

	details := make([][]float64, 0, levels)
	approx := x
	for range levels {
		a, d, err := DWT(approx, w)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
		approx = a
	}

	coeffs := make([][]float64, 0, levels+1)
	coeffs = append(coeffs, approx)
	for i := len(details) - 1; i >= 0; i-- {
		coeffs = append(coeffs, details[i])
	}
	return coeffs, nil
}

// Reconstruct inverts Decompose. An approximation one sample longer than
// the next detail band is trimmed before each inverse step.
func Reconstruct(coeffs [][]float64, w Wavelet) ([]float64, error) {
	if len(coeffs) < 2 {
		return nil, fmt.Errorf("wavelet: need at least two coefficient bands, got %d", len(coeffs))
	}

	a := coeffs[0]
	for _, d := range coeffs[1:] {
		if len(a) == len(d)+1 {
			a = a[:len(d)]
		}
		next, err := IDWT(a, d, w)
		if err != nil {
			return nil, err
		}
		a = next
	}
	return a, nil
}

// MaxLevel returns the deepest decomposition level at which the
// approximation is still at least one filter length long.
func MaxLevel(n int, w Wavelet) int {
	f := w.Len()
	if f < 2 || n < f-1 {
		return 0
	}
	level := 0
	for m := n / (f - 1); m > 1; m /= 2 {
		level++
	}
	return level
}

// symmetricIndex maps i onto [0, n) by half-sample symmetric reflection,
// x[-1] = x[0], x[n] = x[n-1].
func symmetricIndex(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
