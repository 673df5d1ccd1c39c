package spectrum

import (
	"fmt"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-denoise/dsp/core"
	"gonum.org/v1/gonum/dsp/fourier"
)

// minFastLen is the shortest power-of-two length handed to algo-fft.
const minFastLen = 16

// Plan computes real-input FFTs of one fixed length.
//
// Power-of-two lengths of at least 16 use algo-fft. Other lengths fall back to gonum's
// mixed-radix real transform and length 1 is handled directly. A Plan is
// not safe for concurrent use.
type Plan struct {
	n     int
	fast  *algofft.Plan[complex128]
	slow  *fourier.FFT
	cbuf  []complex128
	cout  []complex128
	coeff []complex128
}

// NewPlan returns a plan for length-n transforms.
func NewPlan(n int) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("spectrum: fft length must be > 0: %d", n)
	}

	p := &Plan{n: n}
	if n == 1 {
		return p, nil
	}
	if n >= minFastLen && core.IsPowerOfTwo(n) {
		fast, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("spectrum: fft plan %d: %w", n, err)
		}
		p.fast = fast
		p.cbuf = make([]complex128, n)
		p.cout = make([]complex128, n)
		return p, nil
	}

	p.slow = fourier.NewFFT(n)
	p.coeff = make([]complex128, n/2+1)
	return p, nil
}

// Len returns the transform length.
func (p *Plan) Len() int { return p.n }

// Bins returns the number of non-negative frequency bins, n/2+1.
func (p *Plan) Bins() int { return p.n/2 + 1 }

// Forward returns the n/2+1 non-negative frequency bins of src.
// src must have length n.
func (p *Plan) Forward(src []float64) ([]complex128, error) {
	if len(src) != p.n {
		return nil, fmt.Errorf("spectrum: forward input length %d != %d", len(src), p.n)
	}

	out := make([]complex128, p.Bins())
	if p.n == 1 {
		out[0] = complex(src[0], 0)
		return out, nil
	}
	if p.slow != nil {
		p.slow.Coefficients(out, src)
		return out, nil
	}

	for i, v := range src {
		p.cbuf[i] = complex(v, 0)
	}
	if err := p.fast.Forward(p.cout, p.cbuf); err != nil {
		return nil, fmt.Errorf("spectrum: forward: %w", err)
	}
	copy(out, p.cout[:len(out)])
	return out, nil
}

// Inverse returns the length-n real signal whose spectrum is bins.
//
// bins is read as a half spectrum. Missing bins count as zero and extra
// bins are ignored. The imaginary parts of the DC bin and, for even n, the
// Nyquist bin are discarded.
func (p *Plan) Inverse(bins []complex128) ([]float64, error) {
	half := p.Bins()
	out := make([]float64, p.n)
	if p.n == 1 {
		if len(bins) > 0 {
			out[0] = real(bins[0])
		}
		return out, nil
	}

	if p.slow != nil {
		for k := range p.coeff {
			p.coeff[k] = 0
			if k < len(bins) {
				p.coeff[k] = bins[k]
			}
		}
		p.coeff[0] = complex(real(p.coeff[0]), 0)
		if p.n%2 == 0 {
			p.coeff[half-1] = complex(real(p.coeff[half-1]), 0)
		}
		p.slow.Sequence(out, p.coeff)
		scale := 1 / float64(p.n)
		for i := range out {
			out[i] *= scale
		}
		return out, nil
	}

	for i := range p.cbuf {
		p.cbuf[i] = 0
	}
	for k := 0; k < half && k < len(bins); k++ {
		p.cbuf[k] = bins[k]
	}
	p.cbuf[0] = complex(real(p.cbuf[0]), 0)
	if p.n%2 == 0 {
		p.cbuf[half-1] = complex(real(p.cbuf[half-1]), 0)
	}
	// Hermitian mirror of the positive half.
	for k := 1; k < half; k++ {
		if m := p.n - k; m >= half {
			p.cbuf[m] = cmplx.Conj(p.cbuf[k])
		}
	}

	if err := p.fast.Inverse(p.cout, p.cbuf); err != nil {
		return nil, fmt.Errorf("spectrum: inverse: %w", err)
	}
	for i := range out {
		out[i] = real(p.cout[i])
	}
	return out, nil
}

// RFFT returns the n/2+1 non-negative frequency bins of src.
func RFFT(src []float64) ([]complex128, error) {
	if len(src) == 0 {
		return nil, core.ErrEmptySignal
	}
	p, err := NewPlan(len(src))
	if err != nil {
		return nil, err
	}
	return p.Forward(src)
}

// IRFFT returns the length-n real signal with half spectrum bins.
func IRFFT(bins []complex128, n int) ([]float64, error) {
	p, err := NewPlan(n)
	if err != nil {
		return nil, err
	}
	return p.Inverse(bins)
}
