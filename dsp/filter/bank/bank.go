package bank

import (
	"fmt"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/filter/biquad"
	"github.com/cwbudde/algo-denoise/dsp/filter/design"
	"github.com/cwbudde/algo-denoise/dsp/filter/fir"
)

// DesignFIR returns the windowed-sinc taps for spec.
func DesignFIR(spec FilterSpec) ([]float64, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	passZero := spec.Pass == Low || spec.Pass == Stop
	taps, err := fir.Design(spec.taps(), spec.Cutoff, spec.SampleRate, passZero, fir.WithWindow(spec.Window))
	if err != nil {
		return nil, fmt.Errorf("bank: %s FIR: %w", spec.Pass, err)
	}
	return taps, nil
}

// DesignIIR returns the Butterworth biquad sections for spec.
func DesignIIR(spec FilterSpec) ([]biquad.Coefficients, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var sections []biquad.Coefficients
	order := spec.order()
	switch spec.Pass {
	case Low:
		sections = design.ButterworthLP(spec.Cutoff[0], order, spec.SampleRate)
	case High:
		sections = design.ButterworthHP(spec.Cutoff[0], order, spec.SampleRate)
	case Band:
		sections = design.ButterworthBP(spec.Cutoff[0], spec.Cutoff[1], order, spec.SampleRate)
	case Stop:
		sections = design.ButterworthBS(spec.Cutoff[0], spec.Cutoff[1], order, spec.SampleRate)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("bank: %s IIR design failed: %w", spec.Pass, core.ErrInvalidFilterSpec)
	}
	return sections, nil
}

// ApplyFIR filters x with the FIR realisation of spec from a zero initial
// state. The output has the same length as x.
func ApplyFIR(x []float64, spec FilterSpec) ([]float64, error) {
	taps, err := DesignFIR(spec)
	if err != nil {
		return nil, err
	}
	return fir.Apply(taps, x), nil
}

// ApplyIIR filters x with the Butterworth realisation of spec from a zero
// initial state. The output has the same length as x.
func ApplyIIR(x []float64, spec FilterSpec) ([]float64, error) {
	sections, err := DesignIIR(spec)
	if err != nil {
		return nil, err
	}
	return biquad.NewChain(sections).Apply(x), nil
}
