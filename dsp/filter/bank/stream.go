package bank

import (
	"fmt"

	"github.com/cwbudde/algo-denoise/dsp/filter/biquad"
	"github.com/cwbudde/algo-denoise/dsp/filter/fir"
)

// Realisation selects how a Stream implements its spec.
type Realisation int

const (
	FIR Realisation = iota
	IIR
)

func (r Realisation) String() string {
	switch r {
	case FIR:
		return "fir"
	case IIR:
		return "iir"
	default:
		return fmt.Sprintf("Realisation(%d)", int(r))
	}
}

// Stream is a filter whose delay line persists across Process calls, so a
// signal processed chunk by chunk matches the same signal processed whole.
// A Stream is not safe for concurrent use.
type Stream struct {
	spec  FilterSpec
	kind  Realisation
	fir   *fir.Filter
	chain *biquad.Chain
}

// NewStream designs spec with the given realisation.
func NewStream(spec FilterSpec, kind Realisation) (*Stream, error) {
	s := &Stream{spec: spec, kind: kind}
	switch kind {
	case FIR:
		taps, err := DesignFIR(spec)
		if err != nil {
			return nil, err
		}
		s.fir = fir.New(taps)
	case IIR:
		sections, err := DesignIIR(spec)
		if err != nil {
			return nil, err
		}
		s.chain = biquad.NewChain(sections)
	default:
		return nil, fmt.Errorf("bank: unknown realisation %v", kind)
	}
	return s, nil
}

// Process filters chunk into a new slice, continuing from the previous state.
func (s *Stream) Process(chunk []float64) []float64 {
	out := make([]float64, len(chunk))
	if s.fir != nil {
		s.fir.ProcessBlockTo(out, chunk)
		return out
	}
	copy(out, chunk)
	s.chain.ProcessBlock(out)
	return out
}

// Reset returns the filter to rest.
func (s *Stream) Reset() {
	if s.fir != nil {
		s.fir.Reset()
	}
	if s.chain != nil {
		s.chain.Reset()
	}
}

// Spec returns the spec the stream was built from.
func (s *Stream) Spec() FilterSpec { return s.spec }

// Realisation returns FIR or IIR.
func (s *Stream) Realisation() Realisation { return s.kind }
