package bank

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/window"
)

const (
	// DefaultTaps is the FIR length used when FilterSpec.Taps is zero.
	DefaultTaps = 101
	// DefaultOrder is the Butterworth order used when FilterSpec.Order is zero.
	DefaultOrder = 4
)

// PassType selects which part of the spectrum a filter keeps.
type PassType int

const (
	Low PassType = iota
	High
	Band
	Stop
)

var passNames = [...]string{Low: "low", High: "high", Band: "band", Stop: "stop"}

func (p PassType) String() string {
	if p >= 0 && int(p) < len(passNames) {
		return passNames[p]
	}
	return fmt.Sprintf("PassType(%d)", int(p))
}

// ParsePassType accepts low, high, band and stop, plus the long forms
// lowpass, highpass, bandpass and bandstop.
func ParsePassType(name string) (PassType, error) {
	name = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "pass")
	if name == "bandstop" {
		name = "stop"
	}
	for i, n := range passNames {
		if n == name {
			return PassType(i), nil
		}
	}
	return 0, fmt.Errorf("bank: unknown pass type %q: %w", name, core.ErrInvalidFilterSpec)
}

// cutoffCount returns how many cutoffs the pass type takes.
func (p PassType) cutoffCount() int {
	if p == Band || p == Stop {
		return 2
	}
	return 1
}

// FilterSpec describes a filter independently of its realisation.
type FilterSpec struct {
	Pass PassType
	// Cutoff holds one frequency in Hz for Low/High and an ascending pair
	// for Band/Stop.
	Cutoff     []float64
	SampleRate float64
	// Taps is the FIR length. Zero selects DefaultTaps.
	Taps int
	// Order is the Butterworth prototype order. Zero selects DefaultOrder.
	Order int
	// Window tapers the FIR design. The zero value is rectangular, so
	// specs built by the helpers below set Hamming.
	Window window.Type
}

// Lowpass returns a FIR/IIR lowpass spec with default size and Hamming window.
func Lowpass(cutoff, sampleRate float64) FilterSpec {
	return FilterSpec{Pass: Low, Cutoff: []float64{cutoff}, SampleRate: sampleRate, Window: window.TypeHamming}
}

// Highpass returns a highpass spec with default size and Hamming window.
func Highpass(cutoff, sampleRate float64) FilterSpec {
	return FilterSpec{Pass: High, Cutoff: []float64{cutoff}, SampleRate: sampleRate, Window: window.TypeHamming}
}

// Bandpass returns a bandpass spec with default size and Hamming window.
func Bandpass(low, high, sampleRate float64) FilterSpec {
	return FilterSpec{Pass: Band, Cutoff: []float64{low, high}, SampleRate: sampleRate, Window: window.TypeHamming}
}

// Bandstop returns a bandstop spec with default size and Hamming window.
func Bandstop(low, high, sampleRate float64) FilterSpec {
	return FilterSpec{Pass: Stop, Cutoff: []float64{low, high}, SampleRate: sampleRate, Window: window.TypeHamming}
}

// WithTaps returns a copy of s with the FIR length set.
func (s FilterSpec) WithTaps(n int) FilterSpec {
	s.Taps = n
	return s
}

// WithOrder returns a copy of s with the IIR order set.
func (s FilterSpec) WithOrder(n int) FilterSpec {
	s.Order = n
	return s
}

// WithSampleRate returns a copy of s for another sample rate.
func (s FilterSpec) WithSampleRate(fs float64) FilterSpec {
	s.SampleRate = fs
	return s
}

func (s FilterSpec) taps() int {
	if s.Taps == 0 {
		return DefaultTaps
	}
	return s.Taps
}

func (s FilterSpec) order() int {
	if s.Order == 0 {
		return DefaultOrder
	}
	return s.Order
}

// Validate checks the parts of the spec shared by FIR and IIR realisations.
func (s FilterSpec) Validate() error {
	if s.Pass < Low || s.Pass > Stop {
		return fmt.Errorf("bank: %v: %w", s.Pass, core.ErrInvalidFilterSpec)
	}
	if !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("bank: sample rate must be > 0: %v: %w", s.SampleRate, core.ErrInvalidFilterSpec)
	}
	if len(s.Cutoff) != s.Pass.cutoffCount() {
		return fmt.Errorf("bank: %s filter takes %d cutoff(s), got %d: %w",
			s.Pass, s.Pass.cutoffCount(), len(s.Cutoff), core.ErrInvalidFilterSpec)
	}
	nyquist := s.SampleRate / 2
	for i, fc := range s.Cutoff {
		if !(fc > 0 && fc < nyquist) {
			return fmt.Errorf("bank: cutoff %v Hz outside (0, %v): %w", fc, nyquist, core.ErrInvalidFilterSpec)
		}
		if i > 0 && fc <= s.Cutoff[i-1] {
			return fmt.Errorf("bank: cutoffs must be strictly ascending: %v: %w", s.Cutoff, core.ErrInvalidFilterSpec)
		}
	}
	if s.Taps < 0 {
		return fmt.Errorf("bank: taps must be >= 1: %d: %w", s.Taps, core.ErrInvalidFilterSpec)
	}
	if s.Order < 0 {
		return fmt.Errorf("bank: order must be >= 1: %d: %w", s.Order, core.ErrInvalidFilterSpec)
	}
	return nil
}
