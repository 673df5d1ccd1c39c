package adaptive

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultStepSize is the LMS adaptation rate mu.
	DefaultStepSize = 0.01
	// DefaultOrder is the number of adaptive taps.
	DefaultOrder = 8
)

// Config holds the LMS parameters.
type Config struct {
	StepSize float64
	Order    int
}

// Option mutates a Config.
type Option func(*Config)

// WithStepSize sets mu.
func WithStepSize(mu float64) Option {
	return func(c *Config) { c.StepSize = mu }
}

// WithOrder sets the number of taps.
func WithOrder(order int) Option {
	return func(c *Config) { c.Order = order }
}

// DefaultConfig returns mu = 0.01 and order 8.
func DefaultConfig() Config {
	return Config{StepSize: DefaultStepSize, Order: DefaultOrder}
}

// Validate checks that the order is positive and mu finite and positive.
func (c Config) Validate() error {
	if c.Order < 1 {
		return fmt.Errorf("adaptive: order must be >= 1: %d", c.Order)
	}
	if !(c.StepSize > 0) || math.IsInf(c.StepSize, 0) {
		return fmt.Errorf("adaptive: step size must be finite and > 0: %v", c.StepSize)
	}
	return nil
}

// Filter is a single LMS canceller. It is not safe for concurrent use.
type Filter struct {
	mu      float64
	weights []float64
	buf     []float64
}

// NewFilter returns a Filter with zero weights and an empty reference
// history.
func NewFilter(opts ...Option) (*Filter, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Filter{
		mu:      cfg.StepSize,
		weights: make([]float64, cfg.Order),
		buf:     make([]float64, cfg.Order),
	}, nil
}

// Process pushes ref into the reference history, predicts the noise in
// desired and adapts the weights. It returns the error desired - y.
func (f *Filter) Process(desired, ref float64) float64 {
	copy(f.buf[1:], f.buf[:len(f.buf)-1])
	f.buf[0] = ref

	y := floats.Dot(f.weights, f.buf)
	e := desired - y
	floats.AddScaled(f.weights, 2*f.mu*e, f.buf)
	return e
}

// Weights returns a copy of the current tap weights.
func (f *Filter) Weights() []float64 {
	out := make([]float64, len(f.weights))
	copy(out, f.weights)
	return out
}

// Order returns the number of taps.
func (f *Filter) Order() int { return len(f.weights) }

// StepSize returns mu.
func (f *Filter) StepSize() float64 { return f.mu }

// Reset zeroes the weights and the reference history.
func (f *Filter) Reset() {
	core.Zero(f.weights)
	core.Zero(f.buf)
}

// LMS runs a fresh Filter over desired and returns the error signal.
// If reference is shorter than desired, the missing samples are zero.
func LMS(desired, reference []float64, opts ...Option) ([]float64, error) {
	if len(desired) == 0 {
		return nil, core.ErrEmptySignal
	}

	f, err := NewFilter(opts...)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(desired))
	for n, d := range desired {
		var r float64
		if n < len(reference) {
			r = reference[n]
		}
		out[n] = f.Process(d, r)
	}
	return out, nil
}
