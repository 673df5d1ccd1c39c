package denoise

import (
	"context"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-denoise/dsp/adaptive"
	"github.com/cwbudde/algo-denoise/dsp/chunk"
	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/filter/bank"
	"github.com/cwbudde/algo-denoise/dsp/filter/biquad"
	"github.com/cwbudde/algo-denoise/dsp/filter/fir"
	"github.com/cwbudde/algo-denoise/dsp/spectral"
	"github.com/cwbudde/algo-denoise/dsp/wavelet"
	"github.com/facebookincubator/go-belt/tool/logger"
)

const (
	// DefaultNoiseSamples is the length of the leading noise estimate used
	// by spectral subtraction.
	DefaultNoiseSamples = 256

	// DefaultLowHz and DefaultHighHz bound the speech band kept by the fir
	// and freq methods.
	DefaultLowHz  = 300.0
	DefaultHighHz = 3400.0

	// DefaultFIRTaps is the FIR length used by the fir method.
	DefaultFIRTaps = 101
)

// Method is a denoising algorithm together with its parameters. The set of
// implementations is closed.
type Method interface {
	// Name is the identifier reported in results.
	Name() string

	apply(ctx context.Context, sig core.Signal, env runEnv) ([]float64, error)
}

// runEnv carries run-wide settings into a Method.
type runEnv struct {
	workers int
	// whole disables chunking so the method sees the signal in one piece.
	whole bool
}

func (e runEnv) chunkSize(size, n int) int {
	switch {
	case e.whole:
		return n
	case size <= 0:
		return core.DefaultChunkSize
	default:
		return size
	}
}

func (e runEnv) chunkOpts() []chunk.Option {
	return []chunk.Option{chunk.WithWorkers(e.workers)}
}

// Spectral subtracts the magnitude spectrum of the signal's leading
// NoiseSamples from every chunk.
type Spectral struct {
	NoiseSamples int
	ChunkSize    int
}

// Name implements Method.
func (Spectral) Name() string { return "spectral" }

func (m Spectral) apply(ctx context.Context, sig core.Signal, env runEnv) ([]float64, error) {
	noiseLen := m.NoiseSamples
	if noiseLen < 0 {
		return nil, fmt.Errorf("denoise: spectral noise samples must be >= 0: %d", noiseLen)
	}
	noise := sig.Head(noiseLen)
	logger.Debugf(ctx, "spectral: noise estimate %d samples", len(noise))

	sub, err := spectral.NewSubtractor(noise)
	if err != nil {
		return nil, err
	}
	return chunk.Process(sig.Samples, env.chunkSize(m.ChunkSize, sig.Len()), sub.Process, env.chunkOpts()...)
}

// FIR filters each chunk with a windowed-sinc FIR designed from Spec. The
// sample rate in Spec is replaced by the signal's.
type FIR struct {
	Spec      bank.FilterSpec
	ChunkSize int
	// Continuous carries the delay line across chunks instead of
	// restarting every chunk from zero.
	Continuous bool
	// Centered removes the (taps-1)/2 sample delay of the design by
	// centring the convolution within each chunk. It is ignored when
	// Continuous is set.
	Centered bool
}

// Name implements Method.
func (FIR) Name() string { return "fir" }

func (m FIR) apply(ctx context.Context, sig core.Signal, env runEnv) ([]float64, error) {
	spec := m.Spec.WithSampleRate(float64(sig.SampleRate))
	size := env.chunkSize(m.ChunkSize, sig.Len())

	if m.Continuous {
		return streamed(ctx, sig.Samples, spec, bank.FIR, size)
	}

	taps, err := bank.DesignFIR(spec)
	if err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "fir: %s %v Hz, %d taps, centered:%v", spec.Pass, spec.Cutoff, len(taps), m.Centered)

	apply := fir.Apply
	if m.Centered {
		apply = fir.ApplyCentered
	}
	return chunk.Process(sig.Samples, size, func(c []float64) ([]float64, error) {
		return apply(taps, c), nil
	}, env.chunkOpts()...)
}

// IIR filters each chunk with a Butterworth cascade designed from Spec.
// The sample rate in Spec is replaced by the signal's.
type IIR struct {
	Spec       bank.FilterSpec
	ChunkSize  int
	Continuous bool
}

// Name implements Method.
func (IIR) Name() string { return "iir" }

func (m IIR) apply(ctx context.Context, sig core.Signal, env runEnv) ([]float64, error) {
	spec := m.Spec.WithSampleRate(float64(sig.SampleRate))
	size := env.chunkSize(m.ChunkSize, sig.Len())

	if m.Continuous {
		return streamed(ctx, sig.Samples, spec, bank.IIR, size)
	}

	sections, err := bank.DesignIIR(spec)
	if err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "iir: %s %v Hz, %d sections", spec.Pass, spec.Cutoff, len(sections))

	chain := biquad.NewChain(sections)
	return chunk.Process(sig.Samples, size, func(c []float64) ([]float64, error) {
		return chain.Apply(c), nil
	}, env.chunkOpts()...)
}

func streamed(ctx context.Context, x []float64, spec bank.FilterSpec, kind bank.Realisation, size int) ([]float64, error) {
	s, err := bank.NewStream(spec, kind)
	if err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "%s: continuous %s %v Hz", kind, spec.Pass, spec.Cutoff)

	return chunk.Process(x, size, func(c []float64) ([]float64, error) {
		return s.Process(c), nil
	})
}

// Freq zeroes the FFT bins of each chunk outside Band.
type Freq struct {
	Band      spectral.Band
	ChunkSize int
}

// Name implements Method.
func (Freq) Name() string { return "freq" }

func (m Freq) apply(ctx context.Context, sig core.Signal, env runEnv) ([]float64, error) {
	fs := float64(sig.SampleRate)
	logger.Debugf(ctx, "freq: band %s", m.Band)

	return chunk.Process(sig.Samples, env.chunkSize(m.ChunkSize, sig.Len()), func(c []float64) ([]float64, error) {
		return spectral.Bandpass(c, fs, m.Band)
	}, env.chunkOpts()...)
}

// Wavelet soft-thresholds a multilevel wavelet decomposition of the whole
// signal.
type Wavelet struct {
	Family          string
	Levels          int
	ThresholdFactor float64
}

// Name implements Method.
func (Wavelet) Name() string { return "wavelet" }

func (m Wavelet) apply(ctx context.Context, sig core.Signal, _ runEnv) ([]float64, error) {
	logger.Debugf(ctx, "wavelet: %s, %d levels, factor %g", m.Family, m.Levels, m.ThresholdFactor)

	return wavelet.Denoise(sig.Samples,
		wavelet.WithWavelet(m.Family),
		wavelet.WithLevels(m.Levels),
		wavelet.WithThresholdFactor(m.ThresholdFactor),
	)
}

// LMS cancels the part of the signal predictable from Reference with an
// adaptive FIR. It always runs over the whole signal in order.
type LMS struct {
	Reference []float64
	StepSize  float64
	Order     int
}

// Name implements Method.
func (LMS) Name() string { return "lms" }

func (m LMS) apply(ctx context.Context, sig core.Signal, _ runEnv) ([]float64, error) {
	if len(m.Reference) == 0 {
		return nil, fmt.Errorf("denoise: lms needs a reference signal: %w", core.ErrEmptySignal)
	}
	logger.Debugf(ctx, "lms: mu %g, order %d, reference %d samples", m.StepSize, m.Order, len(m.Reference))

	return adaptive.LMS(sig.Samples, m.Reference,
		adaptive.WithStepSize(m.StepSize),
		adaptive.WithOrder(m.Order),
	)
}

// DefaultSpectral returns the parameters of the spectral method.
func DefaultSpectral() Spectral {
	return Spectral{NoiseSamples: DefaultNoiseSamples, ChunkSize: core.DefaultChunkSize}
}

// DefaultFIR returns the parameters of the fir method.
func DefaultFIR() FIR {
	return FIR{
		Spec:      bank.Bandpass(DefaultLowHz, DefaultHighHz, 0).WithTaps(DefaultFIRTaps),
		ChunkSize: core.DefaultChunkSize,
	}
}

// DefaultIIR returns a fourth-order Butterworth version of the fir band.
func DefaultIIR() IIR {
	return IIR{
		Spec:      bank.Bandpass(DefaultLowHz, DefaultHighHz, 0).WithOrder(bank.DefaultOrder),
		ChunkSize: core.DefaultChunkSize,
	}
}

// DefaultFreq returns the parameters of the freq method.
func DefaultFreq() Freq {
	return Freq{Band: spectral.Between(DefaultLowHz, DefaultHighHz), ChunkSize: core.DefaultChunkSize}
}

// DefaultWavelet returns the parameters of the wavelet method.
func DefaultWavelet() Wavelet {
	return Wavelet{
		Family:          wavelet.DefaultWavelet,
		Levels:          wavelet.DefaultLevels,
		ThresholdFactor: wavelet.DefaultThresholdFactor,
	}
}

// DefaultLMS returns an LMS canceller with mu 0.01 and 8 taps driven by
// reference.
func DefaultLMS(reference []float64) LMS {
	return LMS{Reference: reference, StepSize: adaptive.DefaultStepSize, Order: adaptive.DefaultOrder}
}

// MethodNames lists the names accepted by ParseMethod.
func MethodNames() []string {
	return []string{"spectral", "wavelet", "fir", "freq"}
}

// ParseMethod returns the default variant for name. Unknown names return
// core.ErrUnsupportedMethod.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "spectral":
		return DefaultSpectral(), nil
	case "wavelet":
		return DefaultWavelet(), nil
	case "fir":
		return DefaultFIR(), nil
	case "freq":
		return DefaultFreq(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)",
			core.ErrUnsupportedMethod, name, strings.Join(MethodNames(), ", "))
	}
}

// WithChunkSize returns a copy of m that processes size-sample chunks.
// Methods that work on the whole signal are returned unchanged.
func WithChunkSize(m Method, size int) Method {
	switch v := m.(type) {
	case Spectral:
		v.ChunkSize = size
		return v
	case FIR:
		v.ChunkSize = size
		return v
	case IIR:
		v.ChunkSize = size
		return v
	case Freq:
		v.ChunkSize = size
		return v
	default:
		return m
	}
}
