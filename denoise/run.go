package denoise

import (
	"context"
	"fmt"
	"time"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/measure/snr"
	timestats "github.com/cwbudde/algo-denoise/stats/time"
	"github.com/facebookincubator/go-belt/tool/logger"
)

// DefaultPreviewSamples is the length of the excerpt used by Preview.
const DefaultPreviewSamples = 2048

// Result is the outcome of one Run. It is not modified after Run returns.
type Result struct {
	Method     string
	SampleRate int
	// Duration is the input length in seconds.
	Duration float64

	// ReferenceSNR scores the noisy input and DenoisedSNR the output, both
	// against the same reference. Without WithReference the reference is
	// the noisy input itself, so ReferenceSNR is 0 dB.
	ReferenceSNR float64
	DenoisedSNR  float64
	Improvement  float64

	Output core.Signal
	// Levels compares the time-domain statistics of input and output.
	Levels timestats.Compare

	// Elapsed is the wall time spent in the algorithm.
	Elapsed time.Duration
}

type runConfig struct {
	reference []float64
	workers   int
	whole     bool
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithReference scores the input and output against clean instead of
// against the noisy input. clean must have the input's length.
func WithReference(clean []float64) RunOption {
	return func(c *runConfig) { c.reference = clean }
}

// WithWorkers lets chunked methods process up to n chunks concurrently.
// Results do not depend on n.
func WithWorkers(n int) RunOption {
	return func(c *runConfig) { c.workers = n }
}

// Run denoises sig with m and scores the output.
func Run(ctx context.Context, sig core.Signal, m Method, opts ...RunOption) (_ *Result, _err error) {
	if m == nil {
		return nil, fmt.Errorf("denoise: nil method: %w", core.ErrUnsupportedMethod)
	}
	logger.Tracef(ctx, "Run, method:%s, len:%d", m.Name(), sig.Len())
	defer func() { logger.Tracef(ctx, "/Run, method:%s: %v", m.Name(), _err) }()

	if err := sig.Validate(); err != nil {
		return nil, fmt.Errorf("denoise: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	reference := sig.Samples
	if cfg.reference != nil {
		if len(cfg.reference) != sig.Len() {
			return nil, fmt.Errorf("denoise: reference has %d samples, signal %d: %w",
				len(cfg.reference), sig.Len(), core.ErrLengthMismatch)
		}
		reference = cfg.reference
	}

	start := time.Now()
	out, err := m.apply(ctx, sig, runEnv{workers: cfg.workers, whole: cfg.whole})
	if err != nil {
		return nil, fmt.Errorf("denoise: %s: %w", m.Name(), err)
	}
	elapsed := time.Since(start)

	if len(out) != sig.Len() {
		return nil, fmt.Errorf("denoise: %s returned %d samples for %d: %w",
			m.Name(), len(out), sig.Len(), core.ErrLengthMismatch)
	}

	before, err := snr.SNR(reference, sig.Samples)
	if err != nil {
		return nil, fmt.Errorf("denoise: reference SNR: %w", err)
	}
	after, err := snr.SNR(reference, out)
	if err != nil {
		return nil, fmt.Errorf("denoise: denoised SNR: %w", err)
	}

	res := &Result{
		Method:       m.Name(),
		SampleRate:   sig.SampleRate,
		Duration:     sig.Duration(),
		ReferenceSNR: before,
		DenoisedSNR:  after,
		Improvement:  after - before,
		Output:       core.NewSignal(out, sig.SampleRate),
		Levels:       timestats.Diff(sig.Samples, out),
		Elapsed:      elapsed,
	}
	logger.Debugf(ctx, "%s: %.2f dB -> %.2f dB in %v", res.Method, before, after, elapsed)
	return res, nil
}

// Preview runs m over the first DefaultPreviewSamples samples of sig in a
// single pass. Chunked methods see the excerpt as one chunk, and the
// spectral noise estimate comes from the excerpt's own head.
func Preview(ctx context.Context, sig core.Signal, m Method, opts ...RunOption) (*Result, error) {
	head := core.NewSignal(sig.Head(DefaultPreviewSamples), sig.SampleRate)
	opts = append(opts[:len(opts):len(opts)], func(c *runConfig) {
		c.whole = true
		if c.reference != nil && len(c.reference) > head.Len() {
			c.reference = c.reference[:head.Len()]
		}
	})
	return Run(ctx, head, m, opts...)
}
