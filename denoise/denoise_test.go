package denoise

import (
	"context"
	"testing"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/filter/bank"
	"github.com/cwbudde/algo-denoise/dsp/signal"
	"github.com/cwbudde/algo-denoise/dsp/spectral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario is a 5 Hz unit sine at 500 Hz with Gaussian noise of std 0.7.
func scenario(t *testing.T) (core.Signal, signal.Noisy) {
	t.Helper()

	g := signal.NewGeneratorWithOptions([]core.ProcessorOption{core.WithSampleRate(500)}, signal.WithSeed(1))
	s, err := g.NoisySine(5, 0.7, 2048)
	require.NoError(t, err)
	return core.NewSignal(s.Noisy, 500), s
}

func TestParseMethod(t *testing.T) {
	for _, name := range MethodNames() {
		m, err := ParseMethod(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, m.Name())
	}

	m, err := ParseMethod(" FIR ")
	require.NoError(t, err)
	f, ok := m.(FIR)
	require.True(t, ok)
	assert.Equal(t, bank.Band, f.Spec.Pass)
	assert.Equal(t, []float64{300, 3400}, f.Spec.Cutoff)
	assert.Equal(t, 101, f.Spec.Taps)
	assert.Equal(t, 256, f.ChunkSize)

	m, err = ParseMethod("spectral")
	require.NoError(t, err)
	assert.Equal(t, Spectral{NoiseSamples: 256, ChunkSize: 256}, m)

	m, err = ParseMethod("wavelet")
	require.NoError(t, err)
	assert.Equal(t, Wavelet{Family: "db8", Levels: 4, ThresholdFactor: 0.5}, m)

	m, err = ParseMethod("freq")
	require.NoError(t, err)
	assert.Equal(t, Freq{Band: spectral.Between(300, 3400), ChunkSize: 256}, m)
}

func TestParseMethodUnknown(t *testing.T) {
	for _, name := range []string{"", "lms", "iir", "median"} {
		_, err := ParseMethod(name)
		require.ErrorIs(t, err, core.ErrUnsupportedMethod, name)
	}
}

func TestRunSelfReferenceBaseline(t *testing.T) {
	sig, _ := scenario(t)

	for _, name := range MethodNames() {
		m, err := ParseMethod(name)
		require.NoError(t, err)
		if name == "fir" {
			// The speech band does not fit under a 250 Hz Nyquist limit.
			m = FIR{Spec: bank.Lowpass(10, 0).WithTaps(51), ChunkSize: 256}
		}
		if name == "freq" {
			m = Freq{Band: spectral.Below(10), ChunkSize: 256}
		}

		res, err := Run(context.Background(), sig, m)
		require.NoError(t, err, name)

		assert.Equal(t, name, res.Method)
		assert.Equal(t, 500, res.SampleRate)
		assert.InDelta(t, 2048.0/500, res.Duration, 1e-12)
		assert.Zero(t, res.ReferenceSNR, name)
		assert.Equal(t, res.DenoisedSNR, res.Improvement, name)
		assert.Len(t, res.Output.Samples, sig.Len(), name)
		assert.Equal(t, 500, res.Output.SampleRate)
	}
}

func TestRunImprovesAgainstCleanReference(t *testing.T) {
	sig, parts := scenario(t)

	methods := []Method{
		FIR{Spec: bank.Lowpass(10, 0).WithTaps(51), ChunkSize: 256, Centered: true},
		Freq{Band: spectral.Below(10), ChunkSize: 256},
		DefaultWavelet(),
		DefaultLMS(parts.Noise),
		IIR{Spec: bank.Lowpass(20, 0).WithOrder(2), ChunkSize: 2048},
	}

	for _, m := range methods {
		res, err := Run(context.Background(), sig, m, WithReference(parts.Clean))
		require.NoError(t, err, m.Name())

		assert.Greater(t, res.Improvement, 0.0, "%s: %.2f dB -> %.2f dB", m.Name(), res.ReferenceSNR, res.DenoisedSNR)
		assert.InDelta(t, res.DenoisedSNR-res.ReferenceSNR, res.Improvement, 1e-12)
	}
}

func TestRunChunkedLengthPreserved(t *testing.T) {
	x := make([]float64, 1000)
	for i := range x {
		x[i] = float64(i%17) - 8
	}
	sig := core.NewSignal(x, 8000)

	for _, size := range []int{1, 100, 256, 999, 5000} {
		for _, m := range []Method{
			FIR{Spec: bank.Lowpass(1000, 0).WithTaps(21), ChunkSize: size},
			IIR{Spec: bank.Highpass(300, 0), ChunkSize: size},
			Freq{Band: spectral.Between(300, 3400), ChunkSize: size},
			Spectral{NoiseSamples: 64, ChunkSize: size},
		} {
			res, err := Run(context.Background(), sig, m)
			require.NoError(t, err, "%s size=%d", m.Name(), size)
			assert.Len(t, res.Output.Samples, len(x), "%s size=%d", m.Name(), size)
		}
	}
}

func TestRunWorkersMatchSequential(t *testing.T) {
	sig, _ := scenario(t)
	m := Spectral{NoiseSamples: 256, ChunkSize: 128}

	seq, err := Run(context.Background(), sig, m)
	require.NoError(t, err)
	par, err := Run(context.Background(), sig, m, WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, seq.Output.Samples, par.Output.Samples)
}

func TestRunContinuousMatchesWholeSignal(t *testing.T) {
	sig, _ := scenario(t)
	spec := bank.Lowpass(20, 0).WithTaps(31)

	chunked, err := Run(context.Background(), sig, FIR{Spec: spec, ChunkSize: 100, Continuous: true})
	require.NoError(t, err)
	whole, err := Run(context.Background(), sig, FIR{Spec: spec, ChunkSize: sig.Len()})
	require.NoError(t, err)

	assert.InDeltaSlice(t, whole.Output.Samples, chunked.Output.Samples, 1e-12)
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()
	sig, _ := scenario(t)

	_, err := Run(ctx, core.NewSignal(nil, 500), DefaultWavelet())
	require.ErrorIs(t, err, core.ErrEmptySignal)

	_, err = Run(ctx, core.NewSignal([]float64{1}, 0), DefaultWavelet())
	require.ErrorIs(t, err, core.ErrInvalidSampleRate)

	_, err = Run(ctx, sig, nil)
	require.ErrorIs(t, err, core.ErrUnsupportedMethod)

	// 3400 Hz is above Nyquist at 500 Hz.
	_, err = Run(ctx, sig, DefaultFIR())
	require.ErrorIs(t, err, core.ErrInvalidFilterSpec)

	_, err = Run(ctx, sig, DefaultIIR())
	require.ErrorIs(t, err, core.ErrInvalidFilterSpec)

	_, err = Run(ctx, sig, Freq{Band: spectral.Between(400, 300), ChunkSize: 256})
	require.ErrorIs(t, err, core.ErrInvalidFilterSpec)

	_, err = Run(ctx, sig, LMS{StepSize: 0.01, Order: 8})
	require.ErrorIs(t, err, core.ErrEmptySignal)

	_, err = Run(ctx, sig, DefaultWavelet(), WithReference([]float64{1, 2}))
	require.ErrorIs(t, err, core.ErrLengthMismatch)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Run(cancelled, sig, DefaultWavelet())
	require.ErrorIs(t, err, context.Canceled)
}

func TestPreview(t *testing.T) {
	g := signal.NewGeneratorWithOptions([]core.ProcessorOption{core.WithSampleRate(8000)}, signal.WithSeed(3))
	s, err := g.NoisySine(440, 0.2, 5000)
	require.NoError(t, err)
	sig := core.NewSignal(s.Noisy, 8000)

	res, err := Preview(context.Background(), sig, DefaultFreq(), WithReference(s.Clean))
	require.NoError(t, err)
	assert.Len(t, res.Output.Samples, DefaultPreviewSamples)
	assert.Greater(t, res.Improvement, 0.0)
	assert.Equal(t, DefaultPreviewSamples, res.Levels.Before.Length)
	assert.Less(t, res.Levels.After.RMS_dB, res.Levels.Before.RMS_dB)

	short := core.NewSignal(s.Noisy[:300], 8000)
	res, err = Preview(context.Background(), short, DefaultSpectral())
	require.NoError(t, err)
	assert.Len(t, res.Output.Samples, 300)
}

func TestPreviewIsSinglePass(t *testing.T) {
	sig, _ := scenario(t)
	m := FIR{Spec: bank.Lowpass(10, 0).WithTaps(51), ChunkSize: 256}

	preview, err := Preview(context.Background(), sig, m)
	require.NoError(t, err)

	whole, err := Run(context.Background(), sig, FIR{Spec: m.Spec, ChunkSize: sig.Len()})
	require.NoError(t, err)

	assert.InDeltaSlice(t, whole.Output.Samples, preview.Output.Samples, 1e-12)
}

func TestWithChunkSize(t *testing.T) {
	m := WithChunkSize(DefaultSpectral(), 512)
	assert.Equal(t, 512, m.(Spectral).ChunkSize)

	m = WithChunkSize(DefaultFreq(), 64)
	assert.Equal(t, 64, m.(Freq).ChunkSize)

	w := DefaultWavelet()
	assert.Equal(t, w, WithChunkSize(w, 64))
}
