package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := NewGenerator(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed replaces the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// GaussianNoise generates deterministic zero-mean Gaussian noise with
// standard deviation std.
func (g *Generator) GaussianNoise(std float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if std < 0 {
		return nil, fmt.Errorf("noise std must be >= 0: %f", std)
	}
	return Gaussian(rand.New(rand.NewSource(g.seed)), std, samples), nil
}

// Gaussian draws n samples of zero-mean Gaussian noise from rng.
func Gaussian(rng *rand.Rand, std float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64() * std
	}
	return out
}

// Noisy is a synthetic test signal split into its parts.
type Noisy struct {
	Clean []float64
	Noise []float64
	Noisy []float64
}

// NoisySine returns a unit sine at freqHz plus Gaussian noise with standard
// deviation noiseLevel, together with both components.
func (g *Generator) NoisySine(freqHz, noiseLevel float64, samples int) (Noisy, error) {
	clean, err := g.Sine(freqHz, 1, samples)
	if err != nil {
		return Noisy{}, err
	}
	noise, err := g.GaussianNoise(noiseLevel, samples)
	if err != nil {
		return Noisy{}, err
	}

	noisy := make([]float64, samples)
	vecmath.AddBlock(noisy, clean, noise)
	return Noisy{Clean: clean, Noise: noise, Noisy: noisy}, nil
}

// Peak returns max(|x|), or 0 for an empty slice.
func Peak(data []float64) float64 {
	return vecmath.MaxAbs(data)
}

// Normalize scales data to target peak amplitude and returns a new slice.
//
// A signal whose peak is zero cannot be normalized and returns
// core.ErrDegenerateNormalization.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 || math.IsNaN(targetPeak) {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, core.ErrEmptySignal
	}

	peak := Peak(data)
	if peak == 0 {
		return nil, core.ErrDegenerateNormalization
	}
	if math.IsInf(peak, 0) || math.IsNaN(peak) {
		return nil, fmt.Errorf("normalize input peak is not finite: %v", peak)
	}

	out := make([]float64, len(data))
	vecmath.ScaleBlock(out, data, targetPeak/peak)
	return out, nil
}
