package core

// DefaultChunkSize is the number of samples handed to chunked algorithms.
const DefaultChunkSize = 256

// ProcessorConfig defines common processing settings.
type ProcessorConfig struct {
	SampleRate float64
	ChunkSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the defaults used by the denoising methods.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 44100,
		ChunkSize:  DefaultChunkSize,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChunkSize sets the chunk size.
func WithChunkSize(chunkSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if chunkSize > 0 {
			cfg.ChunkSize = chunkSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
