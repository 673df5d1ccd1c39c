// Package chunk drives a per-chunk algorithm across a longer signal.
//
// The signal is cut into consecutive chunks of a fixed size starting at
// offset 0. The last chunk is shorter when the length is not a multiple of
// the size. Each chunk is handed to the algorithm on its own and the result
// is written back at the chunk's offset.
package chunk

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-denoise/dsp/core"
)

// Func processes one chunk and must return exactly len(chunk) samples.
// It must not retain or modify chunk.
type Func func(chunk []float64) ([]float64, error)

// Config holds the Process settings.
type Config struct {
	Workers int
}

// Option mutates a Config.
type Option func(*Config)

// WithWorkers evaluates up to n chunks concurrently. Values below 2 keep
// processing sequential. The output does not depend on n, so fn must not
// carry state between chunks when n > 1.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// Count returns the number of chunks Process uses for n samples.
func Count(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Bounds returns the [start, end) sample range of chunk i.
func Bounds(i, n, size int) (start, end int) {
	start = i * size
	end = min(start+size, n)
	return start, end
}

// Process applies fn to every chunk of signal and returns the reassembled
// output, which always has len(signal) samples.
//
// The first error stops processing and no partial output is returned.
func Process(signal []float64, size int, fn Func, opts ...Option) ([]float64, error) {
	if len(signal) == 0 {
		return nil, core.ErrEmptySignal
	}
	if size <= 0 {
		return nil, fmt.Errorf("chunk: size must be > 0: %d", size)
	}
	if fn == nil {
		return nil, fmt.Errorf("chunk: nil chunk function")
	}

	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	out := make([]float64, len(signal))
	count := Count(len(signal), size)

	if cfg.Workers < 2 || count < 2 {
		for i := range count {
			if err := runOne(signal, out, i, size, fn); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	if err := runParallel(signal, out, count, size, min(cfg.Workers, count), fn); err != nil {
		return nil, err
	}
	return out, nil
}

func runOne(signal, out []float64, i, size int, fn Func) error {
	start, end := Bounds(i, len(signal), size)

	res, err := fn(signal[start:end:end])
	if err != nil {
		return fmt.Errorf("chunk %d [%d:%d]: %w", i, start, end, err)
	}
	if len(res) != end-start {
		return fmt.Errorf("chunk %d [%d:%d]: got %d samples: %w",
			i, start, end, len(res), core.ErrLengthMismatch)
	}

	copy(out[start:end], res)
	return nil
}

func runParallel(signal, out []float64, count, size, workers int, fn Func) error {
	jobs := make(chan int)
	errs := make([]error, count)

	// firstFail is the lowest failing chunk index seen so far. Chunks above
	// it are skipped; chunks below it still run so their errors win.
	var (
		wg        sync.WaitGroup
		firstFail atomic.Int64
	)
	firstFail.Store(int64(count))
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if int64(i) > firstFail.Load() {
					continue
				}
				if errs[i] = runOne(signal, out, i, size, fn); errs[i] != nil {
					lowerFail(&firstFail, int64(i))
				}
			}
		}()
	}

	for i := range count {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Lowest failing chunk first.
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func lowerFail(v *atomic.Int64, i int64) {
	for {
		cur := v.Load()
		if i >= cur || v.CompareAndSwap(cur, i) {
			return
		}
	}
}
