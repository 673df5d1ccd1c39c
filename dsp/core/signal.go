package core

import (
	"fmt"
	"time"
)

// Signal is a mono sample buffer with its sample rate in Hz.
//
// Samples are owned by the Signal; methods that return a new Signal say
// whether the backing array is shared.
type Signal struct {
	SampleRate int
	Samples    []float64
}

// NewSignal wraps samples without copying.
func NewSignal(samples []float64, sampleRate int) Signal {
	return Signal{SampleRate: sampleRate, Samples: samples}
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.Samples) }

// Duration returns the signal length in seconds.
func (s Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.SampleRate)
}

// TimeDuration returns Duration as a [time.Duration].
func (s Signal) TimeDuration() time.Duration {
	return time.Duration(s.Duration() * float64(time.Second))
}

// Validate reports whether the signal can be processed.
func (s Signal) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, s.SampleRate)
	}
	if len(s.Samples) == 0 {
		return ErrEmptySignal
	}
	return nil
}

// Slice returns the view [off, off+n) clamped to the signal bounds.
// The returned Signal shares the backing array.
func (s Signal) Slice(off, n int) Signal {
	if off < 0 {
		off = 0
	}
	if off > len(s.Samples) {
		off = len(s.Samples)
	}
	end := off + n
	if n < 0 || end > len(s.Samples) {
		end = len(s.Samples)
	}
	return Signal{SampleRate: s.SampleRate, Samples: s.Samples[off:end]}
}

// Head returns the first n samples, or the whole signal when it is shorter.
func (s Signal) Head(n int) []float64 {
	return s.Slice(0, n).Samples
}

// Clone returns a deep copy.
func (s Signal) Clone() Signal {
	out := Signal{SampleRate: s.SampleRate, Samples: make([]float64, len(s.Samples))}
	copy(out.Samples, s.Samples)
	return out
}

// WithSamples returns a Signal with the same rate and the given samples.
func (s Signal) WithSamples(samples []float64) Signal {
	return Signal{SampleRate: s.SampleRate, Samples: samples}
}
