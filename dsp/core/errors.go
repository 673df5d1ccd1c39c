package core

import "errors"

var (
	// ErrEmptySignal is returned when an operation receives zero samples.
	ErrEmptySignal = errors.New("core: empty signal")
	// ErrInvalidFilterSpec is returned for cutoffs outside (0, fs/2), bad
	// orders or tap counts, or a cutoff count that does not fit the pass type.
	ErrInvalidFilterSpec = errors.New("core: invalid filter spec")
	// ErrUnsupportedMethod is returned for unknown denoising method names.
	ErrUnsupportedMethod = errors.New("core: unsupported method")
	// ErrDegenerateNormalization is returned when peak normalization is asked
	// for on a signal whose peak is zero.
	ErrDegenerateNormalization = errors.New("core: degenerate normalization")
	// ErrLengthMismatch is returned when two buffers must have equal length.
	ErrLengthMismatch = errors.New("core: length mismatch")
	// ErrInvalidSampleRate is returned for non-positive sample rates.
	ErrInvalidSampleRate = errors.New("core: invalid sample rate")
)
