// Package spectral implements FFT-domain denoisers that work on one chunk
// at a time: a brick-wall bandpass mask and magnitude spectral subtraction.
//
// Both operate on the real FFT of the whole chunk with no windowing or
// overlap, and both return exactly as many samples as they were given.
package spectral
