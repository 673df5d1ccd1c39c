// Package spectrum provides real-input FFT plans and helpers for working
// with half spectra.
//
// Plan hides the backend choice: algo-fft for power-of-two lengths and
// gonum's fourier package for everything else. Forward returns the n/2+1
// non-negative bins and Inverse rebuilds a real signal of the plan length,
// normalized so that Inverse(Forward(x)) == x.
//
// The remaining helpers split bins into magnitude and phase, rebuild bins
// from polar form, and resample magnitude curves between FFT lengths.
package spectrum
