// Package fir designs and runs linear-phase windowed-sinc FIR filters.
//
// [Design] produces the taps of a lowpass, highpass, bandpass or bandstop
// filter from normalised band edges, tapered by a window from dsp/window and
// scaled to unit gain in the centre of its first passband. A [Filter] applies
// taps causally through a circular-buffer delay line that starts at rest, so
// [Apply] on a chunk has the same output as a direct-form transversal filter
// with zero initial conditions.
package fir
