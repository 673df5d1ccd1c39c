// Package biquad provides the second-order IIR sections used by the
// Butterworth designs.
//
// A [Section] implements Direct Form II Transposed processing for one set of
// [Coefficients]. A [Chain] cascades sections behind an input gain; its
// [Chain.Apply] runs a chunk from rest, which is how chunked IIR filtering
// keeps chunks independent of each other. Coefficient design lives in
// dsp/filter/design.
package biquad
