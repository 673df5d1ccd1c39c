// Package design provides digital IIR filter coefficient designers.
//
// The functions produce biquad coefficients consumable by dsp/filter/biquad.
// Lowpass and highpass Butterworth filters are cascades of RBJ sections with
// Butterworth Q values. Bandpass and bandstop designs transform the analog
// Butterworth prototype poles and map them through the bilinear transform
// with pre-warped band edges, giving a filter of twice the prototype order.
package design
