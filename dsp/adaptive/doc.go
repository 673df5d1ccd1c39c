// Package adaptive implements least-mean-squares adaptive noise
// cancellation.
//
// A reference input correlated with the noise is filtered by an adaptive
// FIR whose output is subtracted from the desired input. The error signal
// is the cleaned output. Samples are processed strictly in order.
package adaptive
