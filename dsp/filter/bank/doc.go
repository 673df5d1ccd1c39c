// Package bank designs and applies the time-domain denoising filters.
//
// A [FilterSpec] names the pass type, cutoff frequencies, sample rate and
// size of a filter. [ApplyFIR] realises it as a Hamming-windowed sinc FIR
// and [ApplyIIR] as a Butterworth biquad cascade. Both start every call from
// a zero initial state, so each chunk of a chunked run is filtered
// independently of its neighbours:
//
//	spec := bank.FilterSpec{Pass: bank.Band, Cutoff: []float64{300, 3400}, SampleRate: 8000, Taps: 101}
//	out, err := bank.ApplyFIR(chunk, spec)
//
// A [Stream] keeps the delay lines between calls instead, for callers that
// want continuous filtering across chunk boundaries.
package bank
