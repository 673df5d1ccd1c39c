// Package denoise runs one of the denoising algorithms over a whole signal
// and scores the result.
//
// A Method is one of the variant structs in this package. Each variant
// carries exactly the parameters its algorithm needs, and ParseMethod maps
// the four command-line names to their default variants:
//
//	spectral  Spectral{NoiseSamples: 256, ChunkSize: 256}
//	fir       FIR{Spec: 300-3400 Hz bandpass, 101 taps, ChunkSize: 256}
//	freq      Freq{Band: 300-3400 Hz, ChunkSize: 256}
//	wavelet   Wavelet{Name: "db8", Levels: 4, ThresholdFactor: 0.5}
//
// IIR and LMS variants are available to callers that build them directly.
//
// Run logs through the go-belt logger carried by the context.
package denoise
