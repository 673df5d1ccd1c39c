// Package core holds the shared building blocks of the denoiser: the mono
// [Signal] buffer, the sentinel errors every stage wraps, processing options
// and small numeric helpers.
//
// The package has no dependencies on the algorithm packages so that each of
// them can import it freely.
package core
