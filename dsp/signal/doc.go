// Package signal generates deterministic test signals and provides peak
// normalization.
//
// All noise sources take an explicit seed or *rand.Rand so that synthetic
// runs are reproducible.
package signal
