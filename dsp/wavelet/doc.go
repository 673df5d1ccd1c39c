// Package wavelet implements multilevel discrete wavelet transforms with
// orthogonal Daubechies filter banks and a soft-threshold denoiser built on
// them.
//
// Transforms use half-sample symmetric boundary extension. Decompose
// returns coefficient bands ordered coarsest first,
// [cA_n, cD_n, ..., cD_1], which is the layout Reconstruct expects.
package wavelet
