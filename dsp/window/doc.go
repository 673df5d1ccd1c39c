// Package window generates the tapering windows used by the FIR designer.
//
// Windows are returned in symmetric form by default, matching what a
// windowed-sinc design needs; [WithPeriodic] selects the FFT-framing form.
package window
