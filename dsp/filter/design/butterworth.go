package design

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-denoise/dsp/filter/biquad"
)

// poleImagTol separates complex-conjugate pole pairs from real poles.
const poleImagTol = 1e-10

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		sections = append(sections, Lowpass(freq, q, sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderLP(freq, sampleRate))
	}
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		sections = append(sections, Highpass(freq, q, sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderHP(freq, sampleRate))
	}
	return sections
}

// ButterworthBP designs a bandpass Butterworth cascade passing [low, high] Hz.
//
// order is the prototype order; the result has order sections (total order
// 2*order) and unit gain at the geometric centre of the warped band.
func ButterworthBP(low, high float64, order int, sampleRate float64) []biquad.Coefficients {
	w1, w2, ok := warpedEdges(low, high, order, sampleRate)
	if !ok {
		return nil
	}
	bw := w2 - w1
	w0 := math.Sqrt(w1 * w2)

	poles := make([]complex128, 0, 2*order)
	for _, p := range butterworthPrototypePoles(order) {
		a := p * complex(bw/2, 0)
		d := cmplx.Sqrt(a*a - complex(w0*w0, 0))
		poles = append(poles, bilinearPole(a+d, sampleRate), bilinearPole(a-d, sampleRate))
	}

	num := biquad.Coefficients{B0: 1, B1: 0, B2: -1}
	sections := sectionsFromPoles(poles, num)
	if sections == nil {
		return nil
	}

	centre := sampleRate / math.Pi * math.Atan(w0/(2*sampleRate))
	return normalizeGain(sections, centre, sampleRate)
}

// ButterworthBS designs a bandstop Butterworth cascade rejecting [low, high] Hz.
//
// order is the prototype order; the result has order sections (total order
// 2*order) and unit gain at DC.
func ButterworthBS(low, high float64, order int, sampleRate float64) []biquad.Coefficients {
	w1, w2, ok := warpedEdges(low, high, order, sampleRate)
	if !ok {
		return nil
	}
	bw := w2 - w1
	w0 := math.Sqrt(w1 * w2)

	poles := make([]complex128, 0, 2*order)
	for _, p := range butterworthPrototypePoles(order) {
		a := complex(bw/2, 0) / p
		d := cmplx.Sqrt(a*a - complex(w0*w0, 0))
		poles = append(poles, bilinearPole(a+d, sampleRate), bilinearPole(a-d, sampleRate))
	}

	theta0 := 2 * math.Atan(w0/(2*sampleRate))
	num := biquad.Coefficients{B0: 1, B1: -2 * math.Cos(theta0), B2: 1}
	sections := sectionsFromPoles(poles, num)
	if sections == nil {
		return nil
	}

	return normalizeGain(sections, 0, sampleRate)
}

// butterworthQ returns the quality factor for a Butterworth filter section.
// index ranges from 0 to (order/2 - 1) for the biquad sections.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}

// butterworthFirstOrderLP designs a first-order lowpass Butterworth section.
func butterworthFirstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

// butterworthFirstOrderHP designs a first-order highpass Butterworth section.
func butterworthFirstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}

// butterworthPrototypePoles returns the left half-plane poles of the
// normalised analog Butterworth lowpass of the given order.
func butterworthPrototypePoles(order int) []complex128 {
	poles := make([]complex128, order)
	for k := range order {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		poles[k] = cmplx.Exp(complex(0, theta))
	}
	return poles
}

// warpedEdges pre-warps the band edges to analog rad/s for the bilinear
// transform at sampleRate.
func warpedEdges(low, high float64, order int, sampleRate float64) (float64, float64, bool) {
	if order <= 0 || !(low < high) {
		return 0, 0, false
	}
	if _, ok := normalizedW0(low, sampleRate); !ok {
		return 0, 0, false
	}
	if _, ok := normalizedW0(high, sampleRate); !ok {
		return 0, 0, false
	}

	k := 2 * sampleRate
	return k * math.Tan(math.Pi*low/sampleRate), k * math.Tan(math.Pi*high/sampleRate), true
}

func bilinearPole(s complex128, sampleRate float64) complex128 {
	k := complex(2*sampleRate, 0)
	return (k + s) / (k - s)
}

// sectionsFromPoles groups z-plane poles into conjugate pairs, then pairs the
// remaining real poles, and builds one section per pair with numerator num.
func sectionsFromPoles(poles []complex128, num biquad.Coefficients) []biquad.Coefficients {
	var (
		pairs [][2]complex128
		reals []float64
	)
	for _, p := range poles {
		switch {
		case imag(p) > poleImagTol:
			pairs = append(pairs, [2]complex128{p, cmplx.Conj(p)})
		case imag(p) < -poleImagTol:
			// Covered by its conjugate.
		default:
			reals = append(reals, real(p))
		}
	}
	if len(reals)%2 != 0 {
		return nil
	}
	sort.Float64s(reals)
	for i := 0; i < len(reals); i += 2 {
		pairs = append(pairs, [2]complex128{complex(reals[i], 0), complex(reals[i+1], 0)})
	}

	sections := make([]biquad.Coefficients, len(pairs))
	for i, pr := range pairs {
		sections[i] = biquad.Coefficients{
			B0: num.B0,
			B1: num.B1,
			B2: num.B2,
			A1: -real(pr[0] + pr[1]),
			A2: real(pr[0] * pr[1]),
		}
	}
	return sections
}

// normalizeGain folds the gain that makes |H(freq)| = 1 into the first section.
func normalizeGain(sections []biquad.Coefficients, freq, sampleRate float64) []biquad.Coefficients {
	mag := cmplx.Abs(biquad.NewChain(sections).Response(freq, sampleRate))
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return nil
	}
	sections[0] = sections[0].Scaled(1 / mag)
	return sections
}
