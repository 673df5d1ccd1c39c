package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-denoise/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleRFFT() {
	bins, _ := spectrum.RFFT([]float64{1, 1, 1, 1})
	fmt.Println(len(bins), real(bins[0]))
	// Output:
	// 3 4
}

func ExampleIRFFT() {
	x, _ := spectrum.IRFFT([]complex128{4}, 4)
	fmt.Printf("%.1f %.1f %.1f %.1f\n", x[0], x[1], x[2], x[3])
	// Output:
	// 1.0 1.0 1.0 1.0
}

func ExampleResample() {
	out, _ := spectrum.Resample([]float64{0, 10, 20}, 5)
	fmt.Println(out)
	// Output:
	// [0 5 10 15 20]
}
