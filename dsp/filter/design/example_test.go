package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-denoise/dsp/filter/biquad"
	"github.com/cwbudde/algo-denoise/dsp/filter/design"
)

func ExampleButterworthBP() {
	sections := design.ButterworthBP(300, 3400, 4, 8000)
	chain := biquad.NewChain(sections)

	fmt.Printf("sections=%d order=%d\n", chain.NumSections(), chain.Order())
	fmt.Printf("300 Hz: %.2f dB\n", chain.MagnitudeDB(300, 8000))
	// Output:
	// sections=4 order=8
	// 300 Hz: -3.01 dB
}
