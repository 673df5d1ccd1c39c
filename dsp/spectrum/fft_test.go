package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/internal/testutil"
	"github.com/mjibson/go-dsp/fft"
)

func TestPlanForwardMatchesReference(t *testing.T) {
	for _, n := range []int{1, 2, 8, 12, 64, 100, 255, 256} {
		x := testutil.DeterministicNoise(int64(n), 1, n)

		p, err := NewPlan(n)
		if err != nil {
			t.Fatalf("NewPlan(%d): %v", n, err)
		}

		got, err := p.Forward(x)
		if err != nil {
			t.Fatalf("Forward(%d): %v", n, err)
		}

		if len(got) != n/2+1 {
			t.Fatalf("n=%d: bins=%d want=%d", n, len(got), n/2+1)
		}

		want := fft.FFTReal(x)
		for k := range got {
			if cmplx.Abs(got[k]-want[k]) > 1e-9 {
				t.Fatalf("n=%d bin %d: got=%v want=%v", n, k, got[k], want[k])
			}
		}
	}
}

func TestPlanRoundTrip(t *testing.T) {
	for _, n := range []int{2, 7, 16, 100, 256} {
		x := testutil.DeterministicNoise(int64(n)+3, 1, n)

		p, err := NewPlan(n)
		if err != nil {
			t.Fatalf("NewPlan(%d): %v", n, err)
		}

		bins, err := p.Forward(x)
		if err != nil {
			t.Fatalf("Forward(%d): %v", n, err)
		}

		y, err := p.Inverse(bins)
		if err != nil {
			t.Fatalf("Inverse(%d): %v", n, err)
		}

		testutil.RequireSliceNearlyEqual(t, y, x, 1e-10)
	}
}

func TestInverseLengthsDifferFromBins(t *testing.T) {
	// A DC-only half spectrum yields a constant signal at any length.
	bins := []complex128{8}

	for _, n := range []int{4, 5, 16} {
		y, err := IRFFT(bins, n)
		if err != nil {
			t.Fatalf("IRFFT(%d): %v", n, err)
		}

		for i, v := range y {
			if math.Abs(v-8/float64(n)) > 1e-12 {
				t.Fatalf("n=%d y[%d]=%f want=%f", n, i, v, 8/float64(n))
			}
		}
	}
}

func TestInverseDropsExtraBins(t *testing.T) {
	x := testutil.DeterministicSine(50, 1000, 1, 16)

	bins, err := RFFT(x)
	if err != nil {
		t.Fatalf("RFFT: %v", err)
	}

	padded := append(append([]complex128(nil), bins...), 5+5i, 1)

	y, err := IRFFT(padded, 16)
	if err != nil {
		t.Fatalf("IRFFT: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, y, x, 1e-10)
}

func TestPlanErrors(t *testing.T) {
	if _, err := NewPlan(0); err == nil {
		t.Fatalf("expected error for zero length")
	}

	p, err := NewPlan(8)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}

	if _, err := p.Forward(make([]float64, 4)); err == nil {
		t.Fatalf("expected error for wrong input length")
	}

	if _, err := RFFT(nil); !errors.Is(err, core.ErrEmptySignal) {
		t.Fatalf("RFFT(nil) err=%v want ErrEmptySignal", err)
	}
}
