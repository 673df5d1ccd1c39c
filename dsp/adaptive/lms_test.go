package adaptive

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/internal/testutil"
)

func TestFilterFirstSamples(t *testing.T) {
	f, err := NewFilter(WithOrder(2))
	if err != nil {
		t.Fatalf("NewFilter error: %v", err)
	}

	if e := f.Process(1, 1); e != 1 {
		t.Fatalf("e[0]=%g want=1", e)
	}
	testutil.RequireSliceNearlyEqual(t, f.Weights(), []float64{0.02, 0}, 1e-15)

	if e := f.Process(1, 1); math.Abs(e-0.98) > 1e-15 {
		t.Fatalf("e[1]=%g want=0.98", e)
	}
	testutil.RequireSliceNearlyEqual(t, f.Weights(), []float64{0.0396, 0.0196}, 1e-15)

	f.Reset()
	testutil.RequireSliceNearlyEqual(t, f.Weights(), []float64{0, 0}, 0)
	if e := f.Process(1, 1); e != 1 {
		t.Fatalf("after Reset e=%g want=1", e)
	}
}

func TestLMSMatchesFilter(t *testing.T) {
	d := testutil.DeterministicNoise(1, 1, 100)
	r := testutil.DeterministicNoise(2, 1, 100)

	got, err := LMS(d, r, WithStepSize(0.05), WithOrder(4))
	if err != nil {
		t.Fatalf("LMS error: %v", err)
	}

	f, _ := NewFilter(WithStepSize(0.05), WithOrder(4))
	for n := range d {
		if e := f.Process(d[n], r[n]); e != got[n] {
			t.Fatalf("sample %d: LMS=%g Filter=%g", n, got[n], e)
		}
	}
}

func TestLMSConvergesWithIdenticalReference(t *testing.T) {
	x := testutil.DeterministicSine(5, 500, 1, 2048)

	e, err := LMS(x, x)
	if err != nil {
		t.Fatalf("LMS error: %v", err)
	}

	head := testutil.MeanSquare(e[:200])
	tail := testutil.MeanSquare(e[len(e)-200:])

	if tail >= 0.01*head {
		t.Fatalf("error did not converge: head=%g tail=%g", head, tail)
	}
}

func TestLMSCancelsCorrelatedNoise(t *testing.T) {
	const n = 4096

	clean := testutil.DeterministicSine(5, 500, 1, n)
	noise := testutil.DeterministicGaussian(7, 0.7, n)
	noisy := testutil.Add(clean, noise)

	e, err := LMS(noisy, noise)
	if err != nil {
		t.Fatalf("LMS error: %v", err)
	}

	residual := make([]float64, n/2)
	for i := range residual {
		residual[i] = e[n/2+i] - clean[n/2+i]
	}

	if got, before := testutil.MeanSquare(residual), testutil.MeanSquare(noise[n/2:]); got >= 0.5*before {
		t.Fatalf("residual noise %g not below half of %g", got, before)
	}
}

func TestLMSShortReference(t *testing.T) {
	d := []float64{1, 2, 3, 4}

	e, err := LMS(d, []float64{1})
	if err != nil {
		t.Fatalf("LMS error: %v", err)
	}

	if len(e) != len(d) {
		t.Fatalf("len=%d want=%d", len(e), len(d))
	}

	testutil.RequireFinite(t, e)
}

func TestLMSErrors(t *testing.T) {
	if _, err := LMS(nil, nil); !errors.Is(err, core.ErrEmptySignal) {
		t.Fatalf("err=%v want ErrEmptySignal", err)
	}
	if _, err := LMS([]float64{1}, nil, WithOrder(0)); err == nil {
		t.Fatalf("expected error for zero order")
	}
	if _, err := LMS([]float64{1}, nil, WithStepSize(0)); err == nil {
		t.Fatalf("expected error for zero step size")
	}
	if _, err := NewFilter(WithStepSize(math.Inf(1))); err == nil {
		t.Fatalf("expected error for infinite step size")
	}
}
