package wavelet

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/internal/testutil"
)

func TestLookupFilterProperties(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			w, err := Lookup(name)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", name, err)
			}

			var sum, energy, hiSum float64
			for k := range w.RecLo {
				sum += w.RecLo[k]
				energy += w.RecLo[k] * w.RecLo[k]
				hiSum += w.DecHi[k]
			}

			if math.Abs(sum-math.Sqrt2) > 1e-9 {
				t.Fatalf("sum(h)=%g want sqrt(2)", sum)
			}
			if math.Abs(energy-1) > 1e-9 {
				t.Fatalf("sum(h^2)=%g want 1", energy)
			}
			if math.Abs(hiSum) > 1e-9 {
				t.Fatalf("sum(g)=%g want 0", hiSum)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("sym5"); !errors.Is(err, ErrUnknownWavelet) {
		t.Fatalf("err=%v want ErrUnknownWavelet", err)
	}

	w, err := Lookup(" DB1 ")
	if err != nil {
		t.Fatalf("Lookup alias: %v", err)
	}
	if w.Name != "haar" {
		t.Fatalf("alias resolved to %q", w.Name)
	}
}

func TestHaarDWT(t *testing.T) {
	w, _ := Lookup("haar")

	a, d, err := DWT([]float64{1, 2, 3, 4}, w)
	if err != nil {
		t.Fatalf("DWT error: %v", err)
	}

	s := math.Sqrt2 / 2
	testutil.RequireSliceNearlyEqual(t, a, []float64{3 * s, 7 * s}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, d, []float64{-s, -s}, 1e-12)
}

func TestDWTLength(t *testing.T) {
	w, _ := Lookup("db8")

	for _, n := range []int{1, 5, 16, 17, 100} {
		a, d, err := DWT(make([]float64, n), w)
		if err != nil {
			t.Fatalf("DWT(%d): %v", n, err)
		}

		want := (n + 15) / 2
		if len(a) != want || len(d) != want {
			t.Fatalf("n=%d: len(a)=%d len(d)=%d want=%d", n, len(a), len(d), want)
		}
	}
}

func TestSymmetricIndex(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{0, 4, 0},
		{-1, 4, 0},
		{-2, 4, 1},
		{4, 4, 3},
		{5, 4, 2},
		{-5, 4, 3},
		{9, 4, 1},
		{-3, 1, 0},
	}

	for _, tc := range tests {
		if got := symmetricIndex(tc.i, tc.n); got != tc.want {
			t.Fatalf("symmetricIndex(%d, %d)=%d want=%d", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestPerfectReconstruction(t *testing.T) {
	for _, name := range []string{"haar", "db2", "db4", "db8"} {
		w, _ := Lookup(name)

		for _, n := range []int{64, 257, 1000} {
			x := testutil.DeterministicNoise(int64(n), 1, n)

			coeffs, err := Decompose(x, w, 4)
			if err != nil {
				t.Fatalf("%s n=%d Decompose: %v", name, n, err)
			}
			if len(coeffs) != 5 {
				t.Fatalf("%s n=%d: %d bands want 5", name, n, len(coeffs))
			}

			y, err := Reconstruct(coeffs, w)
			if err != nil {
				t.Fatalf("%s n=%d Reconstruct: %v", name, n, err)
			}
			if len(y) < n {
				t.Fatalf("%s n=%d: reconstructed %d samples", name, n, len(y))
			}

			testutil.RequireSliceNearlyEqual(t, y[:n], x, 1e-9)
		}
	}
}

func TestHaarOddLengthReconstruction(t *testing.T) {
	w, _ := Lookup("haar")
	x := []float64{1, 4, -2, 3, 0.5, 7, -1}

	coeffs, err := Decompose(x, w, 2)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	y, err := Reconstruct(coeffs, w)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, y[:len(x)], x, 1e-12)
}

func TestDecomposeErrors(t *testing.T) {
	w, _ := Lookup("db2")

	if _, err := Decompose([]float64{1, 2}, w, 0); err == nil {
		t.Fatalf("expected error for zero levels")
	}
	if _, err := Decompose(nil, w, 2); !errors.Is(err, core.ErrEmptySignal) {
		t.Fatalf("err=%v want ErrEmptySignal", err)
	}
	if _, err := Reconstruct([][]float64{{1}}, w); err == nil {
		t.Fatalf("expected error for a single band")
	}
	if _, err := IDWT([]float64{1, 2}, []float64{1}, w); !errors.Is(err, core.ErrLengthMismatch) {
		t.Fatalf("err=%v want ErrLengthMismatch", err)
	}
}

func TestMaxLevel(t *testing.T) {
	db8, _ := Lookup("db8")
	haar, _ := Lookup("haar")

	tests := []struct {
		n    int
		w    Wavelet
		want int
	}{
		{2048, db8, 7},
		{15, db8, 0},
		{30, db8, 1},
		{14, db8, 0},
		{1024, haar, 10},
	}

	for _, tc := range tests {
		if got := MaxLevel(tc.n, tc.w); got != tc.want {
			t.Fatalf("MaxLevel(%d, %s)=%d want=%d", tc.n, tc.w.Name, got, tc.want)
		}
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		in   []float64
		want float64
	}{
		{nil, 0},
		{[]float64{3}, 3},
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
	}

	for _, tc := range tests {
		if got := Median(tc.in); got != tc.want {
			t.Fatalf("Median(%v)=%g want=%g", tc.in, got, tc.want)
		}
	}

	in := []float64{3, 1, 2}
	Median(in)
	if in[0] != 3 {
		t.Fatalf("Median modified its input: %v", in)
	}
}

func TestSoftThreshold(t *testing.T) {
	tests := []struct{ c, t, want float64 }{
		{3, 1, 2},
		{-3, 1, -2},
		{0.5, 1, 0},
		{-1, 1, 0},
		{2, 0, 2},
	}

	for _, tc := range tests {
		if got := SoftThreshold(tc.c, tc.t); got != tc.want {
			t.Fatalf("SoftThreshold(%g, %g)=%g want=%g", tc.c, tc.t, got, tc.want)
		}
	}
}

func TestDenoiseZeroFactorIsIdentity(t *testing.T) {
	x := testutil.DeterministicNoise(9, 1, 513)

	got, err := Denoise(x, WithThresholdFactor(0))
	if err != nil {
		t.Fatalf("Denoise error: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, got, x, 1e-9)
}

func TestDenoiseImprovesNoisySine(t *testing.T) {
	const n = 2048

	clean := testutil.DeterministicSine(5, 500, 1, n)
	noise := testutil.DeterministicGaussian(42, 0.3, n)
	noisy := testutil.Add(clean, noise)

	got, err := Denoise(noisy)
	if err != nil {
		t.Fatalf("Denoise error: %v", err)
	}

	if len(got) != n {
		t.Fatalf("len=%d want=%d", len(got), n)
	}

	before := testutil.MeanSquare(noise)
	residual := make([]float64, n)
	for i := range residual {
		residual[i] = got[i] - clean[i]
	}
	after := testutil.MeanSquare(residual)

	if after >= before {
		t.Fatalf("residual power %g not below noise power %g", after, before)
	}
}

func TestDenoiseSettles(t *testing.T) {
	x := testutil.Add(
		testutil.DeterministicSine(5, 500, 1, 1024),
		testutil.DeterministicGaussian(3, 0.5, 1024),
	)

	once, err := Denoise(x)
	if err != nil {
		t.Fatalf("Denoise error: %v", err)
	}

	twice, err := Denoise(once)
	if err != nil {
		t.Fatalf("Denoise error: %v", err)
	}

	first, _ := testutil.MaxAbsDiff(x, once)
	second, _ := testutil.MaxAbsDiff(once, twice)

	if second >= first {
		t.Fatalf("second pass moved %g, first pass %g", second, first)
	}
}

func TestDenoiseShortSignal(t *testing.T) {
	got, err := Denoise([]float64{1, -1, 0.5})
	if err != nil {
		t.Fatalf("Denoise error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("len=%d want=3", len(got))
	}

	testutil.RequireFinite(t, got)
}

func TestDenoiseErrors(t *testing.T) {
	if _, err := Denoise(nil); !errors.Is(err, core.ErrEmptySignal) {
		t.Fatalf("err=%v want ErrEmptySignal", err)
	}
	if _, err := Denoise([]float64{1}, WithWavelet("coif3")); !errors.Is(err, ErrUnknownWavelet) {
		t.Fatalf("err=%v want ErrUnknownWavelet", err)
	}
	if _, err := Denoise([]float64{1}, WithLevels(0)); err == nil {
		t.Fatalf("expected error for zero levels")
	}
	if _, err := Denoise([]float64{1}, WithThresholdFactor(-1)); err == nil {
		t.Fatalf("expected error for negative factor")
	}
}
