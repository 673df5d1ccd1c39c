package wavelet

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownWavelet is returned for an unsupported wavelet name.
var ErrUnknownWavelet = errors.New("wavelet: unknown wavelet")

// Wavelet is an orthogonal two-channel filter bank.
type Wavelet struct {
	Name string

	DecLo []float64
	DecHi []float64
	RecLo []float64
	RecHi []float64
}

// Len returns the filter length.
func (w Wavelet) Len() int { return len(w.RecLo) }

// Daubechies scaling filters, reconstruction low-pass orientation.
var scaling = map[string][]float64{
	"haar": {math.Sqrt2 / 2, math.Sqrt2 / 2},
	"db2": {
		0.48296291314469025, 0.836516303737469,
		0.22414386804185735, -0.12940952255092145,
	},
	"db4": {
		0.23037781330885523, 0.7148465705525415,
		0.6308807679295904, -0.02798376941698385,
		-0.18703481171888114, 0.030841381835986965,
		0.032883011666982945, -0.010597401784997278,
	},
	"db8": {
		0.05441584224308161, 0.3128715909144659,
		0.6756307362980128, 0.5853546836548691,
		-0.015829105256023893, -0.2840155429624281,
		0.0004724845739124, 0.128747426620186,
		-0.01736930100202211, -0.04408825393106472,
		0.013981027917015516, 0.008746094047015655,
		-0.004870352993451574, -0.0003917403733769885,
		0.0006754494064505693, -0.00011747678412476953,
	},
}

var aliases = map[string]string{"db1": "haar"}

// Names returns the supported wavelet names in sorted order.
func Names() []string {
	out := make([]string, 0, len(scaling)+len(aliases))
	for name := range scaling {
		out = append(out, name)
	}
	for name := range aliases {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the filter bank for name. Names are case-insensitive.
func Lookup(name string) (Wavelet, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if a, ok := aliases[key]; ok {
		key = a
	}

	h, ok := scaling[key]
	if !ok {
		return Wavelet{}, fmt.Errorf("%w: %q", ErrUnknownWavelet, name)
	}

	n := len(h)
	w := Wavelet{
		Name:  key,
		DecLo: make([]float64, n),
		DecHi: make([]float64, n),
		RecLo: make([]float64, n),
		RecHi: make([]float64, n),
	}

	copy(w.RecLo, h)
	for k := range n {
		w.DecLo[k] = h[n-1-k]
		w.DecHi[k] = h[k]
		if k%2 == 0 {
			w.DecHi[k] = -h[k]
		}
	}
	for k := range n {
		w.RecHi[k] = w.DecHi[n-1-k]
	}
	return w, nil
}
