package spectral

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-denoise/dsp/core"
)

// Band selects the frequencies kept by Bandpass. Either edge may be unset.
// The zero value has neither edge and passes everything.
type Band struct {
	low, high       float64
	hasLow, hasHigh bool
}

// Above keeps frequencies at or above low.
func Above(low float64) Band {
	return Band{low: low, hasLow: true}
}

// Below keeps frequencies at or below high.
func Below(high float64) Band {
	return Band{high: high, hasHigh: true}
}

// Between keeps frequencies in [low, high].
func Between(low, high float64) Band {
	return Band{low: low, high: high, hasLow: true, hasHigh: true}
}

// All keeps every frequency.
func All() Band { return Band{} }

// Low returns the lower edge and whether it is set.
func (b Band) Low() (float64, bool) { return b.low, b.hasLow }

// High returns the upper edge and whether it is set.
func (b Band) High() (float64, bool) { return b.high, b.hasHigh }

// IsAll reports whether the band has no edges.
func (b Band) IsAll() bool { return !b.hasLow && !b.hasHigh }

// Contains reports whether freq lies inside the band. Edges are inclusive.
func (b Band) Contains(freq float64) bool {
	if b.hasLow && freq < b.low {
		return false
	}
	if b.hasHigh && freq > b.high {
		return false
	}
	return true
}

// Validate rejects NaN or infinite edges and a lower edge above the upper
// one. Errors wrap core.ErrInvalidFilterSpec.
func (b Band) Validate() error {
	if b.hasLow && (math.IsNaN(b.low) || math.IsInf(b.low, 0)) {
		return fmt.Errorf("spectral: low edge %v: %w", b.low, core.ErrInvalidFilterSpec)
	}
	if b.hasHigh && (math.IsNaN(b.high) || math.IsInf(b.high, 0)) {
		return fmt.Errorf("spectral: high edge %v: %w", b.high, core.ErrInvalidFilterSpec)
	}
	if b.hasLow && b.hasHigh && b.low > b.high {
		return fmt.Errorf("spectral: band %s not ascending: %w", b, core.ErrInvalidFilterSpec)
	}
	return nil
}

func (b Band) String() string {
	switch {
	case b.hasLow && b.hasHigh:
		return fmt.Sprintf("[%g, %g] Hz", b.low, b.high)
	case b.hasLow:
		return fmt.Sprintf(">= %g Hz", b.low)
	case b.hasHigh:
		return fmt.Sprintf("<= %g Hz", b.high)
	default:
		return "all"
	}
}
