package domain

import (
	"fmt"
	"strings"
)

// Summary holds descriptive statistics for one hemisphere's Extent values.
// It is recomputed on every aggregation and never persisted.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"` // sample standard deviation (n−1)
	Min   float64 `json:"min"`
	P25   float64 `json:"p25"`
	P50   float64 `json:"p50"`
	P75   float64 `json:"p75"`
	Max   float64 `json:"max"`
}

// Render produces the fixed-precision text block embedded verbatim in the
// report prompt. The layout mirrors a conventional "describe" printout; the
// report prompt depends on this exact rendering, so changes here change the
// text the model sees.
func (s Summary) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "count %12d\n", s.Count)
	fmt.Fprintf(&b, "mean  %12.6f\n", s.Mean)
	fmt.Fprintf(&b, "std   %12.6f\n", s.Std)
	fmt.Fprintf(&b, "min   %12.6f\n", s.Min)
	fmt.Fprintf(&b, "25%%   %12.6f\n", s.P25)
	fmt.Fprintf(&b, "50%%   %12.6f\n", s.P50)
	fmt.Fprintf(&b, "75%%   %12.6f\n", s.P75)
	fmt.Fprintf(&b, "max   %12.6f", s.Max)
	return b.String()
}

// EraComparison contrasts the early-record and late-record multi-year mean
// Extent for the north hemisphere. A nil mean marks an empty window; callers
// must not format a nil mean as a number.
type EraComparison struct {
	PastMean   *float64 `json:"past_mean,omitempty"`   // Year ≤ minYear+5
	RecentMean *float64 `json:"recent_mean,omitempty"` // Year ≥ maxYear−5
}

// Defined reports whether both era windows produced a mean.
func (e EraComparison) Defined() bool {
	return e.PastMean != nil && e.RecentMean != nil
}
