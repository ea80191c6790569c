// Package stats derives descriptive statistics, era comparisons, and yearly
// trends from a loaded measurement dataset. All functions are pure: they
// read the dataset and return fresh values, so repeated aggregation over the
// same dataset is deterministic.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/polarsight/sea-ice-analyst/internal/domain"
)

// Describe computes descriptive statistics over one hemisphere's Extent
// values: count, mean, sample standard deviation, min/max, and the
// 25/50/75th percentiles. Percentiles interpolate linearly between the two
// nearest ranks, matching the conventional "describe" semantics of common
// data-analysis libraries; downstream report text is a literal rendering of
// these numbers.
func Describe(ds *domain.Dataset, h domain.Hemisphere) (domain.Summary, error) {
	rows := ds.ByHemisphere(h)
	if len(rows) == 0 {
		return domain.Summary{}, &domain.EmptyGroupError{Hemisphere: h}
	}

	extents := make([]float64, len(rows))
	for i, m := range rows {
		extents[i] = m.Extent
	}
	sort.Float64s(extents)

	s := domain.Summary{
		Count: len(extents),
		Mean:  stat.Mean(extents, nil),
		Min:   extents[0],
		P25:   percentile(extents, 0.25),
		P50:   percentile(extents, 0.50),
		P75:   percentile(extents, 0.75),
		Max:   extents[len(extents)-1],
	}
	if len(extents) > 1 {
		s.Std = stat.StdDev(extents, nil) // sample std, divisor n−1
	}
	return s, nil
}

// percentile returns the q-th quantile of sorted values using linear
// interpolation at rank q·(n−1). gonum's stat.Quantile cumulant kinds do
// not reproduce this rank convention, so it is computed directly.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(pos)
	frac := pos - float64(lower)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// HemisphereStats bundles the per-hemisphere summaries and era comparison
// that the report prompt is assembled from.
type HemisphereStats struct {
	North domain.Summary       `json:"north"`
	South domain.Summary       `json:"south"`
	Eras  domain.EraComparison `json:"eras"`
}

// Analyze computes both hemisphere summaries and the era comparison in one
// pass. It fails if either hemisphere has zero rows, which stops an
// incomplete dataset from ever reaching the report requester.
func Analyze(ds *domain.Dataset) (HemisphereStats, error) {
	north, err := Describe(ds, domain.North)
	if err != nil {
		return HemisphereStats{}, err
	}
	south, err := Describe(ds, domain.South)
	if err != nil {
		return HemisphereStats{}, err
	}
	return HemisphereStats{
		North: north,
		South: south,
		Eras:  CompareEras(ds),
	}, nil
}
