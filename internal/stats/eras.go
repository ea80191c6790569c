package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/polarsight/sea-ice-analyst/internal/domain"
)

// CompareEras contrasts the early-record and late-record mean Extent for the
// north hemisphere. The year windows come from the whole table, not from the
// north rows alone: past = Year ≤ minYear+5, recent = Year ≥ maxYear−5. On a
// table spanning ten years or fewer the windows overlap, which is fine — both
// means then converge on the overall north mean. An empty window yields a nil
// mean, never NaN.
func CompareEras(ds *domain.Dataset) domain.EraComparison {
	minYear, maxYear, ok := ds.YearRange()
	if !ok {
		return domain.EraComparison{}
	}

	var past, recent []float64
	for _, m := range ds.ByHemisphere(domain.North) {
		if m.Year <= minYear+5 {
			past = append(past, m.Extent)
		}
		if m.Year >= maxYear-5 {
			recent = append(recent, m.Extent)
		}
	}

	return domain.EraComparison{
		PastMean:   meanOrNil(past),
		RecentMean: meanOrNil(recent),
	}
}

func meanOrNil(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	mean := stat.Mean(values, nil)
	return &mean
}
