package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/polarsight/sea-ice-analyst/internal/domain"
)

// YearlyPoint is the mean Extent for one hemisphere in one calendar year.
type YearlyPoint struct {
	Year       int               `json:"year"`
	Hemisphere domain.Hemisphere `json:"hemisphere"`
	MeanExtent float64           `json:"mean_extent"`
}

// TrendLine is an ordinary-least-squares fit of yearly mean Extent against
// Year for one hemisphere, the line drawn through the yearly-trend chart.
type TrendLine struct {
	Hemisphere domain.Hemisphere `json:"hemisphere"`
	Slope      float64           `json:"slope"` // 10^6 km² per year
	Intercept  float64           `json:"intercept"`
}

// YearlyAverages groups measurements by (Year, hemisphere) and averages
// Extent within each group. Points are ordered by year ascending, north
// before south, so output is stable across calls.
func YearlyAverages(ds *domain.Dataset) []YearlyPoint {
	type key struct {
		year int
		h    domain.Hemisphere
	}
	sums := make(map[key]float64)
	counts := make(map[key]int)
	for _, m := range ds.Measurements {
		k := key{year: m.Year, h: m.Hemisphere}
		sums[k] += m.Extent
		counts[k]++
	}

	points := make([]YearlyPoint, 0, len(sums))
	for k, sum := range sums {
		points = append(points, YearlyPoint{
			Year:       k.year,
			Hemisphere: k.h,
			MeanExtent: sum / float64(counts[k]),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Hemisphere < points[j].Hemisphere
	})
	return points
}

// TrendLines fits one OLS line per hemisphere through its yearly averages.
// Hemispheres with fewer than two yearly points are omitted: a single point
// does not determine a line.
func TrendLines(points []YearlyPoint) []TrendLine {
	years := make(map[domain.Hemisphere][]float64)
	extents := make(map[domain.Hemisphere][]float64)
	for _, p := range points {
		years[p.Hemisphere] = append(years[p.Hemisphere], float64(p.Year))
		extents[p.Hemisphere] = append(extents[p.Hemisphere], p.MeanExtent)
	}

	var lines []TrendLine
	for _, h := range []domain.Hemisphere{domain.North, domain.South} {
		xs := years[h]
		if len(xs) < 2 {
			continue
		}
		intercept, slope := stat.LinearRegression(xs, extents[h], nil, false)
		lines = append(lines, TrendLine{Hemisphere: h, Slope: slope, Intercept: intercept})
	}
	return lines
}
