package domain

import (
	"fmt"
	"strings"
	"time"
)

// Hemisphere is the categorical partition of measurements.
type Hemisphere string

const (
	North Hemisphere = "north"
	South Hemisphere = "south"
)

// ParseHemisphere normalizes a raw hemisphere label. Unknown labels are
// rejected rather than passed through as their own group.
func ParseHemisphere(s string) (Hemisphere, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north":
		return North, nil
	case "south":
		return South, nil
	default:
		return "", fmt.Errorf("unknown hemisphere %q", s)
	}
}

// Measurement is a single daily sea ice extent observation.
type Measurement struct {
	Year       int        `json:"year"`
	Month      int        `json:"month"`
	Day        int        `json:"day"`
	Extent     float64    `json:"extent"` // 10^6 km²
	Hemisphere Hemisphere `json:"hemisphere"`
}

// Date returns the measurement's derived UTC calendar date.
func (m Measurement) Date() time.Time {
	return time.Date(m.Year, time.Month(m.Month), m.Day, 0, 0, 0, 0, time.UTC)
}

// Dataset is an ordered table of measurements from a single upload.
// A Dataset is owned by the session that loaded it and is never mutated
// after construction.
type Dataset struct {
	Measurements []Measurement `json:"measurements"`
	SourceHash   string        `json:"source_hash"` // sha256 of the raw input bytes
	LoadedAt     time.Time     `json:"loaded_at"`
}

// Len returns the number of rows in the dataset.
func (d *Dataset) Len() int {
	return len(d.Measurements)
}

// ByHemisphere returns the measurements belonging to one hemisphere,
// preserving input order.
func (d *Dataset) ByHemisphere(h Hemisphere) []Measurement {
	var out []Measurement
	for _, m := range d.Measurements {
		if m.Hemisphere == h {
			out = append(out, m)
		}
	}
	return out
}

// YearRange returns the minimum and maximum Year across the whole table.
// ok is false for an empty dataset.
func (d *Dataset) YearRange() (minYear, maxYear int, ok bool) {
	if len(d.Measurements) == 0 {
		return 0, 0, false
	}
	minYear = d.Measurements[0].Year
	maxYear = d.Measurements[0].Year
	for _, m := range d.Measurements[1:] {
		if m.Year < minYear {
			minYear = m.Year
		}
		if m.Year > maxYear {
			maxYear = m.Year
		}
	}
	return minYear, maxYear, true
}
