// Package domain models daily sea ice extent measurements.
//
// # Data Source
//
// Measurements come from the NSIDC Sea Ice Index daily CSV (commonly
// distributed as seaice.csv), one row per hemisphere per day:
//
//	Year, Month, Day, Extent, Missing, Source Data, hemisphere
//
// Column names in published files frequently carry surrounding whitespace
// (" Month", " Day", " Extent"), so header matching strips whitespace and
// ignores case. Columns beyond the five this service needs are ignored.
//
// # Conventions
//
// Extent:
//
//	Sea ice extent in millions of square kilometers (10^6 km²), a decimal
//	value such as 12.533. Extent is areal coverage at ≥15% ice
//	concentration, not ice area.
//
// Hemisphere:
//
//	"north" or "south", matched case-insensitively after trimming. Any
//	other label fails the load; silently creating ad-hoc groups would let a
//	typo ("nort") split a hemisphere's record in two.
//
// Date:
//
//	Year/Month/Day combine into a UTC calendar date. Rows that do not form
//	a real date (Month=2, Day=30) fail the load rather than producing a
//	null date, because every downstream grouping keys off the date.
//
// # Dataset Identity
//
// A loaded dataset carries a SHA-256 hash of the raw input bytes. The hash
// is the cache key for memoized loads and lets byte-identical uploads be
// recognized without reparsing. See [ParseCSV].
package domain
