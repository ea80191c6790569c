package domain

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// requiredColumns are the header names ParseCSV must find, after trimming
// whitespace and lowering case. Extra columns are ignored.
var requiredColumns = []string{"year", "month", "day", "extent", "hemisphere"}

// ParseCSV parses raw CSV bytes into a Dataset. The header row is matched
// case- and whitespace-insensitively. Any row with a non-numeric field, an
// unknown hemisphere label, or a Year/Month/Day that does not form a real
// calendar date fails the whole load; partial datasets are never returned.
func ParseCSV(data []byte) (*Dataset, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1 // header decides the width; ragged rows fail per-field below

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MissingColumnError{Column: "Year"}
		}
		return nil, fmt.Errorf("read header: %w", errors.Join(err, ErrInput))
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var measurements []Measurement
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{Line: line, Field: "record", Err: err}
		}

		m, err := parseRow(record, cols, line)
		if err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}

	hash := sha256.Sum256(data)
	return &Dataset{
		Measurements: measurements,
		SourceHash:   hex.EncodeToString(hash[:]),
		LoadedAt:     clock.Now(),
	}, nil
}

// indexColumns maps required column names to their positions in the header.
func indexColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		i, ok := positions[name]
		if !ok {
			return nil, &MissingColumnError{Column: name}
		}
		cols[name] = i
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int, line int) (Measurement, error) {
	field := func(name string) (string, error) {
		i := cols[name]
		if i >= len(record) {
			return "", &RowError{Line: line, Field: name, Err: errors.New("field missing")}
		}
		return strings.TrimSpace(record[i]), nil
	}

	var m Measurement
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"year", &m.Year},
		{"month", &m.Month},
		{"day", &m.Day},
	} {
		raw, err := field(f.name)
		if err != nil {
			return Measurement{}, err
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Measurement{}, &RowError{Line: line, Field: f.name, Err: err}
		}
		*f.dst = v
	}

	rawExtent, err := field("extent")
	if err != nil {
		return Measurement{}, err
	}
	m.Extent, err = strconv.ParseFloat(rawExtent, 64)
	if err != nil {
		return Measurement{}, &RowError{Line: line, Field: "extent", Err: err}
	}

	rawHemisphere, err := field("hemisphere")
	if err != nil {
		return Measurement{}, err
	}
	m.Hemisphere, err = ParseHemisphere(rawHemisphere)
	if err != nil {
		return Measurement{}, &RowError{Line: line, Field: "hemisphere", Err: err}
	}

	if err := validateDate(m.Year, m.Month, m.Day); err != nil {
		return Measurement{}, &RowError{Line: line, Field: "date", Err: err}
	}
	return m, nil
}

// validateDate rejects Year/Month/Day triples that do not name a real
// calendar date. time.Date normalizes out-of-range components (Feb 30 →
// Mar 2), so the round-trip check catches what range checks alone would miss.
func validateDate(year, month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("day %d out of range", day)
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return fmt.Errorf("%04d-%02d-%02d is not a valid calendar date", year, month, day)
	}
	return nil
}
