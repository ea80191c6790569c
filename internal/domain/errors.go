package domain

import (
	"errors"
	"fmt"
)

// Error categories. The API boundary maps every failure to one of these via
// errors.Is before converting it to a user-visible message.
var (
	// ErrInput marks malformed or missing input data.
	ErrInput = errors.New("input error")
	// ErrComputation marks statistics that cannot be computed from the data.
	ErrComputation = errors.New("computation error")
)

// MissingColumnError reports a required CSV column that is absent.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrInput }

// RowError reports a row whose fields cannot be converted or whose
// Year/Month/Day do not form a real calendar date. Line is 1-based and
// counts the header.
type RowError struct {
	Line  int
	Field string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: field %q: %v", e.Line, e.Field, e.Err)
}

func (e *RowError) Unwrap() []error { return []error{e.Err, ErrInput} }

// EmptyGroupError reports a statistics request for a hemisphere with zero rows.
type EmptyGroupError struct {
	Hemisphere Hemisphere
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("no measurements for hemisphere %q", e.Hemisphere)
}

func (e *EmptyGroupError) Unwrap() error { return ErrComputation }
