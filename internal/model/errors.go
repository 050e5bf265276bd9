package model

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable is returned when the backing file exists but cannot be read or written.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrMalformedPersistedData marks a store file that is not valid structured data.
	// Load recovers from it by returning an empty collection.
	ErrMalformedPersistedData = errors.New("malformed persisted data")
	// ErrInvalidDateFormat is returned for dates that do not match the expected layout.
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrInvalidNumericField is returned when weight or repetitions is not an integer.
	ErrInvalidNumericField = errors.New("invalid numeric field")
	// ErrMalformedRow is returned for CSV rows whose column count does not match the header.
	ErrMalformedRow = errors.New("malformed row")
	// ErrNoSelection is returned when edit or delete is invoked without a record.
	ErrNoSelection = errors.New("no record selected")
	// ErrRecordNotFound is returned when a selection key matches no record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrEmptyField is returned when a new record is missing a required value.
	ErrEmptyField = errors.New("all fields must be filled")
	// ErrMissingStartDate is returned when a range has an end date but no start date.
	ErrMissingStartDate = errors.New("an end date needs a start date")
	// ErrExerciseNotFound is returned when no record exists for an exercise.
	ErrExerciseNotFound = errors.New("no data for exercise")
)

// NumericFieldError describes a weight or repetitions value that failed to parse.
type NumericFieldError struct {
	Index int
	Field string
	Value string
}

func (e *NumericFieldError) Error() string {
	return fmt.Sprintf("record %d: %s %q is not an integer", e.Index+1, e.Field, e.Value)
}

// Is makes errors.Is(err, ErrInvalidNumericField) hold.
func (e *NumericFieldError) Is(target error) bool {
	return target == ErrInvalidNumericField
}

// RowError describes a CSV row with the wrong number of columns.
type RowError struct {
	Line int
	Got  int
	Want int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: got %d columns, want %d", e.Line, e.Got, e.Want)
}

// Is makes errors.Is(err, ErrMalformedRow) hold.
func (e *RowError) Is(target error) bool {
	return target == ErrMalformedRow
}
