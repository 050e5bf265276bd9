// Package model defines shared data structures.
package model

import "time"

const (
	// DateLayout is the timestamp format stored in every Record.
	DateLayout = "2006-01-02 15:04:05"
	// DayLayout is the calendar-date format accepted by range filters.
	DayLayout = "2006-01-02"
)

// Record is one workout log entry. Weight and Repetitions are stored as text
// and only parsed when statistics or series are computed.
type Record struct {
	Date        string `json:"date"`
	Exercise    string `json:"exercise"`
	Weight      string `json:"weight"`
	Repetitions string `json:"repetitions"`
	ID          string `json:"id,omitempty"`
}

// Key returns the selection key identifying r as it currently looks.
func (r Record) Key() Key {
	return Key{
		ID:          r.ID,
		Date:        r.Date,
		Exercise:    r.Exercise,
		Weight:      r.Weight,
		Repetitions: r.Repetitions,
	}
}

// Collection is the ordered set of records; order is insertion order.
type Collection []Record

// Clone returns a copy that shares no backing array with c.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Key selects records for edit and delete. A non-empty ID matches by
// identifier only; legacy records without an ID match on the full value tuple.
type Key struct {
	ID          string
	Date        string
	Exercise    string
	Weight      string
	Repetitions string
}

// IsZero reports whether nothing was selected.
func (k Key) IsZero() bool {
	return k == Key{}
}

// Matches reports whether r is selected by k.
func (k Key) Matches(r Record) bool {
	if k.ID != "" {
		return r.ID == k.ID
	}
	return r.Date == k.Date &&
		r.Exercise == k.Exercise &&
		r.Weight == k.Weight &&
		r.Repetitions == k.Repetitions
}

// Fields holds replacement values for an edit. Nil fields are left alone.
type Fields struct {
	Date        *string
	Exercise    *string
	Weight      *string
	Repetitions *string
}

// Empty reports whether f carries no changes.
func (f Fields) Empty() bool {
	return f.Date == nil && f.Exercise == nil && f.Weight == nil && f.Repetitions == nil
}

// Apply returns r with the non-nil fields of f written over it.
func (f Fields) Apply(r Record) Record {
	if f.Date != nil {
		r.Date = *f.Date
	}
	if f.Exercise != nil {
		r.Exercise = *f.Exercise
	}
	if f.Weight != nil {
		r.Weight = *f.Weight
	}
	if f.Repetitions != nil {
		r.Repetitions = *f.Repetitions
	}
	return r
}

// ListFilter narrows a listing. Empty fields are not applied.
type ListFilter struct {
	From     string
	To       string
	Exercise string
}

// SeriesPoint is one parsed sample of an exercise's progress.
type SeriesPoint struct {
	Time        time.Time
	Weight      int
	Repetitions int
}

// ExerciseTotal is the summed weight of one exercise.
type ExerciseTotal struct {
	Exercise string
	Weight   int
}

// WeightTotals holds per-exercise weight sums in first-appearance order.
// Skipped counts records whose weight could not be parsed.
type WeightTotals struct {
	Totals  []ExerciseTotal
	Skipped int
}

// Map returns the totals keyed by exercise.
func (w WeightTotals) Map() map[string]int {
	out := make(map[string]int, len(w.Totals))
	for _, t := range w.Totals {
		out[t.Exercise] = t.Weight
	}
	return out
}

// ImportMode controls how imported records are merged into the collection.
type ImportMode string

const (
	// ImportAppend adds imported records after the existing ones.
	ImportAppend ImportMode = "append"
	// ImportReplace discards the existing records.
	ImportReplace ImportMode = "replace"
)

// Config defines the resolved application settings.
type Config struct {
	Backend     string
	StorePath   string
	LogLevel    string
	LogFile     string
	LogJSON     bool
	ChartHeight int
	CurveWindow int
	ImportMode  ImportMode
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	From        string
	To          string
	Exercise    string
	CurveWindow int
}
