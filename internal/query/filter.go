// Package query filters, aggregates and edits record collections in memory.
// Every function is pure: inputs are never modified.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/trainlog/internal/model"
)

// DateRange is an inclusive range of whole calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDay parses a YYYY-MM-DD calendar date.
func ParseDay(value string) (time.Time, error) {
	day, err := time.ParseInLocation(model.DayLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", model.ErrInvalidDateFormat, value)
	}
	return day, nil
}

// ParseTimestamp parses a record date in YYYY-MM-DD HH:MM:SS form.
func ParseTimestamp(value string) (time.Time, error) {
	ts, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD HH:MM:SS)", model.ErrInvalidDateFormat, value)
	}
	return ts, nil
}

// ParseDateRange builds the range [start 00:00:00, end 23:59:59].
func ParseDateRange(start, end string) (DateRange, error) {
	from, err := ParseDay(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("start date: %w", err)
	}
	to, err := ParseDay(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("end date: %w", err)
	}
	return DateRange{
		From: from,
		To:   to.Add(24*time.Hour - time.Second),
	}, nil
}

// Contains reports whether ts falls inside the range.
func (r DateRange) Contains(ts time.Time) bool {
	return !ts.Before(r.From) && !ts.After(r.To)
}

// FilterByDateRange keeps records whose timestamp lies within the whole days
// start..end. Comparison is done on parsed timestamps; records with an
// unparsable date never match.
func FilterByDateRange(records model.Collection, start, end string) (model.Collection, error) {
	rng, err := ParseDateRange(start, end)
	if err != nil {
		return nil, err
	}
	out := model.Collection{}
	for _, r := range records {
		ts, err := ParseTimestamp(r.Date)
		if err != nil {
			continue
		}
		if rng.Contains(ts) {
			out = append(out, r)
		}
	}
	return out, nil
}

// FilterByExercise keeps records whose exercise equals name, ignoring case.
func FilterByExercise(records model.Collection, name string) model.Collection {
	out := model.Collection{}
	for _, r := range records {
		if strings.EqualFold(r.Exercise, name) {
			out = append(out, r)
		}
	}
	return out
}

// Apply runs the date range filter when either bound is set, then the
// exercise filter when a name is set.
func Apply(records model.Collection, filter model.ListFilter) (model.Collection, error) {
	out := records
	if filter.From != "" || filter.To != "" {
		var err error
		out, err = FilterByDateRange(out, filter.From, filter.To)
		if err != nil {
			return nil, err
		}
	}
	if filter.Exercise != "" {
		out = FilterByExercise(out, filter.Exercise)
	}
	return out.Clone(), nil
}

// CompleteRange fills in a missing end date with the day of now so a filter
// given only a start date runs up to today.
func CompleteRange(filter model.ListFilter, now time.Time) (model.ListFilter, error) {
	filter.From = strings.TrimSpace(filter.From)
	filter.To = strings.TrimSpace(filter.To)
	switch {
	case filter.From == "" && filter.To != "":
		return model.ListFilter{}, model.ErrMissingStartDate
	case filter.From != "" && filter.To == "":
		filter.To = now.Format(model.DayLayout)
	}
	return filter, nil
}

// Exercises lists distinct exercise names in order of first appearance.
func Exercises(records model.Collection) []string {
	seen := make(map[string]struct{}, len(records))
	var names []string
	for _, r := range records {
		if _, ok := seen[r.Exercise]; ok {
			continue
		}
		seen[r.Exercise] = struct{}{}
		names = append(names, r.Exercise)
	}
	return names
}
