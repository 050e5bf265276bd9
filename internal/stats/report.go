// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/trainlog/internal/model"
	"github.com/verte-zerg/trainlog/internal/query"
)

// Source loads the records a report is built from.
type Source interface {
	Load(ctx context.Context) (model.Collection, error)
}

// ExerciseSummary aggregates every parsable set of one exercise.
type ExerciseSummary struct {
	Exercise    string
	Sets        int
	Repetitions int
	TotalWeight int
	MaxWeight   int
	Volume      int
	First       time.Time
	Last        time.Time
	Weights     []float64
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Records   model.Collection
	Totals    model.WeightTotals
	Exercises []ExerciseSummary
	// Skipped counts records left out of the summaries because a date or
	// number did not parse.
	Skipped int
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, src Source, cfg model.StatsConfig) (Report, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return Report{}, err
	}
	filter, err := query.CompleteRange(model.ListFilter{From: cfg.From, To: cfg.To, Exercise: cfg.Exercise}, time.Now())
	if err != nil {
		return Report{}, err
	}
	records, err = query.Apply(records, filter)
	if err != nil {
		return Report{}, err
	}

	summaries, skipped := summarize(records)
	if skipped > 0 {
		logrus.WithField("skipped", skipped).Debug("records left out of stats summary")
	}
	return Report{
		Records:   records,
		Totals:    query.AggregateWeightByExercise(records),
		Exercises: summaries,
		Skipped:   skipped,
	}, nil
}

// Summary returns the summary for exercise, matched exactly.
func (r Report) Summary(exercise string) (ExerciseSummary, bool) {
	for _, s := range r.Exercises {
		if s.Exercise == exercise {
			return s, true
		}
	}
	return ExerciseSummary{}, false
}

// TotalSets sums the sets of every summary.
func (r Report) TotalSets() int {
	total := 0
	for _, s := range r.Exercises {
		total += s.Sets
	}
	return total
}

// TotalVolume sums weight times repetitions over every summary.
func (r Report) TotalVolume() int {
	total := 0
	for _, s := range r.Exercises {
		total += s.Volume
	}
	return total
}

func summarize(records model.Collection) ([]ExerciseSummary, int) {
	var out []ExerciseSummary
	index := make(map[string]int)
	skipped := 0
	for _, r := range records {
		ts, err := query.ParseTimestamp(r.Date)
		if err != nil {
			skipped++
			continue
		}
		weight, err := query.ParseInt(r.Weight)
		if err != nil {
			skipped++
			continue
		}
		reps, err := query.ParseInt(r.Repetitions)
		if err != nil {
			skipped++
			continue
		}

		pos, ok := index[r.Exercise]
		if !ok {
			pos = len(out)
			index[r.Exercise] = pos
			out = append(out, ExerciseSummary{Exercise: r.Exercise, First: ts, Last: ts})
		}
		s := &out[pos]
		s.Sets++
		s.Repetitions += reps
		s.TotalWeight += weight
		s.Volume += weight * reps
		if weight > s.MaxWeight || s.Sets == 1 {
			s.MaxWeight = weight
		}
		if ts.Before(s.First) {
			s.First = ts
		}
		if ts.After(s.Last) {
			s.Last = ts
		}
		s.Weights = append(s.Weights, float64(weight))
	}
	return out, skipped
}
