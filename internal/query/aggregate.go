package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/trainlog/internal/model"
)

// ParseInt parses a stored numeric field, tolerating surrounding whitespace.
func ParseInt(value string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}

// AggregateWeightByExercise sums weight per exact exercise text. Records with a
// non-integer weight are skipped and counted in the result.
func AggregateWeightByExercise(records model.Collection) model.WeightTotals {
	var result model.WeightTotals
	index := make(map[string]int)
	for _, r := range records {
		weight, err := ParseInt(r.Weight)
		if err != nil {
			result.Skipped++
			continue
		}
		pos, ok := index[r.Exercise]
		if !ok {
			pos = len(result.Totals)
			index[r.Exercise] = pos
			result.Totals = append(result.Totals, model.ExerciseTotal{Exercise: r.Exercise})
		}
		result.Totals[pos].Weight += weight
	}
	return result
}

// SeriesForExercise returns the weight and repetitions of every record whose
// exercise equals name exactly, in collection order. The first record with an
// unparsable date or number fails the whole call.
func SeriesForExercise(records model.Collection, name string) ([]model.SeriesPoint, error) {
	var points []model.SeriesPoint
	for i, r := range records {
		if r.Exercise != name {
			continue
		}
		ts, err := ParseTimestamp(r.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		weight, err := ParseInt(r.Weight)
		if err != nil {
			return nil, &model.NumericFieldError{Index: i, Field: "weight", Value: r.Weight}
		}
		reps, err := ParseInt(r.Repetitions)
		if err != nil {
			return nil, &model.NumericFieldError{Index: i, Field: "repetitions", Value: r.Repetitions}
		}
		points = append(points, model.SeriesPoint{Time: ts, Weight: weight, Repetitions: reps})
	}
	return points, nil
}
