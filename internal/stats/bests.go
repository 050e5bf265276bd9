package stats

import (
	"github.com/verte-zerg/trainlog/internal/model"
	"github.com/verte-zerg/trainlog/internal/query"
)

// Best is the heaviest set logged for an exercise.
type Best struct {
	Exercise    string
	Weight      int
	Repetitions int
	Date        string
	// OneRepMax is the Epley estimate weight * (1 + reps/30).
	OneRepMax float64
}

// PersonalBests returns the heaviest set per exercise in first-appearance
// order. More repetitions win a tie on weight; the earlier set wins a full tie.
// Sets with a non-integer weight or repetitions are ignored.
func PersonalBests(records model.Collection) []Best {
	var out []Best
	index := make(map[string]int)
	for _, r := range records {
		weight, err := query.ParseInt(r.Weight)
		if err != nil {
			continue
		}
		reps, err := query.ParseInt(r.Repetitions)
		if err != nil {
			continue
		}
		candidate := Best{
			Exercise:    r.Exercise,
			Weight:      weight,
			Repetitions: reps,
			Date:        r.Date,
			OneRepMax:   EstimateOneRepMax(weight, reps),
		}
		pos, ok := index[r.Exercise]
		if !ok {
			index[r.Exercise] = len(out)
			out = append(out, candidate)
			continue
		}
		cur := out[pos]
		if weight > cur.Weight || (weight == cur.Weight && reps > cur.Repetitions) {
			out[pos] = candidate
		}
	}
	return out
}

// EstimateOneRepMax applies the Epley formula. A single repetition is its own max.
func EstimateOneRepMax(weight, reps int) float64 {
	if reps <= 1 {
		return float64(weight)
	}
	return float64(weight) * (1 + float64(reps)/30)
}
