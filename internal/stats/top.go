package stats

import "sort"

// TopExercisesByVolume returns up to n exercise names ordered by volume,
// largest first. Ties are broken by name.
func TopExercisesByVolume(summaries []ExerciseSummary, n int) []string {
	if n <= 0 || len(summaries) == 0 {
		return nil
	}
	items := make([]ExerciseSummary, len(summaries))
	copy(items, summaries)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Volume == items[j].Volume {
			return items[i].Exercise < items[j].Exercise
		}
		return items[i].Volume > items[j].Volume
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].Exercise)
	}
	return out
}
