package stats

import "testing"

func TestTopExercisesByVolume(t *testing.T) {
	summaries := []ExerciseSummary{
		{Exercise: "Row", Volume: 600},
		{Exercise: "Bench", Volume: 640},
		{Exercise: "Curl", Volume: 600},
	}
	top := TopExercisesByVolume(summaries, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(top))
	}
	if top[0] != "Bench" || top[1] != "Curl" {
		t.Fatalf("unexpected order: %v", top)
	}
	if summaries[0].Exercise != "Row" {
		t.Fatalf("input was reordered: %v", summaries)
	}
	if got := TopExercisesByVolume(summaries, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
}
