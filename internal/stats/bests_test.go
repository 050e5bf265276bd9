package stats

import (
	"math"
	"testing"

	"github.com/verte-zerg/trainlog/internal/model"
)

func TestPersonalBests(t *testing.T) {
	records := model.Collection{
		{Date: "2024-03-01 18:00:00", Exercise: "Squat", Weight: "100", Repetitions: "5"},
		{Date: "2024-03-02 18:00:00", Exercise: "Bench", Weight: "80", Repetitions: "8"},
		{Date: "2024-03-03 18:00:00", Exercise: "Squat", Weight: "110", Repetitions: "3"},
		{Date: "2024-03-04 18:00:00", Exercise: "Squat", Weight: "110", Repetitions: "4"},
		{Date: "2024-03-05 18:00:00", Exercise: "Squat", Weight: "110", Repetitions: "4"},
		{Date: "2024-03-06 18:00:00", Exercise: "Bench", Weight: "max", Repetitions: "1"},
	}
	bests := PersonalBests(records)
	if len(bests) != 2 {
		t.Fatalf("expected 2 bests, got %d", len(bests))
	}
	squat := bests[0]
	if squat.Exercise != "Squat" || squat.Weight != 110 || squat.Repetitions != 4 {
		t.Fatalf("unexpected squat best: %+v", squat)
	}
	if squat.Date != "2024-03-04 18:00:00" {
		t.Fatalf("expected earliest tied set, got %s", squat.Date)
	}
	if bests[1].Exercise != "Bench" || bests[1].Weight != 80 {
		t.Fatalf("unexpected bench best: %+v", bests[1])
	}
}

func TestEstimateOneRepMax(t *testing.T) {
	if got := EstimateOneRepMax(100, 1); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := EstimateOneRepMax(100, 0); got != 100 {
		t.Fatalf("expected 100 for zero reps, got %v", got)
	}
	if got := EstimateOneRepMax(90, 10); math.Abs(got-120) > 1e-9 {
		t.Fatalf("expected 120, got %v", got)
	}
}
