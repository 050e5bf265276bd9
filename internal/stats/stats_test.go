package stats

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/trainlog/internal/model"
	"github.com/verte-zerg/trainlog/internal/store"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	same := MovingAverage([]float64{1, 5}, 1)
	if same[0] != 1 || same[1] != 5 {
		t.Fatalf("window 1 should copy values, got %v", same)
	}
	if len(MovingAverage(nil, 3)) != 0 {
		t.Fatalf("expected empty result")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 10}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" && got != "===" {
		t.Fatalf("flat sparkline should use a middle char, got %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestRenderTotals(t *testing.T) {
	var buf bytes.Buffer
	err := RenderTotals(&buf, model.WeightTotals{
		Totals:  []model.ExerciseTotal{{Exercise: "Squat", Weight: 210}, {Exercise: "Bench", Weight: 80}},
		Skipped: 1,
	})
	if err != nil {
		t.Fatalf("RenderTotals failed: %v", err)
	}
	want := "Exercise Total weight\n" +
		"Squat             210\n" +
		"Bench              80\n" +
		"Skipped 1 record(s) with a non-numeric weight.\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestRenderTotalsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTotals(&buf, model.WeightTotals{}); err != nil {
		t.Fatalf("RenderTotals failed: %v", err)
	}
	if buf.String() != "No records found.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderSummary(t *testing.T) {
	report, err := BuildReport(context.Background(), store.NewMemory(reportRecords()), model.StatsConfig{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, report); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Records: 6", "Exercises: 3", "Sets: 4", "Volume: 2070", "Skipped: 2", "Squat", "2024-03-10"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderBests(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderBests(&buf, PersonalBests(reportRecords())); err != nil {
		t.Fatalf("RenderBests failed: %v", err)
	}
	if !strings.Contains(buf.String(), "110 x 3") {
		t.Fatalf("expected squat best in output:\n%s", buf.String())
	}
}

func TestRenderProgress(t *testing.T) {
	base := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	points := []model.SeriesPoint{
		{Time: base, Weight: 100, Repetitions: 5},
		{Time: base.AddDate(0, 0, 2), Weight: 110, Repetitions: 5},
		{Time: base.AddDate(0, 0, 4), Weight: 120, Repetitions: 5},
	}
	var buf bytes.Buffer
	if err := RenderProgressWithSize(&buf, "Squat", points, 2, 60, 5, false); err != nil {
		t.Fatalf("RenderProgress failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Progress: Squat (3 sets), moving average of 2", "Weight: min=100 max=115", "Reps: min=5 max=5", "03-01", "03-05"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderProgressEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderProgress(&buf, "Squat", nil, 1); err != nil {
		t.Fatalf("RenderProgress failed: %v", err)
	}
	if buf.String() != "No data for Squat.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
