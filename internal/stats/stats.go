package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/trainlog/internal/model"
)

const sparkChars = " .:-=+*#%@"

const shortDayLayout = "01-02"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[max(0, min(len(sparkChars)-1, idx))])
	}
	return b.String()
}

// RenderTotals prints the summed weight per exercise.
func RenderTotals(w io.Writer, totals model.WeightTotals) error {
	if len(totals.Totals) == 0 && totals.Skipped == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}
	rows := make([][]string, 0, len(totals.Totals))
	for _, t := range totals.Totals {
		rows = append(rows, []string{t.Exercise, fmt.Sprintf("%d", t.Weight)})
	}
	lines := formatTable([]string{"Exercise", "Total weight"}, rows, map[int]bool{1: true})
	if err := writeLines(w, lines); err != nil {
		return err
	}
	if totals.Skipped > 0 {
		if _, err := fmt.Fprintf(w, "Skipped %d record(s) with a non-numeric weight.\n", totals.Skipped); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints the report overview followed by one row per exercise.
func RenderSummary(w io.Writer, report Report) error {
	if len(report.Records) == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Records: %d\n", len(report.Records)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Exercises: %d\n", len(report.Exercises)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sets: %d\n", report.TotalSets()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Volume: %d\n", report.TotalVolume()); err != nil {
		return err
	}
	if report.Skipped > 0 {
		if _, err := fmt.Fprintf(w, "Skipped: %d\n", report.Skipped); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if len(report.Exercises) == 0 {
		return nil
	}

	headers := []string{"Exercise", "Sets", "Reps", "Total", "Max", "Volume", "Last", "Trend"}
	rows := make([][]string, 0, len(report.Exercises))
	for _, s := range report.Exercises {
		rows = append(rows, []string{
			s.Exercise,
			fmt.Sprintf("%d", s.Sets),
			fmt.Sprintf("%d", s.Repetitions),
			fmt.Sprintf("%d", s.TotalWeight),
			fmt.Sprintf("%d", s.MaxWeight),
			fmt.Sprintf("%d", s.Volume),
			s.Last.Format(model.DayLayout),
			Sparkline(lastN(s.Weights, 12)),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	if err := writeLines(w, formatTable(headers, rows, rightAlign)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderBests prints the heaviest set per exercise.
func RenderBests(w io.Writer, bests []Best) error {
	if len(bests) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Personal Bests"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(bests))
	for _, b := range bests {
		rows = append(rows, []string{
			b.Exercise,
			fmt.Sprintf("%d x %d", b.Weight, b.Repetitions),
			fmt.Sprintf("%.1f", b.OneRepMax),
			b.Date,
		})
	}
	lines := formatTable([]string{"Exercise", "Set", "Est. 1RM", "Date"}, rows, map[int]bool{1: true, 2: true})
	if err := writeLines(w, lines); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// ProgressChart builds the weight and repetitions chart for an exercise.
func ProgressChart(exercise string, points []model.SeriesPoint, window int) Chart {
	weights := make([]float64, len(points))
	reps := make([]float64, len(points))
	labels := make([]string, len(points))
	for i, p := range points {
		weights[i] = float64(p.Weight)
		reps[i] = float64(p.Repetitions)
		labels[i] = p.Time.Format(shortDayLayout)
	}
	title := fmt.Sprintf("Progress: %s (%d sets)", exercise, len(points))
	if window > 1 {
		title += fmt.Sprintf(", moving average of %d", window)
	}
	return Chart{
		Title: title,
		Series: []Series{
			{Name: "Weight", Values: MovingAverage(weights, window)},
			{Name: "Reps", Values: MovingAverage(reps, window)},
		},
		XLabels: labels,
	}
}

// RenderProgress prints the progress chart at the terminal width.
func RenderProgress(w io.Writer, exercise string, points []model.SeriesPoint, window int) error {
	return RenderProgressWithSize(w, exercise, points, window, 0, defaultPlotHeight, false)
}

// RenderProgressWithSize prints the progress chart sized to a given total width.
func RenderProgressWithSize(w io.Writer, exercise string, points []model.SeriesPoint, window, totalWidth, height int, useColor bool) error {
	if len(points) == 0 {
		_, err := fmt.Fprintf(w, "No data for %s.\n", exercise)
		return err
	}
	chart := ProgressChart(exercise, points, window)
	if totalWidth > 0 {
		chart.Width = PlotWidthFor(totalWidth)
	}
	chart.Height = height
	chart.Color = useColor
	return chart.Render(w)
}

func lastN(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
