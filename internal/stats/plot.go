package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Unit   string
	Values []float64
}

// Chart describes a braille line chart. Each series is scaled to its own
// min/max so weight and repetitions can share the canvas.
type Chart struct {
	Title  string
	Series []Series
	// XLabels are printed under the canvas: first on the left, last on the
	// right, and a middle one when there are three or more.
	XLabels []string
	Width   int
	Height  int
	Color   bool
}

type valueRange struct {
	min float64
	max float64
}

type lineStyle struct {
	name   string
	period int
	on     int
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisWidth           = 8
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
	{name: "dashdot", period: 8, on: 3},
}

var colorPalette = []string{
	"\x1b[36m", // cyan
	"\x1b[35m", // magenta
	"\x1b[33m", // yellow
	"\x1b[32m", // green
}

// PlotSeries renders series without forcing color.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return Chart{Title: title, Series: series, Width: width, Height: height}.Render(w)
}

// Render writes the chart to w. Empty series are dropped; nothing is written
// when no series has values.
func (c Chart) Render(w io.Writer) error {
	series := filterSeries(c.Series)
	if len(series) == 0 {
		return nil
	}

	height := c.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	width := c.Width
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	ranges := make([]valueRange, len(series))
	layers := make([][][]uint8, len(series))
	for i, s := range series {
		values := resampleSeries(s.Values, width)
		ranges[i] = rangeOf(s.Values)
		layers[i] = rasterize(values, ranges[i], lineStyles[i%len(lineStyles)], width, height)
	}

	useColor := shouldUseColor(w, c.Color)
	var b strings.Builder
	if c.Title != "" {
		b.WriteString(c.Title)
		b.WriteByte('\n')
	}
	for i, s := range series {
		fmt.Fprintf(&b, "%s: min=%s max=%s\n", s.Name, formatValue(ranges[i].min, s.Unit), formatValue(ranges[i].max, s.Unit))
	}
	labels := axisLabels(height)
	for y := 0; y < height; y++ {
		b.WriteString(runewidth.FillLeft(labels[y], axisWidth))
		b.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			mask, owner := composeCell(layers, x, y)
			ch := brailleFromMask(mask)
			if useColor && owner >= 0 {
				b.WriteString(colorPalette[owner%len(colorPalette)])
				b.WriteRune(ch)
				b.WriteString(colorReset)
				continue
			}
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	if axis := xAxis(c.XLabels, width); axis != "" {
		b.WriteString(strings.Repeat(" ", axisWidth+runewidth.StringWidth(axisSeparator)))
		b.WriteString(axis)
		b.WriteByte('\n')
	}
	b.WriteString(renderLegend(series, useColor))
	b.WriteString("\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	plotWidth := totalWidth - axisWidth - runewidth.StringWidth(axisSeparator)
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func filterSeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func axisLabels(height int) []string {
	labels := make([]string, height)
	labels[0] = "max"
	if height > 2 {
		labels[height/2] = "mid"
	}
	if height > 1 {
		labels[height-1] = "min"
	}
	return labels
}

func xAxis(labels []string, width int) string {
	if len(labels) == 0 {
		return ""
	}
	row := []rune(strings.Repeat(" ", width))
	place := func(label string, start int) {
		for i, r := range []rune(label) {
			if start+i >= 0 && start+i < len(row) {
				row[start+i] = r
			}
		}
	}
	first := labels[0]
	last := labels[len(labels)-1]
	place(first, 0)
	if len(labels) > 1 {
		place(last, width-len([]rune(last)))
	}
	if len(labels) > 2 {
		mid := labels[len(labels)/2]
		start := width/2 - len([]rune(mid))/2
		if start > len([]rune(first)) && start+len([]rune(mid)) < width-len([]rune(last)) {
			place(mid, start)
		}
	}
	return strings.TrimRight(string(row), " ")
}

func formatValue(v float64, unit string) string {
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimSuffix(s, ".0")
	if unit != "" {
		s += " " + unit
	}
	return s
}

func rangeOf(values []float64) valueRange {
	r := valueRange{min: math.Inf(1), max: math.Inf(-1)}
	for _, v := range values {
		r.min = math.Min(r.min, v)
		r.max = math.Max(r.max, v)
	}
	return r
}

// rasterize draws values into a height x width grid of braille masks. Each
// cell holds 2x4 dots.
func rasterize(values []float64, r valueRange, style lineStyle, width, height int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	lo, hi := r.min, r.max
	if math.Abs(hi-lo) < 1e-9 {
		lo--
		hi++
	}
	dotRows := height * 4
	prevX, prevY := -1, -1
	for x, v := range values {
		px := x * 2
		py := valueToRow(v, lo, hi, dotRows)
		if prevX >= 0 {
			drawLine(prevX, prevY, px, py, func(dx, dy int) {
				if style.shouldPlot(dx) {
					setBrailleDot(cells, dx, dy)
				}
			})
		} else if style.shouldPlot(px) {
			setBrailleDot(cells, px, py)
		}
		prevX, prevY = px, py
	}
	return cells
}

func composeCell(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, cells := range layers {
		cellMask := cells[y][x]
		if cellMask == 0 {
			continue
		}
		if owner == -1 {
			owner = i
		}
		mask |= cellMask
	}
	return mask, owner
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

// resampleSeries stretches or averages values to exactly width samples.
func resampleSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := 0; i < width; i++ {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func valueToRow(v, minVal, maxVal float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(rows-1)))
	return max(0, min(rows-1, row))
}

func renderLegend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	marker := brailleFromMask(0x01)
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", marker, s.Name, lineStyles[i%len(lineStyles)].name)
		if useColor {
			label = colorPalette[i%len(colorPalette)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// drawLine walks a Bresenham line from (x0,y0) to (x1,y1).
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func setBrailleDot(cells [][]uint8, x, y int) {
	cellY, cellX := y/4, x/2
	if y < 0 || x < 0 || cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDots[x%2][y%4]
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
