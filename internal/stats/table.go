package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxCellWidth caps free-text columns such as exercise names.
const maxCellWidth = 32

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := min(runewidth.StringWidth(cell), maxCellWidth); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = runewidth.Truncate(row[i], width, "...")
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		if rightAlignCols[i] {
			b.WriteString(runewidth.FillLeft(cell, width))
		} else if i < len(widths)-1 {
			b.WriteString(runewidth.FillRight(cell, width))
		} else {
			b.WriteString(cell)
		}
	}
	return b.String()
}
