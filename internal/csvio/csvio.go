// Package csvio converts record collections to and from CSV.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/verte-zerg/trainlog/internal/model"
)

const (
	colDate = iota
	colExercise
	colWeight
	colRepetitions
	columnCount
)

// Header is the column row written before the records.
var Header = []string{"date", "exercise", "weight", "repetitions"}

// Export writes the header and one row per record to w.
func Export(w io.Writer, records model.Collection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(Header))
	for i, r := range records {
		row[colDate] = r.Date
		row[colExercise] = r.Exercise
		row[colWeight] = r.Weight
		row[colRepetitions] = r.Repetitions
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Import reads records from r. Columns are located by header name, so any
// column order is accepted. A row whose column count differs from the header
// aborts the import with a *model.RowError.
func Import(r io.Reader) (model.Collection, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.Collection{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	records := model.Collection{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrMalformedRow, err)
		}
		if len(row) != len(header) {
			line, _ := cr.FieldPos(0)
			return nil, &model.RowError{Line: line, Got: len(row), Want: len(header)}
		}
		records = append(records, model.Record{
			Date:        row[index[colDate]],
			Exercise:    row[index[colExercise]],
			Weight:      row[index[colWeight]],
			Repetitions: row[index[colRepetitions]],
		})
	}
	return records, nil
}

func headerIndex(header []string) ([columnCount]int, error) {
	var index [columnCount]int
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		positions[strings.ToLower(name)] = i
	}
	var missing []string
	for col, name := range Header {
		pos, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		index[col] = pos
	}
	if len(missing) > 0 {
		return index, fmt.Errorf("%w: header is missing %s", model.ErrMalformedRow, strings.Join(missing, ", "))
	}
	return index, nil
}

// ExportFile writes records to a CSV file at path, replacing any existing file.
func ExportFile(path string, records model.Collection) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()
	return Export(file, records)
}

// ImportFile reads records from the CSV file at path.
func ImportFile(path string) (_ model.Collection, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()
	return Import(file)
}
