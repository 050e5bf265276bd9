// Package journal exposes the operations the CLI and TUIs call. Each
// operation loads the collection, transforms it in memory and saves it back
// only when the transform succeeded.
package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/trainlog/internal/csvio"
	"github.com/verte-zerg/trainlog/internal/model"
	"github.com/verte-zerg/trainlog/internal/query"
	"github.com/verte-zerg/trainlog/internal/store"
)

// Journal runs record operations against a Store.
type Journal struct {
	store store.Store
	now   func() time.Time
	newID func() string
}

// Option customizes a Journal.
type Option func(*Journal)

// WithClock overrides the clock used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		j.now = now
	}
}

// WithIDGenerator overrides how record identifiers are generated.
func WithIDGenerator(newID func() string) Option {
	return func(j *Journal) {
		j.newID = newID
	}
}

// New returns a Journal persisting through st.
func New(st store.Store, opts ...Option) *Journal {
	j := &Journal{
		store: st,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Now returns the journal clock's current time.
func (j *Journal) Now() time.Time {
	return j.now()
}

// Records returns the full collection.
func (j *Journal) Records(ctx context.Context) (model.Collection, error) {
	return j.store.Load(ctx)
}

// Add appends a new record stamped with the current time.
func (j *Journal) Add(ctx context.Context, exercise, weight, repetitions string) (model.Record, error) {
	exercise = strings.TrimSpace(exercise)
	weight = strings.TrimSpace(weight)
	repetitions = strings.TrimSpace(repetitions)
	if exercise == "" || weight == "" || repetitions == "" {
		return model.Record{}, model.ErrEmptyField
	}

	records, err := j.store.Load(ctx)
	if err != nil {
		return model.Record{}, err
	}
	record := model.Record{
		ID:          j.newID(),
		Date:        j.now().Format(model.DateLayout),
		Exercise:    exercise,
		Weight:      weight,
		Repetitions: repetitions,
	}
	if err := j.store.Save(ctx, append(records, record)); err != nil {
		return model.Record{}, err
	}
	logrus.WithFields(logrus.Fields{"id": record.ID, "exercise": record.Exercise}).Info("record added")
	return record, nil
}

// AddAll appends records, filling in missing identifiers and dates.
func (j *Journal) AddAll(ctx context.Context, incoming model.Collection) (int, error) {
	records, err := j.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	records = append(records, j.stamp(incoming)...)
	if err := j.store.Save(ctx, records); err != nil {
		return 0, err
	}
	logrus.WithField("count", len(incoming)).Info("records added")
	return len(incoming), nil
}

// List returns the records selected by filter. A filter with only a start
// date runs up to the current day.
func (j *Journal) List(ctx context.Context, filter model.ListFilter) (model.Collection, error) {
	filter, err := query.CompleteRange(filter, j.now())
	if err != nil {
		return nil, err
	}
	records, err := j.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return query.Apply(records, filter)
}

// Edit updates the first record selected by key.
func (j *Journal) Edit(ctx context.Context, key model.Key, fields model.Fields) (model.Record, error) {
	if key.IsZero() {
		return model.Record{}, model.ErrNoSelection
	}
	if fields.Date != nil {
		if _, err := query.ParseTimestamp(*fields.Date); err != nil {
			return model.Record{}, err
		}
	}
	records, err := j.store.Load(ctx)
	if err != nil {
		return model.Record{}, err
	}
	updated, record, err := query.Update(records, key, fields)
	if err != nil {
		return model.Record{}, err
	}
	if err := j.store.Save(ctx, updated); err != nil {
		return model.Record{}, err
	}
	logrus.WithFields(logrus.Fields{"id": record.ID, "exercise": record.Exercise}).Info("record updated")
	return record, nil
}

// Delete removes the records selected by key and reports how many were removed.
func (j *Journal) Delete(ctx context.Context, key model.Key) (int, error) {
	records, err := j.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	remaining, removed, err := query.Delete(records, key)
	if err != nil {
		return 0, err
	}
	if err := j.store.Save(ctx, remaining); err != nil {
		return 0, err
	}
	logrus.WithField("removed", removed).Info("records deleted")
	return removed, nil
}

// ExportCSV writes the full collection to a CSV file.
func (j *Journal) ExportCSV(ctx context.Context, path string) (int, error) {
	records, err := j.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := csvio.ExportFile(path, records); err != nil {
		return 0, err
	}
	logrus.WithFields(logrus.Fields{"path": path, "count": len(records)}).Info("exported csv")
	return len(records), nil
}

// ImportCSV reads a CSV file and merges it into the collection according to
// mode. Imported records get fresh identifiers. Nothing is saved when the
// file is malformed.
func (j *Journal) ImportCSV(ctx context.Context, path string, mode model.ImportMode) (int, error) {
	imported, err := csvio.ImportFile(path)
	if err != nil {
		return 0, err
	}
	var records model.Collection
	switch mode {
	case "", model.ImportAppend:
		records, err = j.store.Load(ctx)
		if err != nil {
			return 0, err
		}
	case model.ImportReplace:
		records = model.Collection{}
	default:
		return 0, fmt.Errorf("unknown import mode %q (expected append|replace)", mode)
	}

	records = append(records, j.stamp(imported)...)
	if err := j.store.Save(ctx, records); err != nil {
		return 0, err
	}
	logrus.WithFields(logrus.Fields{"path": path, "count": len(imported), "mode": mode}).Info("imported csv")
	return len(imported), nil
}

// Statistics sums weight per exercise over the full collection.
func (j *Journal) Statistics(ctx context.Context) (model.WeightTotals, error) {
	records, err := j.store.Load(ctx)
	if err != nil {
		return model.WeightTotals{}, err
	}
	totals := query.AggregateWeightByExercise(records)
	if totals.Skipped > 0 {
		logrus.WithField("skipped", totals.Skipped).Warn("records with non-numeric weight skipped")
	}
	return totals, nil
}

// Series returns the progress samples for an exercise, matched exactly.
func (j *Journal) Series(ctx context.Context, exercise string) ([]model.SeriesPoint, error) {
	records, err := j.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	points, err := query.SeriesForExercise(records, exercise)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w %q", model.ErrExerciseNotFound, exercise)
	}
	return points, nil
}

// Exercises lists distinct exercise names in first-appearance order.
func (j *Journal) Exercises(ctx context.Context) ([]string, error) {
	records, err := j.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return query.Exercises(records), nil
}

func (j *Journal) stamp(incoming model.Collection) model.Collection {
	out := incoming.Clone()
	for i := range out {
		out[i].ID = j.newID()
		if out[i].Date == "" {
			out[i].Date = j.now().Format(model.DateLayout)
		}
	}
	return out
}
