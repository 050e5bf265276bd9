package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/trainlog/internal/model"
	"github.com/verte-zerg/trainlog/internal/store"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newJournal(records model.Collection) (*Journal, *store.MemoryStore) {
	st := store.NewMemory(records)
	return New(st, WithClock(fixedClock), WithIDGenerator(sequentialIDs())), st
}

func seedRecords() model.Collection {
	return model.Collection{
		{ID: "a", Date: "2024-03-01 18:00:00", Exercise: "Squat", Weight: "100", Repetitions: "5"},
		{ID: "b", Date: "2024-03-02 18:00:00", Exercise: "Bench", Weight: "80", Repetitions: "8"},
		{ID: "c", Date: "2024-03-03 18:00:00", Exercise: "Squat", Weight: "105", Repetitions: "5"},
		{Date: "2024-03-04 18:00:00", Exercise: "Row", Weight: "heavy", Repetitions: "10"},
	}
}

func TestAddStampsRecord(t *testing.T) {
	j, st := newJournal(nil)
	ctx := context.Background()

	rec, err := j.Add(ctx, "  Squat ", "100", "5")
	require.NoError(t, err)
	assert.Equal(t, model.Record{
		ID:          "id-1",
		Date:        "2024-03-05 18:30:00",
		Exercise:    "Squat",
		Weight:      "100",
		Repetitions: "5",
	}, rec)

	records, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Collection{rec}, records)
}

func TestAddRejectsEmptyFields(t *testing.T) {
	j, st := newJournal(nil)
	for _, in := range [][3]string{
		{"", "100", "5"},
		{"Squat", " ", "5"},
		{"Squat", "100", ""},
	} {
		_, err := j.Add(context.Background(), in[0], in[1], in[2])
		assert.ErrorIs(t, err, model.ErrEmptyField)
	}
	assert.Zero(t, st.Saves())
}

func TestAddAllAssignsIDsAndDates(t *testing.T) {
	j, st := newJournal(seedRecords())
	n, err := j.AddAll(context.Background(), model.Collection{
		{Exercise: "Press", Weight: "40", Repetitions: "8"},
		{Date: "2024-01-01 10:00:00", Exercise: "Press", Weight: "42", Repetitions: "8"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, _ := st.Load(context.Background())
	require.Len(t, records, 6)
	assert.Equal(t, "id-1", records[4].ID)
	assert.Equal(t, "2024-03-05 18:30:00", records[4].Date)
	assert.Equal(t, "id-2", records[5].ID)
	assert.Equal(t, "2024-01-01 10:00:00", records[5].Date)
}

func TestList(t *testing.T) {
	j, _ := newJournal(seedRecords())
	ctx := context.Background()

	all, err := j.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	squats, err := j.List(ctx, model.ListFilter{Exercise: "squat"})
	require.NoError(t, err)
	assert.Len(t, squats, 2)

	ranged, err := j.List(ctx, model.ListFilter{From: "2024-03-02", To: "2024-03-03", Exercise: "Squat"})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "c", ranged[0].ID)

	_, err = j.List(ctx, model.ListFilter{From: "03/02/2024", To: "2024-03-03"})
	assert.ErrorIs(t, err, model.ErrInvalidDateFormat)

	since, err := j.List(ctx, model.ListFilter{From: "2024-03-03"})
	require.NoError(t, err)
	assert.Len(t, since, 2)

	_, err = j.List(ctx, model.ListFilter{To: "2024-03-03"})
	assert.ErrorIs(t, err, model.ErrMissingStartDate)
}

func TestEditByID(t *testing.T) {
	j, st := newJournal(seedRecords())
	weight := "110"

	rec, err := j.Edit(context.Background(), model.Key{ID: "c"}, model.Fields{Weight: &weight})
	require.NoError(t, err)
	assert.Equal(t, "110", rec.Weight)

	records, _ := st.Load(context.Background())
	assert.Equal(t, "110", records[2].Weight)
	assert.Equal(t, "100", records[0].Weight)
}

func TestEditLegacyRecordByValues(t *testing.T) {
	records := seedRecords()
	j, st := newJournal(records)
	reps := "12"

	_, err := j.Edit(context.Background(), records[3].Key(), model.Fields{Repetitions: &reps})
	require.NoError(t, err)

	got, _ := st.Load(context.Background())
	assert.Equal(t, "12", got[3].Repetitions)
}

func TestEditErrors(t *testing.T) {
	j, st := newJournal(seedRecords())
	ctx := context.Background()
	weight := "1"

	_, err := j.Edit(ctx, model.Key{}, model.Fields{Weight: &weight})
	assert.ErrorIs(t, err, model.ErrNoSelection)

	_, err = j.Edit(ctx, model.Key{ID: "missing"}, model.Fields{Weight: &weight})
	assert.ErrorIs(t, err, model.ErrRecordNotFound)

	bad := "yesterday"
	_, err = j.Edit(ctx, model.Key{ID: "a"}, model.Fields{Date: &bad})
	assert.ErrorIs(t, err, model.ErrInvalidDateFormat)

	assert.Zero(t, st.Saves())
}

func TestDelete(t *testing.T) {
	j, st := newJournal(seedRecords())
	ctx := context.Background()

	removed, err := j.Delete(ctx, model.Key{ID: "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	records, _ := st.Load(ctx)
	assert.Len(t, records, 3)
	for _, r := range records {
		assert.NotEqual(t, "b", r.ID)
	}

	_, err = j.Delete(ctx, model.Key{ID: "b"})
	assert.ErrorIs(t, err, model.ErrRecordNotFound)

	_, err = j.Delete(ctx, model.Key{})
	assert.ErrorIs(t, err, model.ErrNoSelection)
	assert.Equal(t, 1, st.Saves())
}

func TestExportImportRoundTrip(t *testing.T) {
	j, _ := newJournal(seedRecords())
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "log.csv")

	n, err := j.ExportCSV(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	target, st := newJournal(nil)
	n, err = target.ImportCSV(ctx, path, model.ImportAppend)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	records, _ := st.Load(ctx)
	require.Len(t, records, 4)
	for i, r := range records {
		src := seedRecords()[i]
		assert.Equal(t, fmt.Sprintf("id-%d", i+1), r.ID)
		assert.Equal(t, src.Date, r.Date)
		assert.Equal(t, src.Exercise, r.Exercise)
		assert.Equal(t, src.Weight, r.Weight)
		assert.Equal(t, src.Repetitions, r.Repetitions)
	}
}

func TestImportModes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	csv := "date,exercise,weight,repetitions\n2024-04-01 09:00:00,Press,40,8\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	ctx := context.Background()

	j, st := newJournal(seedRecords())
	_, err := j.ImportCSV(ctx, path, model.ImportAppend)
	require.NoError(t, err)
	records, _ := st.Load(ctx)
	assert.Len(t, records, 5)
	assert.Equal(t, "Press", records[4].Exercise)

	j, st = newJournal(seedRecords())
	_, err = j.ImportCSV(ctx, path, model.ImportReplace)
	require.NoError(t, err)
	records, _ = st.Load(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, "Press", records[0].Exercise)

	_, err = j.ImportCSV(ctx, path, model.ImportMode("merge"))
	assert.Error(t, err)
}

func TestImportMalformedLeavesStoreUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	csv := "date,exercise,weight,repetitions\n2024-04-01 09:00:00,Press,40\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	j, st := newJournal(seedRecords())
	_, err := j.ImportCSV(context.Background(), path, model.ImportReplace)
	assert.ErrorIs(t, err, model.ErrMalformedRow)
	assert.Zero(t, st.Saves())
}

func TestStatistics(t *testing.T) {
	j, _ := newJournal(seedRecords())
	totals, err := j.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.ExerciseTotal{
		{Exercise: "Squat", Weight: 205},
		{Exercise: "Bench", Weight: 80},
	}, totals.Totals)
	assert.Equal(t, 1, totals.Skipped)
}

func TestSeries(t *testing.T) {
	j, _ := newJournal(seedRecords())
	ctx := context.Background()

	points, err := j.Series(ctx, "Squat")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 105, points[1].Weight)

	_, err = j.Series(ctx, "squat")
	assert.ErrorIs(t, err, model.ErrExerciseNotFound)

	_, err = j.Series(ctx, "Row")
	assert.ErrorIs(t, err, model.ErrInvalidNumericField)
}

func TestExercises(t *testing.T) {
	j, _ := newJournal(seedRecords())
	names, err := j.Exercises(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Squat", "Bench", "Row"}, names)
}
