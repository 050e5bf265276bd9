package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/trainlog/internal/model"
)

func rec(date, exercise, weight, reps string) model.Record {
	return model.Record{Date: date, Exercise: exercise, Weight: weight, Repetitions: reps}
}

func TestFilterByDateRangeInclusiveDays(t *testing.T) {
	records := model.Collection{
		rec("2024-02-29 23:59:59", "Squat", "100", "5"),
		rec("2024-03-01 00:00:00", "Squat", "100", "5"),
		rec("2024-03-02 12:30:00", "Bench", "80", "8"),
		rec("2024-03-03 23:59:59", "Squat", "105", "5"),
		rec("2024-03-04 00:00:00", "Squat", "110", "5"),
		rec("not a date", "Squat", "1", "1"),
	}

	got, err := FilterByDateRange(records, "2024-03-01", "2024-03-03")
	require.NoError(t, err)
	assert.Equal(t, model.Collection{records[1], records[2], records[3]}, got)
}

func TestFilterByDateRangeSkipsNonCanonicalDates(t *testing.T) {
	records := model.Collection{
		rec("2024-3-15 10:00:00", "Squat", "100", "5"),
		rec("2024-03-15 10:00:00", "Squat", "100", "5"),
	}
	got, err := FilterByDateRange(records, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, model.Collection{records[1]}, got)
}

func TestFilterByDateRangeSingleDay(t *testing.T) {
	records := model.Collection{
		rec("2024-03-01 00:00:00", "Squat", "100", "5"),
		rec("2024-03-01 23:59:59", "Squat", "100", "5"),
		rec("2024-03-02 00:00:00", "Squat", "100", "5"),
	}
	got, err := FilterByDateRange(records, "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFilterByDateRangeInvalidInput(t *testing.T) {
	records := model.Collection{rec("2024-03-01 00:00:00", "Squat", "100", "5")}
	for _, tc := range []struct{ start, end string }{
		{"2024/03/01", "2024-03-02"},
		{"2024-03-01", "tomorrow"},
		{"", "2024-03-02"},
		{"2024-13-01", "2024-12-01"},
	} {
		got, err := FilterByDateRange(records, tc.start, tc.end)
		assert.ErrorIs(t, err, model.ErrInvalidDateFormat, "%s..%s", tc.start, tc.end)
		assert.Nil(t, got)
	}
}

func TestFilterByDateRangeReversedIsEmpty(t *testing.T) {
	records := model.Collection{rec("2024-03-02 00:00:00", "Squat", "100", "5")}
	got, err := FilterByDateRange(records, "2024-03-03", "2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterByExerciseIgnoresCaseKeepsOrder(t *testing.T) {
	records := model.Collection{
		rec("2024-03-01 10:00:00", "Squat", "100", "5"),
		rec("2024-03-01 10:05:00", "Bench", "80", "8"),
		rec("2024-03-01 10:10:00", "SQUAT", "105", "5"),
		rec("2024-03-01 10:15:00", "squat ", "110", "5"),
		rec("2024-03-01 10:20:00", "squat", "115", "5"),
	}
	got := FilterByExercise(records, "squat")
	assert.Equal(t, model.Collection{records[0], records[2], records[4]}, got)

	assert.Empty(t, FilterByExercise(records, "Deadlift"))
	assert.NotNil(t, FilterByExercise(nil, "Squat"))
}

func TestApplyCombinesFilters(t *testing.T) {
	records := model.Collection{
		rec("2024-03-01 10:00:00", "Squat", "100", "5"),
		rec("2024-03-02 10:00:00", "Bench", "80", "8"),
		rec("2024-04-01 10:00:00", "Squat", "110", "5"),
	}

	got, err := Apply(records, model.ListFilter{From: "2024-03-01", To: "2024-03-31", Exercise: "squat"})
	require.NoError(t, err)
	assert.Equal(t, model.Collection{records[0]}, got)

	all, err := Apply(records, model.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, records, all)
	all[0].Weight = "0"
	assert.Equal(t, "100", records[0].Weight, "Apply must return a copy")

	_, err = Apply(records, model.ListFilter{From: "2024-03-01"})
	assert.ErrorIs(t, err, model.ErrInvalidDateFormat)
}

func TestExercisesFirstAppearance(t *testing.T) {
	records := model.Collection{
		rec("2024-03-01 10:00:00", "Squat", "100", "5"),
		rec("2024-03-01 10:05:00", "Bench", "80", "8"),
		rec("2024-03-01 10:10:00", "Squat", "105", "5"),
		rec("2024-03-01 10:15:00", "squat", "105", "5"),
	}
	assert.Equal(t, []string{"Squat", "Bench", "squat"}, Exercises(records))
	assert.Empty(t, Exercises(nil))
}

func TestCompleteRange(t *testing.T) {
	now := time.Date(2024, 5, 20, 13, 0, 0, 0, time.UTC)

	got, err := CompleteRange(model.ListFilter{From: " 2024-05-01 ", Exercise: "Squat"}, now)
	require.NoError(t, err)
	assert.Equal(t, model.ListFilter{From: "2024-05-01", To: "2024-05-20", Exercise: "Squat"}, got)

	got, err = CompleteRange(model.ListFilter{From: "2024-05-01", To: "2024-05-10"}, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", got.To)

	got, err = CompleteRange(model.ListFilter{Exercise: "Squat"}, now)
	require.NoError(t, err)
	assert.Equal(t, model.ListFilter{Exercise: "Squat"}, got)

	_, err = CompleteRange(model.ListFilter{To: "2024-05-10"}, now)
	assert.ErrorIs(t, err, model.ErrMissingStartDate)
}
