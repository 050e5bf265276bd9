package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/trainlog/internal/catalog"
	"github.com/verte-zerg/trainlog/internal/query"
)

func TestGenerateShape(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := NewWithSeed(7).Generate(catalog.Default, 4, start)

	require.Len(t, records, 4*exercisesPerSession*setsPerExercise)
	for _, r := range records {
		ts, err := query.ParseTimestamp(r.Date)
		require.NoError(t, err)
		assert.False(t, ts.Before(start))
		assert.Empty(t, r.ID)

		reps, err := query.ParseInt(r.Repetitions)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, reps, minReps)
		assert.LessOrEqual(t, reps, maxReps)
		_, err = query.ParseInt(r.Weight)
		assert.NoError(t, err)
	}
}

func TestGenerateProgressesWeight(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	exercises := []catalog.Exercise{{Name: "Squat", StartWeight: 60, Step: 5}}
	records := NewWithSeed(1).Generate(exercises, 3, start)

	points, err := query.SeriesForExercise(records, "Squat")
	require.NoError(t, err)
	require.Len(t, points, 3*setsPerExercise)
	assert.Equal(t, 60, points[0].Weight)
	assert.Equal(t, 65, points[setsPerExercise].Weight)
	assert.Equal(t, 70, points[2*setsPerExercise].Weight)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Time.After(points[i-1].Time), "timestamps must increase")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewWithSeed(42).Generate(catalog.Default, 5, start)
	b := NewWithSeed(42).Generate(catalog.Default, 5, start)
	assert.Equal(t, a, b)
}

func TestGenerateEmpty(t *testing.T) {
	g := NewWithSeed(3)
	assert.Empty(t, g.Generate(nil, 3, time.Now()))
	assert.Empty(t, g.Generate(catalog.Default, 0, time.Now()))
}
