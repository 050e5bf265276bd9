package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/trainlog/internal/model"
)

func sampleRecords() model.Collection {
	return model.Collection{
		{ID: "a", Date: "2024-03-01 18:00:00", Exercise: "Squat", Weight: "100", Repetitions: "5"},
		{Date: "2024-03-02 18:10:00", Exercise: "Bench, close grip", Weight: "80", Repetitions: "8"},
		{ID: "c", Date: "2024-03-03 07:45:12", Exercise: "Deadlift \"conventional\"", Weight: "140", Repetitions: "3"},
	}
}

func TestJSONStoreLoadMissingFileIsEmpty(t *testing.T) {
	st := NewJSON(filepath.Join(t.TempDir(), "missing", "training_log.json"))

	records, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestJSONStoreLoadCorruptFileIsEmpty(t *testing.T) {
	for name, content := range map[string]string{
		"garbage":      "{not json",
		"object":       `{"date": "2024-01-01"}`,
		"wrong types":  `[{"date": "2024-01-01 00:00:00", "exercise": "Squat", "weight": 100, "repetitions": "5"}]`,
		"empty":        "",
		"whitespace":   "  \n",
		"null literal": "null",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "training_log.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			records, err := NewJSON(path).Load(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Empty(t, records)
		})
	}
}

func TestJSONStoreSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "training_log.json")
	st := NewJSON(path)

	require.NoError(t, st.Save(ctx, sampleRecords()))
	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), loaded)

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, loaded))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "save(load()) must not change the file")
}

func TestJSONStoreWritesIndentedArray(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "training_log.json")
	st := NewJSON(path)

	require.NoError(t, st.Save(ctx, model.Collection{
		{Date: "2024-03-01 18:00:00", Exercise: "Squat", Weight: "100", Repetitions: "5"},
	}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `[
    {
        "date": "2024-03-01 18:00:00",
        "exercise": "Squat",
        "weight": "100",
        "repetitions": "5"
    }
]
`
	assert.Equal(t, want, string(got))
}

func TestJSONStoreSaveEmptyWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "training_log.json")
	require.NoError(t, NewJSON(path).Save(ctx, nil))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(got))
}

func TestJSONStoreLoadsLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training_log.json")
	legacy := `[
    {
        "date": "2023-12-30 09:15:00",
        "exercise": "Squat",
        "weight": "90",
        "repetitions": "10"
    }
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	records, err := NewJSON(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].ID)
	assert.Equal(t, "Squat", records[0].Exercise)
}

func TestJSONStoreUnreadablePathIsUnavailable(t *testing.T) {
	dir := t.TempDir()

	_, err := NewJSON(dir).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, err := Open("csv", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")

	st, err := Open("", filepath.Join(t.TempDir(), "x.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, st)
}

func TestMemoryStoreCopiesCollections(t *testing.T) {
	ctx := context.Background()
	records := sampleRecords()
	st := NewMemory(records)

	records[0].Weight = "1"
	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "100", loaded[0].Weight)

	loaded[0].Weight = "2"
	again, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "100", again[0].Weight)

	require.NoError(t, st.Save(ctx, loaded))
	assert.Equal(t, 1, st.Saves())
}
