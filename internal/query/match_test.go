package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/trainlog/internal/model"
)

func strPtr(s string) *string {
	return &s
}

func TestUpdateChangesFirstMatchOnly(t *testing.T) {
	dup := rec("2024-03-01 18:00:00", "Squat", "100", "5")
	records := model.Collection{
		rec("2024-02-28 18:00:00", "Bench", "80", "8"),
		dup,
		dup,
	}

	got, updated, err := Update(records, dup.Key(), model.Fields{Weight: strPtr("999")})
	require.NoError(t, err)
	assert.Equal(t, "999", updated.Weight)
	assert.Equal(t, dup.Date, updated.Date)
	assert.Equal(t, model.Collection{
		records[0],
		rec("2024-03-01 18:00:00", "Squat", "999", "5"),
		dup,
	}, got)
	assert.Equal(t, "100", records[1].Weight, "input must not be modified")
}

func TestUpdateByIDSkipsLookalikes(t *testing.T) {
	a := rec("2024-03-01 18:00:00", "Squat", "100", "5")
	a.ID = "first"
	b := a
	b.ID = "second"

	got, _, err := Update(model.Collection{a, b}, b.Key(), model.Fields{
		Exercise:    strPtr("Front Squat"),
		Repetitions: strPtr("3"),
		Date:        strPtr("2024-03-05 07:00:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, a, got[0])
	assert.Equal(t, model.Record{ID: "second", Date: "2024-03-05 07:00:00", Exercise: "Front Squat", Weight: "100", Repetitions: "3"}, got[1])
}

func TestUpdateErrors(t *testing.T) {
	records := model.Collection{rec("2024-03-01 18:00:00", "Squat", "100", "5")}

	_, _, err := Update(records, model.Key{}, model.Fields{Weight: strPtr("1")})
	assert.ErrorIs(t, err, model.ErrNoSelection)

	_, _, err = Update(records, model.Key{Exercise: "Row"}, model.Fields{Weight: strPtr("1")})
	assert.ErrorIs(t, err, model.ErrRecordNotFound)
}

func TestDeleteRemovesAllLegacyMatches(t *testing.T) {
	dup := rec("2024-03-01 18:00:00", "Squat", "100", "5")
	other := rec("2024-03-01 18:00:00", "Squat", "100", "6")
	records := model.Collection{dup, other, dup}

	got, removed, err := Delete(records, dup.Key())
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, model.Collection{other}, got)
	assert.Len(t, records, 3)
}

func TestDeleteByIDRemovesOne(t *testing.T) {
	a := rec("2024-03-01 18:00:00", "Squat", "100", "5")
	a.ID = "a"
	b := a
	b.ID = "b"

	got, removed, err := Delete(model.Collection{a, b}, a.Key())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, model.Collection{b}, got)
}

func TestDeleteErrors(t *testing.T) {
	records := model.Collection{rec("2024-03-01 18:00:00", "Squat", "100", "5")}

	_, _, err := Delete(records, model.Key{})
	assert.ErrorIs(t, err, model.ErrNoSelection)

	_, _, err = Delete(records, model.Key{ID: "missing"})
	assert.ErrorIs(t, err, model.ErrRecordNotFound)
}
