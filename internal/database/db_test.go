package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/energycalc/internal/energy"
	"github.com/jgoulah/energycalc/pkg/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEnsureSessionCreatesOnce(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	none, err := db.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	s1, err := db.EnsureSession(ctx)
	require.NoError(t, err)
	s2, err := db.EnsureSession(ctx)
	require.NoError(t, err)

	assert.Equal(t, s1.ID, s2.ID)
	assert.True(t, s1.StartedAt.Equal(s2.StartedAt))
}

func TestSaveDayOverwritesAndLoadsWeek(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s, err := db.EnsureSession(ctx)
	require.NoError(t, err)

	require.NoError(t, db.SaveDay(ctx, s.ID, models.Sunday, models.DailyUsageInput{RoomCategory: 1}))
	require.NoError(t, db.SaveDay(ctx, s.ID, models.Monday, models.DailyUsageInput{RoomCategory: 1, ACCount: 5}))
	require.NoError(t, db.SaveDay(ctx, s.ID, models.Monday, models.DailyUsageInput{RoomCategory: 2, ACCount: 2, FridgeUsed: true}))

	days, err := db.ListDays(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, models.Monday, days[0].Day)
	assert.Equal(t, models.DailyUsageInput{RoomCategory: 2, ACCount: 2, FridgeUsed: true}, days[0].Input)
	assert.Equal(t, models.Sunday, days[1].Day)

	week, err := db.LoadWeek(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, week.Len())
	assert.Equal(t, "16", week.TotalEnergy().String())
}

func TestSaveDaysIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s, err := db.EnsureSession(ctx)
	require.NoError(t, err)

	err = db.SaveDays(ctx, s.ID, map[models.Weekday]models.DailyUsageInput{
		models.Monday:  {RoomCategory: 1},
		models.Tuesday: {RoomCategory: 1, ACCount: 11},
	})
	assert.ErrorIs(t, err, energy.ErrInvalidInput)

	err = db.SaveDay(ctx, s.ID, models.Weekday("Someday"), models.DailyUsageInput{RoomCategory: 1})
	assert.ErrorIs(t, err, energy.ErrInvalidInput)

	days, err := db.ListDays(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestClearDays(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s, err := db.EnsureSession(ctx)
	require.NoError(t, err)

	for _, day := range models.Weekdays {
		require.NoError(t, db.SaveDay(ctx, s.ID, day, models.DailyUsageInput{RoomCategory: 3}))
	}

	n, err := db.ClearDays(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	week, err := db.LoadWeek(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, energy.Empty, week.State())

	current, err := db.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.ID, current.ID)
}

func TestStartSessionDropsPreviousSession(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	old, err := db.StartSession(ctx)
	require.NoError(t, err)
	require.NoError(t, db.SaveDay(ctx, old.ID, models.Friday, models.DailyUsageInput{RoomCategory: 2}))

	fresh, err := db.StartSession(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, old.ID, fresh.ID)

	current, err := db.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, current.ID)

	oldDays, err := db.ListDays(ctx, old.ID)
	require.NoError(t, err)
	assert.Empty(t, oldDays)
}
