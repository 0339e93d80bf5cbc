package energy

import (
	"testing"

	"github.com/jgoulah/energycalc/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultWithTotal(total string) models.DailyEnergyResult {
	return models.DailyEnergyResult{TotalEnergy: dec(total)}
}

func mustCompute(t *testing.T, in models.DailyUsageInput) models.DailyEnergyResult {
	t.Helper()
	r, err := Compute(in)
	require.NoError(t, err)
	return r
}

func TestWeekEmpty(t *testing.T) {
	w := NewWeek()

	assert.Equal(t, Empty, w.State())
	assert.True(t, w.TotalEnergy().IsZero())
	assert.True(t, w.AverageEnergy().IsZero())

	_, err := w.MaxDay()
	assert.ErrorIs(t, err, ErrEmptyState)
	_, err = w.MinDay()
	assert.ErrorIs(t, err, ErrEmptyState)
}

func TestWeekZeroValueUsable(t *testing.T) {
	var w Week
	require.NoError(t, w.SetDay(models.Friday, resultWithTotal("2.4")))
	assert.Equal(t, 1, w.Len())
}

func TestWeekSetDayRejectsUnknownDay(t *testing.T) {
	w := NewWeek()
	require.NoError(t, w.SetDay(models.Monday, resultWithTotal("2.4")))

	for _, day := range []models.Weekday{"", "monday", "Funday", "Mon"} {
		err := w.SetDay(day, resultWithTotal("9"))
		assert.ErrorIs(t, err, ErrInvalidInput, "day %q", day)
	}

	assert.Equal(t, 1, w.Len())
	assert.Equal(t, "2.4", w.TotalEnergy().String())
}

func TestWeekSetDayIdempotent(t *testing.T) {
	w := NewWeek()
	r := mustCompute(t, models.DailyUsageInput{RoomCategory: 1, ACCount: 1})

	require.NoError(t, w.SetDay(models.Monday, r))
	before := w.Summary()
	require.NoError(t, w.SetDay(models.Monday, r))

	assert.Equal(t, before, w.Summary())
	assert.Equal(t, 1, w.Len())
}

func TestWeekSetDayOverwrites(t *testing.T) {
	w := NewWeek()
	r1 := mustCompute(t, models.DailyUsageInput{RoomCategory: 1})
	r2 := mustCompute(t, models.DailyUsageInput{RoomCategory: 3, ACCount: 2, WashingMachineUsed: true})

	require.NoError(t, w.SetDay(models.Wednesday, r1))
	require.NoError(t, w.SetDay(models.Wednesday, r2))

	assert.Equal(t, 1, w.Len())
	got, ok := w.Get(models.Wednesday)
	require.True(t, ok)
	assert.Equal(t, r2, got)
	assert.Equal(t, "14.8", w.TotalEnergy().String())
}

func TestWeekReset(t *testing.T) {
	w := NewWeek()
	for _, day := range models.Weekdays {
		require.NoError(t, w.SetDay(day, resultWithTotal("5")))
	}
	require.Equal(t, Complete, w.State())

	w.Reset()

	assert.Equal(t, Empty, w.State())
	assert.True(t, w.TotalEnergy().IsZero())
	_, err := w.MaxDay()
	assert.ErrorIs(t, err, ErrEmptyState)
	_, err = w.MinDay()
	assert.ErrorIs(t, err, ErrEmptyState)

	// reusable after reset
	require.NoError(t, w.SetDay(models.Sunday, resultWithTotal("3.6")))
	assert.Equal(t, Partial, w.State())
}

func TestWeekAverage(t *testing.T) {
	totals := []string{"2.4", "3.6", "4.8", "2.4", "3.6", "4.8", "2.4"}

	w := NewWeek()
	for i, day := range models.Weekdays[:3] {
		require.NoError(t, w.SetDay(day, resultWithTotal(totals[i])))
	}
	assert.Equal(t, Partial, w.State())
	assert.True(t, w.AverageEnergy().IsZero(), "incomplete week should report zero average")

	for i, day := range models.Weekdays {
		require.NoError(t, w.SetDay(day, resultWithTotal(totals[i])))
	}
	assert.Equal(t, Complete, w.State())
	assert.Equal(t, "24", w.TotalEnergy().String())

	want := dec("24").Div(decimal.NewFromInt(7))
	assert.True(t, want.Equal(w.AverageEnergy()), "got %s want %s", w.AverageEnergy(), want)
	assert.Equal(t, "3.4", w.AverageEnergy().StringFixed(1))
}

func TestWeekIdenticalDays(t *testing.T) {
	w := NewWeek()
	for _, day := range models.Weekdays {
		require.NoError(t, w.SetDay(day, resultWithTotal("5.0")))
	}

	assert.True(t, dec("35").Equal(w.TotalEnergy()))
	assert.True(t, dec("5").Equal(w.AverageEnergy()))

	maxDay, err := w.MaxDay()
	require.NoError(t, err)
	minDay, err := w.MinDay()
	require.NoError(t, err)
	assert.Equal(t, models.Monday, maxDay)
	assert.Equal(t, models.Monday, minDay)
}

func TestWeekMaxMinTieBreak(t *testing.T) {
	w := NewWeek()
	// inserted out of order on purpose
	require.NoError(t, w.SetDay(models.Saturday, resultWithTotal("9")))
	require.NoError(t, w.SetDay(models.Tuesday, resultWithTotal("9")))
	require.NoError(t, w.SetDay(models.Sunday, resultWithTotal("1.2")))
	require.NoError(t, w.SetDay(models.Thursday, resultWithTotal("1.2")))
	require.NoError(t, w.SetDay(models.Monday, resultWithTotal("4")))

	maxDay, err := w.MaxDay()
	require.NoError(t, err)
	assert.Equal(t, models.Tuesday, maxDay)

	minDay, err := w.MinDay()
	require.NoError(t, err)
	assert.Equal(t, models.Thursday, minDay)
}

func TestWeekEntriesOrderAndRestart(t *testing.T) {
	w := NewWeek()
	require.NoError(t, w.SetDay(models.Sunday, resultWithTotal("1")))
	require.NoError(t, w.SetDay(models.Monday, resultWithTotal("2")))
	require.NoError(t, w.SetDay(models.Thursday, resultWithTotal("3")))

	collect := func() []models.Weekday {
		var days []models.Weekday
		for day := range w.Entries() {
			days = append(days, day)
		}
		return days
	}

	want := []models.Weekday{models.Monday, models.Thursday, models.Sunday}
	assert.Equal(t, want, collect())
	assert.Equal(t, want, collect())

	// early exit doesn't disturb later traversals
	for range w.Entries() {
		break
	}

	seq := w.Entries()
	require.NoError(t, w.SetDay(models.Tuesday, resultWithTotal("4")))
	var days []models.Weekday
	for day := range seq {
		days = append(days, day)
	}
	assert.Equal(t, []models.Weekday{models.Monday, models.Tuesday, models.Thursday, models.Sunday}, days)
}

func TestWeekStateTransitions(t *testing.T) {
	w := NewWeek()
	assert.Equal(t, Empty, w.State())

	for i, day := range models.Weekdays {
		require.NoError(t, w.SetDay(day, resultWithTotal("1")))
		if i < 6 {
			assert.Equal(t, Partial, w.State(), "after %d days", i+1)
		}
	}
	assert.Equal(t, Complete, w.State())

	require.NoError(t, w.SetDay(models.Wednesday, resultWithTotal("2")))
	assert.Equal(t, Complete, w.State())
	assert.Equal(t, "complete", w.State().String())
}

func TestWeekSummary(t *testing.T) {
	w := NewWeek()
	assert.Nil(t, w.Summary().Highest)
	assert.Nil(t, w.Summary().Lowest)

	require.NoError(t, w.SetDay(models.Monday, mustCompute(t, models.DailyUsageInput{RoomCategory: 2, ACCount: 2, FridgeUsed: true})))
	require.NoError(t, w.SetDay(models.Tuesday, mustCompute(t, models.DailyUsageInput{RoomCategory: 1})))

	s := w.Summary()
	assert.Equal(t, 2, s.Days)
	assert.False(t, s.Complete)
	assert.Equal(t, "16", s.TotalEnergy.String())
	assert.True(t, s.AverageEnergy.IsZero())
	require.NotNil(t, s.Highest)
	require.NotNil(t, s.Lowest)
	assert.Equal(t, models.Monday, s.Highest.Day)
	assert.Equal(t, "13.6", s.Highest.TotalEnergy.String())
	assert.Equal(t, models.Tuesday, s.Lowest.Day)
	assert.Equal(t, "2.4", s.Lowest.TotalEnergy.String())
}
