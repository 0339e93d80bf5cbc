package energy

import (
	"fmt"
	"iter"

	"github.com/jgoulah/energycalc/pkg/models"
	"github.com/shopspring/decimal"
)

// State describes how much of the week has been filled in
type State int

const (
	Empty State = iota
	Partial
	Complete
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Partial:
		return "partial"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var daysPerWeek = decimal.NewFromInt(int64(len(models.Weekdays)))

// Week holds at most one result per canonical weekday.
// It does no locking; callers sharing a Week across goroutines must serialize access.
type Week struct {
	days map[models.Weekday]models.DailyEnergyResult
}

// NewWeek creates an empty week
func NewWeek() *Week {
	return &Week{days: make(map[models.Weekday]models.DailyEnergyResult, len(models.Weekdays))}
}

// SetDay inserts or replaces the result for a day
func (w *Week) SetDay(day models.Weekday, result models.DailyEnergyResult) error {
	if !day.Valid() {
		return fmt.Errorf("%w: day %q", ErrInvalidInput, string(day))
	}
	if w.days == nil {
		w.days = make(map[models.Weekday]models.DailyEnergyResult, len(models.Weekdays))
	}
	w.days[day] = result
	return nil
}

// Reset clears every entry
func (w *Week) Reset() {
	clear(w.days)
}

// Len returns the number of days recorded
func (w *Week) Len() int {
	return len(w.days)
}

// Get returns the result for a day, if present
func (w *Week) Get(day models.Weekday) (models.DailyEnergyResult, bool) {
	r, ok := w.days[day]
	return r, ok
}

func (w *Week) State() State {
	switch n := len(w.days); {
	case n == 0:
		return Empty
	case n < len(models.Weekdays):
		return Partial
	default:
		return Complete
	}
}

// TotalEnergy sums the totals of all recorded days
func (w *Week) TotalEnergy() decimal.Decimal {
	total := decimal.Zero
	for _, r := range w.days {
		total = total.Add(r.TotalEnergy)
	}
	return total
}

// AverageEnergy returns the daily mean for a complete week.
// An incomplete week yields zero; check State or Len before trusting it.
func (w *Week) AverageEnergy() decimal.Decimal {
	if w.State() != Complete {
		return decimal.Zero
	}
	return w.TotalEnergy().Div(daysPerWeek)
}

// MaxDay returns the day with the highest total. Ties go to the earliest day.
func (w *Week) MaxDay() (models.Weekday, error) {
	return w.extreme(func(candidate, best decimal.Decimal) bool {
		return candidate.GreaterThan(best)
	})
}

// MinDay returns the day with the lowest total. Ties go to the earliest day.
func (w *Week) MinDay() (models.Weekday, error) {
	return w.extreme(func(candidate, best decimal.Decimal) bool {
		return candidate.LessThan(best)
	})
}

func (w *Week) extreme(better func(candidate, best decimal.Decimal) bool) (models.Weekday, error) {
	var (
		bestDay   models.Weekday
		bestTotal decimal.Decimal
		found     bool
	)
	for day, r := range w.Entries() {
		if !found || better(r.TotalEnergy, bestTotal) {
			bestDay, bestTotal, found = day, r.TotalEnergy, true
		}
	}
	if !found {
		return "", ErrEmptyState
	}
	return bestDay, nil
}

// Entries yields recorded days in canonical order, skipping absent ones.
// Each call starts a fresh traversal over the current contents.
func (w *Week) Entries() iter.Seq2[models.Weekday, models.DailyEnergyResult] {
	return func(yield func(models.Weekday, models.DailyEnergyResult) bool) {
		for _, day := range models.Weekdays {
			r, ok := w.days[day]
			if !ok {
				continue
			}
			if !yield(day, r) {
				return
			}
		}
	}
}

// Summary collects the derived values presentation code needs
func (w *Week) Summary() models.WeekSummary {
	s := models.WeekSummary{
		Days:          w.Len(),
		Complete:      w.State() == Complete,
		TotalEnergy:   w.TotalEnergy(),
		AverageEnergy: w.AverageEnergy(),
	}
	if day, err := w.MaxDay(); err == nil {
		s.Highest = &models.DayEnergy{Day: day, TotalEnergy: w.days[day].TotalEnergy}
	}
	if day, err := w.MinDay(); err == nil {
		s.Lowest = &models.DayEnergy{Day: day, TotalEnergy: w.days[day].TotalEnergy}
	}
	return s
}
