// Package report renders a week of energy results as plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/jgoulah/energycalc/internal/energy"
	"github.com/jgoulah/energycalc/pkg/models"
)

const (
	rule     = "------------------------------------------------------------------------"
	barWidth = 40
	// rows in the trend plot
	trendHeight = 8
)

// KWh formats an energy value at one decimal place
func KWh(d decimal.Decimal) string {
	return d.StringFixed(1)
}

// Breakdown is the one-line explanation of a day's total
func Breakdown(r models.DailyEnergyResult) string {
	return fmt.Sprintf("Base (%d BHK): %s + AC: %s + Fridge: %s + WM: %s",
		r.Input.RoomCategory, KWh(r.BaseEnergy), r.ACEnergy.String(),
		r.FridgeEnergy.String(), r.WashingMachineEnergy.String())
}

// Day writes the total and breakdown for one day
func Day(w io.Writer, day models.Weekday, r models.DailyEnergyResult) {
	fmt.Fprintf(w, "Total Energy for %s: %s kWh\n", day, KWh(r.TotalEnergy))
	fmt.Fprintf(w, "Breakdown: %s\n", Breakdown(r))
}

// List writes days in the compact ['Monday => 13.6', ...] form
func List(w io.Writer, week *energy.Week) {
	items := []string{}
	for day, r := range week.Entries() {
		items = append(items, fmt.Sprintf("'%s => %s'", day, KWh(r.TotalEnergy)))
	}
	fmt.Fprintf(w, "[%s]\n", strings.Join(items, ", "))
}

// Table writes the detailed per-day breakdown
func Table(w io.Writer, week *energy.Week) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-10s  %3s  %8s  %6s  %15s  %11s  %12s\n",
		"Day", "BHK", "AC Count", "Fridge", "Washing Machine", "Base (kWh)", "Total (kWh)")
	fmt.Fprintln(w, rule)
	for day, r := range week.Entries() {
		fmt.Fprintf(w, "%-10s  %3d  %8d  %6s  %15s  %11s  %12s\n",
			day, r.Input.RoomCategory, r.Input.ACCount,
			yesNo(r.Input.FridgeUsed), yesNo(r.Input.WashingMachineUsed),
			KWh(r.BaseEnergy), KWh(r.TotalEnergy))
	}
	fmt.Fprintln(w, rule)
}

// Summary writes the weekly metrics. rate is the cost per kWh; 0 omits the cost line.
func Summary(w io.Writer, s models.WeekSummary, rate float64) {
	fmt.Fprintf(w, "Total Weekly Energy:  %s kWh\n", KWh(s.TotalEnergy))
	if s.Complete {
		fmt.Fprintf(w, "Average Daily Energy: %s kWh\n", KWh(s.AverageEnergy))
	} else {
		fmt.Fprintf(w, "Average Daily Energy: %s kWh (incomplete week, %d/7 days)\n", KWh(s.AverageEnergy), s.Days)
	}
	if s.Highest != nil {
		fmt.Fprintf(w, "Highest Usage:        %s (%s kWh)\n", s.Highest.Day, KWh(s.Highest.TotalEnergy))
	}
	if s.Lowest != nil {
		fmt.Fprintf(w, "Lowest Usage:         %s (%s kWh)\n", s.Lowest.Day, KWh(s.Lowest.TotalEnergy))
	}
	if rate > 0 {
		cost := s.TotalEnergy.Mul(decimal.NewFromFloat(rate)).InexactFloat64()
		fmt.Fprintf(w, "Estimated Cost:       %s\n", humanize.CommafWithDigits(cost, 2))
	}
}

// BarChart draws one horizontal bar per recorded day, scaled to the largest total
func BarChart(w io.Writer, week *energy.Week) {
	maxDay, err := week.MaxDay()
	if err != nil {
		return
	}
	peak, _ := week.Get(maxDay)

	fmt.Fprintln(w, "Daily Energy Consumption")
	for day, r := range week.Entries() {
		n := 0
		if peak.TotalEnergy.IsPositive() {
			n = int(r.TotalEnergy.Mul(decimal.NewFromInt(barWidth)).Div(peak.TotalEnergy).Round(0).IntPart())
		}
		fmt.Fprintf(w, "%-10s |%s %s\n", day, strings.Repeat("#", n), KWh(r.TotalEnergy))
	}
}

// TrendLine plots totals across the recorded days, one column per day
func TrendLine(w io.Writer, week *energy.Week) {
	maxDay, err := week.MaxDay()
	if err != nil {
		return
	}
	minDay, _ := week.MinDay()
	hi, _ := week.Get(maxDay)
	lo, _ := week.Get(minDay)
	span := hi.TotalEnergy.Sub(lo.TotalEnergy)

	var (
		days []models.Weekday
		rows []int
	)
	for day, r := range week.Entries() {
		row := 0
		if span.IsPositive() {
			row = int(r.TotalEnergy.Sub(lo.TotalEnergy).
				Mul(decimal.NewFromInt(trendHeight - 1)).
				Div(span).Round(0).IntPart())
		}
		days = append(days, day)
		rows = append(rows, row)
	}

	fmt.Fprintln(w, "Energy Consumption Trend")
	for level := trendHeight - 1; level >= 0; level-- {
		label := "      "
		switch level {
		case trendHeight - 1:
			label = fmt.Sprintf("%6s", KWh(hi.TotalEnergy))
		case 0:
			label = fmt.Sprintf("%6s", KWh(lo.TotalEnergy))
		}
		var line strings.Builder
		for _, row := range rows {
			if row == level {
				line.WriteString("  *  ")
			} else {
				line.WriteString("     ")
			}
		}
		fmt.Fprintf(w, "%s |%s\n", label, strings.TrimRight(line.String(), " "))
	}
	var axis strings.Builder
	for _, day := range days {
		axis.WriteString(fmt.Sprintf(" %-4s", string(day)[:3]))
	}
	fmt.Fprintf(w, "       +%s\n", axis.String())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
