package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Weekday is one of the seven canonical day names
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the days in canonical order (Monday first)
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the canonical position of the day, or -1 if the name is not canonical
func (d Weekday) Index() int {
	for i, day := range Weekdays {
		if day == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is exactly one of the canonical names
func (d Weekday) Valid() bool {
	return d.Index() >= 0
}

func (d Weekday) String() string {
	return string(d)
}

// ParseWeekday matches a user-supplied name case-insensitively.
// Abbreviations like "mon" or "tue" are accepted too.
func ParseWeekday(name string) (Weekday, error) {
	name = strings.TrimSpace(name)
	for _, day := range Weekdays {
		if strings.EqualFold(name, string(day)) {
			return day, nil
		}
		if len(name) >= 3 && strings.HasPrefix(strings.ToLower(string(day)), strings.ToLower(name)) {
			return day, nil
		}
	}
	return "", fmt.Errorf("unknown day: %q", name)
}

// WeekdayOf returns the canonical day for a timestamp
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday starts at Sunday
	return Weekdays[(int(t.Weekday())+6)%7]
}

// DailyUsageInput is what a user reports for a single day
type DailyUsageInput struct {
	RoomCategory       int  `json:"bhk" yaml:"bhk"`
	ACCount            int  `json:"ac_count" yaml:"ac_count"`
	FridgeUsed         bool `json:"fridge" yaml:"fridge"`
	WashingMachineUsed bool `json:"washing_machine" yaml:"washing_machine"`
}

// DailyEnergyResult is the computed energy for one day, in kWh
type DailyEnergyResult struct {
	Input                DailyUsageInput `json:"input"`
	BaseEnergy           decimal.Decimal `json:"base_energy"`
	ACEnergy             decimal.Decimal `json:"ac_energy"`
	FridgeEnergy         decimal.Decimal `json:"fridge_energy"`
	WashingMachineEnergy decimal.Decimal `json:"washing_machine_energy"`
	TotalEnergy          decimal.Decimal `json:"total_energy"`
}

// DayEnergy pairs a day with its total, used for max/min reporting
type DayEnergy struct {
	Day         Weekday         `json:"day"`
	TotalEnergy decimal.Decimal `json:"total_energy"`
}

// WeekSummary is the derived view of a week handed to presentation surfaces
type WeekSummary struct {
	Days          int             `json:"days"`
	Complete      bool            `json:"complete"`
	TotalEnergy   decimal.Decimal `json:"total_energy"`
	AverageEnergy decimal.Decimal `json:"average_energy"`
	Highest       *DayEnergy      `json:"highest,omitempty"` // nil when the week is empty
	Lowest        *DayEnergy      `json:"lowest,omitempty"`
}
