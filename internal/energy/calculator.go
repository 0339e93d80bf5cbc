package energy

import (
	"errors"
	"fmt"

	"github.com/jgoulah/energycalc/pkg/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInput is returned for out-of-domain usage values or day names
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyState is returned by max/min lookups on a week with no entries
	ErrEmptyState = errors.New("no days recorded")
)

const (
	MinACCount = 0
	MaxACCount = 10
)

// Per-unit energy in kWh
var (
	acEnergy             = decimal.NewFromInt(3)
	fridgeEnergy         = decimal.NewFromInt(4)
	washingMachineEnergy = decimal.NewFromInt(4)
)

// baseEnergy maps BHK count to lighting and fan load: (bhk+1) lights at 0.4 plus (bhk+1) fans at 0.8
var baseEnergy = map[int]decimal.Decimal{
	1: decimal.RequireFromString("2.4"),
	2: decimal.RequireFromString("3.6"),
	3: decimal.RequireFromString("4.8"),
}

// BaseEnergy returns the fixed base load for a room category
func BaseEnergy(roomCategory int) (decimal.Decimal, error) {
	base, ok := baseEnergy[roomCategory]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: room category %d (must be 1, 2 or 3)", ErrInvalidInput, roomCategory)
	}
	return base, nil
}

// Compute returns the day's energy total and breakdown
func Compute(in models.DailyUsageInput) (models.DailyEnergyResult, error) {
	base, err := BaseEnergy(in.RoomCategory)
	if err != nil {
		return models.DailyEnergyResult{}, err
	}
	if in.ACCount < MinACCount || in.ACCount > MaxACCount {
		return models.DailyEnergyResult{}, fmt.Errorf("%w: AC count %d (must be %d-%d)", ErrInvalidInput, in.ACCount, MinACCount, MaxACCount)
	}

	result := models.DailyEnergyResult{
		Input:                in,
		BaseEnergy:           base,
		ACEnergy:             acEnergy.Mul(decimal.NewFromInt(int64(in.ACCount))),
		FridgeEnergy:         decimal.Zero,
		WashingMachineEnergy: decimal.Zero,
	}
	if in.FridgeUsed {
		result.FridgeEnergy = fridgeEnergy
	}
	if in.WashingMachineUsed {
		result.WashingMachineEnergy = washingMachineEnergy
	}
	result.TotalEnergy = result.BaseEnergy.
		Add(result.ACEnergy).
		Add(result.FridgeEnergy).
		Add(result.WashingMachineEnergy)

	return result, nil
}
