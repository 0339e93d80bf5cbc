package main

import (
	"fmt"

	"github.com/jgoulah/energycalc/internal/config"
	"github.com/jgoulah/energycalc/internal/energy"
	"github.com/jgoulah/energycalc/pkg/models"
)

// normalizeInput applies the input-side rules before anything reaches the calculator:
// the AC count is clamped into range and appliances the household doesn't own are
// forced off. Each adjustment is returned as a note for the user.
func normalizeInput(in models.DailyUsageInput, h config.HouseholdConfig) (models.DailyUsageInput, []string) {
	var notes []string

	switch {
	case in.ACCount < energy.MinACCount:
		notes = append(notes, fmt.Sprintf("AC count %d raised to %d", in.ACCount, energy.MinACCount))
		in.ACCount = energy.MinACCount
	case in.ACCount > energy.MaxACCount:
		notes = append(notes, fmt.Sprintf("AC count %d capped at %d", in.ACCount, energy.MaxACCount))
		in.ACCount = energy.MaxACCount
	}

	if in.FridgeUsed && !h.HasFridge {
		notes = append(notes, "fridge ignored (household has no fridge, set household.has_fridge)")
		in.FridgeUsed = false
	}
	if in.WashingMachineUsed && !h.HasWashingMachine {
		notes = append(notes, "washing machine ignored (household has no washing machine, set household.has_washing_machine)")
		in.WashingMachineUsed = false
	}

	return in, notes
}
