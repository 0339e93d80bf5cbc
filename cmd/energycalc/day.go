package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/energycalc/internal/energy"
	"github.com/jgoulah/energycalc/internal/report"
	"github.com/jgoulah/energycalc/pkg/models"
)

var (
	dayBHK            int
	dayACCount        int
	dayFridge         bool
	dayWashingMachine bool
)

var dayCmd = &cobra.Command{
	Use:   "day [weekday]",
	Short: "Record usage for one day",
	Long: `Computes the energy used on one day and stores it in the current week.
Entering a day again replaces the earlier entry. The day defaults to today.

Energy = base (1 BHK: 2.4, 2 BHK: 3.6, 3 BHK: 4.8 kWh) + 3 kWh per AC
       + 4 kWh if the fridge is used + 4 kWh if the washing machine is used`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDay,
}

func init() {
	dayCmd.Flags().IntVar(&dayBHK, "bhk", 1, "BHK in use that day (1, 2 or 3)")
	dayCmd.Flags().IntVar(&dayACCount, "ac", 0, "Number of ACs used (0-10)")
	dayCmd.Flags().BoolVar(&dayFridge, "fridge", false, "Fridge was used")
	dayCmd.Flags().BoolVar(&dayWashingMachine, "washing-machine", false, "Washing machine was used")
	rootCmd.AddCommand(dayCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
	day := models.WeekdayOf(time.Now())
	if len(args) == 1 {
		var err error
		if day, err = models.ParseWeekday(args[0]); err != nil {
			return err
		}
	}

	in, notes := normalizeInput(models.DailyUsageInput{
		RoomCategory:       dayBHK,
		ACCount:            dayACCount,
		FridgeUsed:         dayFridge,
		WashingMachineUsed: dayWashingMachine,
	}, appCfg.Household)
	for _, note := range notes {
		fmt.Printf("Note: %s\n", note)
	}

	// Reject bad input before touching the store
	result, err := energy.Compute(in)
	if err != nil {
		return fmt.Errorf("%s: %w", day, err)
	}

	ctx := cmd.Context()
	db, session, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveDay(ctx, session.ID, day, in); err != nil {
		return fmt.Errorf("saving %s: %w", day, err)
	}
	appLog.Infow("stored day", "day", day, "total_kwh", report.KWh(result.TotalEnergy))

	report.Day(cmd.OutOrStdout(), day, result)

	week, err := db.LoadWeek(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("loading week: %w", err)
	}
	fmt.Printf("%d/7 days recorded, week total %s kWh\n", week.Len(), report.KWh(week.TotalEnergy()))
	return nil
}
