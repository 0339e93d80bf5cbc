package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/energycalc/internal/report"
)

var showNoCharts bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current week",
	Long:  `Displays the per-day breakdown table, the compact result list and charts for the current week.`,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showNoCharts, "no-charts", false, "Skip the bar chart and trend line")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, session, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	week, err := db.LoadWeek(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("loading week: %w", err)
	}

	welcome()
	if week.Len() == 0 {
		fmt.Println("No days recorded yet. Use 'energycalc day <weekday>' to add one.")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Println("\nDetailed Daily Breakdown:")
	report.Table(out, week)

	fmt.Println("\nEnergy Consumption List:")
	report.List(out, week)

	if !showNoCharts {
		fmt.Println()
		report.BarChart(out, week)
		fmt.Println()
		report.TrendLine(out, week)
	}
	return nil
}
