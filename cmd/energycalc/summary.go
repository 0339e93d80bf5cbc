package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/energycalc/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show weekly totals",
	Long: `Shows the weekly total, the average daily energy and the highest and lowest days.
The average is only computed once all 7 days are recorded; until then it reads 0.`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
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
	report.Summary(cmd.OutOrStdout(), week.Summary(), appCfg.GetRate())
	return nil
}
