package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jgoulah/energycalc/internal/config"
	"github.com/jgoulah/energycalc/internal/energy"
	"github.com/jgoulah/energycalc/internal/report"
	"github.com/jgoulah/energycalc/pkg/models"
)

var importReplace bool

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Record several days from a YAML file",
	Long: `Reads a YAML mapping of weekday to usage and stores every day at once, e.g.

  Monday:  {bhk: 2, ac_count: 2, fridge: true}
  Tuesday: {bhk: 1, ac_count: 0, washing_machine: true}

Every entry is checked first; if any is invalid nothing is stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Clear the current week before importing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	days, notes, err := parseWeekFile(data, appCfg.Household)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	for _, note := range notes {
		fmt.Printf("Note: %s\n", note)
	}

	ctx := cmd.Context()
	db, session, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if importReplace {
		if _, err := db.ClearDays(ctx, session.ID); err != nil {
			return err
		}
	}
	if err := db.SaveDays(ctx, session.ID, days); err != nil {
		return err
	}
	appLog.Infow("imported days", "file", args[0], "count", len(days))

	week, err := db.LoadWeek(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("loading week: %w", err)
	}
	fmt.Printf("Imported %d days\n", len(days))
	report.List(cmd.OutOrStdout(), week)
	return nil
}

// parseWeekFile decodes and validates a week file without storing anything
func parseWeekFile(data []byte, h config.HouseholdConfig) (map[models.Weekday]models.DailyUsageInput, []string, error) {
	var raw map[string]models.DailyUsageInput
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("no days found")
	}

	days := make(map[models.Weekday]models.DailyUsageInput, len(raw))
	var notes []string
	for name, in := range raw {
		day, err := models.ParseWeekday(name)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", energy.ErrInvalidInput, err)
		}
		if _, dup := days[day]; dup {
			return nil, nil, fmt.Errorf("%w: %s listed more than once", energy.ErrInvalidInput, day)
		}

		in, dayNotes := normalizeInput(in, h)
		for _, n := range dayNotes {
			notes = append(notes, fmt.Sprintf("%s: %s", day, n))
		}
		if _, err := energy.Compute(in); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", day, err)
		}
		days[day] = in
	}
	return days, notes, nil
}
