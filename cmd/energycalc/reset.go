package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every day of the current week",
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, session, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.ClearDays(ctx, session.ID)
	if err != nil {
		return err
	}
	appLog.Infow("week reset", "session_id", session.ID, "days_cleared", n)
	fmt.Printf("Cleared %d days\n", n)
	return nil
}
