package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the current session",
	Long: `A session holds one week of entries. Starting a new session discards the previous
session and everything recorded in it.`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Discard the current session and start a new one",
	Args:  cobra.NoArgs,
	RunE:  runSessionStart,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE:  runSessionShow,
}

func init() {
	sessionCmd.AddCommand(sessionStartCmd, sessionShowCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionStart(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	session, err := db.StartSession(cmd.Context())
	if err != nil {
		return err
	}
	appLog.Infow("session started", "session_id", session.ID)
	fmt.Printf("Started session %s\n", session.ID)
	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("Session:  %s\n", session.ID)
	fmt.Printf("Started:  %s\n", session.StartedAt.Local().Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Week:     %s (%d/7 days)\n", week.State(), week.Len())
	return nil
}
