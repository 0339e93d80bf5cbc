package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/energycalc/internal/publisher"
	"github.com/jgoulah/energycalc/internal/report"
)

var publishTimeout time.Duration

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the weekly summary to MQTT and/or Home Assistant",
	Long:  `Sends the current week's summary to every destination enabled in config.`,
	RunE:  runPublish,
}

func init() {
	publishCmd.Flags().DurationVar(&publishTimeout, "timeout", 30*time.Second, "Give up after this long")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	ctx, cancel := context.WithTimeout(cmd.Context(), publishTimeout)
	defer cancel()

	db, session, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	week, err := db.LoadWeek(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("loading week: %w", err)
	}
	if week.Len() == 0 {
		return fmt.Errorf("no days recorded, nothing to publish")
	}

	pub, err := publisher.New(appCfg.MQTT, appCfg.HomeAssistant, appLog)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	summary := week.Summary()
	if err := pub.Publish(ctx, summary); err != nil {
		return fmt.Errorf("publishing summary: %w", err)
	}

	fmt.Printf("✓ Published %s kWh for %d/7 days\n", report.KWh(summary.TotalEnergy), summary.Days)
	return nil
}
