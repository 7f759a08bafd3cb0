package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage [user]",
	Short: "Show monthly usage for a user",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initRunner(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		userID := "default"
		if len(args) == 1 {
			userID = args[0]
		}

		stats, err := env.Runner.Ledger().GetUsageStats(ctx, userID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Usage for %s (%s)\n", userID, stats.CurrentMonth)
		fmt.Fprintf(out, "  Audio minutes: %.1f used, %.1f remaining (limit %.0f)\n",
			stats.AudioMinutesUsed, stats.AudioMinutesRemaining, stats.AudioMinutesLimit)
		fmt.Fprintf(out, "  Analyses:      %d used, %d remaining (limit %d)\n",
			stats.AnalysesUsed, stats.AnalysesRemaining, stats.AnalysesLimit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
}
