package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
)

func newDeadlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deadline",
		Short: "Show the trade deadline for the current season",
		RunE:  runDeadline,
	}
	cmd.Flags().Int("season", 0, "Season end year (default: derived from today)")
	return cmd
}

func runDeadline(cmd *cobra.Command, args []string) error {
	applyQuiet(cmd)

	now := clk.Now()
	season, _ := cmd.Flags().GetInt("season")
	if season == 0 {
		season = league.SeasonEndYear(now)
	}

	deadline := league.TradeDeadline(season)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Season %d-%02d trade deadline: %s\n",
		season-1, season%100, deadline.Format("Mon Jan 2 2006 3:04 PM MST"))

	if season == league.SeasonEndYear(now) {
		if now.After(deadline) {
			fmt.Fprintln(out, "The deadline has passed; trades reopen after the season.")
		} else {
			fmt.Fprintf(out, "Time remaining: %s\n", deadline.Sub(now).Round(time.Hour))
		}
	}
	return nil
}
