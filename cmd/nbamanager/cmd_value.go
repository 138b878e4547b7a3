package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/trade"
)

func newValueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "value <scenario.yaml>",
		Short: "Estimate the value balance of a trade proposal",
		Long: `Scores every asset in the proposal with the franchise value model and
prints the net balance per team. Positive means the team gains value.`,
		Args: cobra.ExactArgs(1),
		RunE: runValue,
	}
}

func runValue(cmd *cobra.Command, args []string) error {
	applyQuiet(cmd)

	rules, err := loadRules(cmd)
	if err != nil {
		return err
	}

	doc, proposal, err := loadScenario(args[0], clk.Now())
	if err != nil {
		return err
	}

	ledger, _, cleanup, err := resolveState(cmd, doc, rules)
	if err != nil {
		return err
	}
	defer cleanup()

	estimator := trade.NewEstimator(ledger)
	currentYear := league.SeasonEndYear(proposal.ProposedDate)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Assets:\n")
	for _, a := range proposal.Assets {
		value := estimator.AssetValue(a, currentYear)
		switch {
		case a.PlayerID != "":
			fmt.Fprintf(out, "  %-24s %s -> %s  %7.2f\n", a.PlayerID, a.FromTeam, a.ToTeam, value)
		case a.Year != 0:
			fmt.Fprintf(out, "  %d pick (%s)          %s -> %s  %7.2f\n", a.Year, a.OriginalTeam, a.FromTeam, a.ToTeam, value)
		default:
			fmt.Fprintf(out, "  %-24s %s -> %s  %7.2f\n", a.Amount.String()+" cash", a.FromTeam, a.ToTeam, value)
		}
	}

	fmt.Fprintf(out, "Balance:\n")
	for _, team := range proposal.Teams() {
		fmt.Fprintf(out, "  %-4s %+8.2f\n", team, estimator.TradeBalance(proposal, team))
	}
	return nil
}
