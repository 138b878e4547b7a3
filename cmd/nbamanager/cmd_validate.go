package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	rediscache "github.com/DarianStillwater/NBA-Manager-sub002/internal/cache/redis"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/persistence/postgres"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/snapshot"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/trade"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Check a trade proposal against league rules",
		Long: `Validates the proposal in the given scenario file and prints every rule
violation found. The exit code is non-zero when the trade is illegal.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
	cmd.Flags().Bool("strict-consent", false, "Also fail when a no-trade clause requires consent")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	applyQuiet(cmd)

	rules, err := loadRules(cmd)
	if err != nil {
		return err
	}

	doc, proposal, err := loadScenario(args[0], clk.Now())
	if err != nil {
		return err
	}

	ledger, registry, cleanup, err := resolveState(cmd, doc, rules)
	if err != nil {
		return err
	}
	defer cleanup()

	validator := trade.New(ledger, registry, rules)
	result := validator.Validate(proposal)
	printResult(cmd, proposal, result)

	if !result.Valid {
		return fmt.Errorf("trade is not legal (%d issues)", len(result.Issues))
	}
	if strict, _ := cmd.Flags().GetBool("strict-consent"); strict && result.RequiresConsent {
		return fmt.Errorf("consent outstanding for %d player(s)", len(result.ConsentPlayers))
	}
	return nil
}

func printResult(cmd *cobra.Command, p *domain.TradeProposal, r *domain.ValidationResult) {
	out := cmd.OutOrStdout()

	verdict := "LEGAL"
	if !r.Valid {
		verdict = "ILLEGAL"
	}
	fmt.Fprintf(out, "Trade %s between %v: %s\n", p.ID, p.Teams(), verdict)

	for _, issue := range r.Issues {
		fmt.Fprintf(out, "  - %s\n", issue)
	}
	if r.RequiresConsent {
		fmt.Fprintf(out, "  consent required: %v\n", r.ConsentPlayers)
	}
}

// resolveState picks the franchise state source: database snapshot when --db
// is set, inline scenario sections otherwise. The returned cleanup closes any
// opened connections.
func resolveState(cmd *cobra.Command, doc *scenarioDoc, rules *league.Rules) (trade.CapLedger, trade.PickRegistry, func(), error) {
	dsn, _ := cmd.Flags().GetString("db")
	if dsn == "" {
		ledger, registry := doc.buildState(rules)
		return ledger, registry, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, postgres.DefaultConfig(dsn))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}
	cleanup := func() { db.Close() }

	var store snapshot.Store = postgres.NewStore(db, rules, 10*time.Second)
	if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
		cached, err := rediscache.NewCachedStore(ctx, rediscache.Config{Addr: addr}, store.(*postgres.Store), rules)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, reading database directly")
		} else {
			store = cached
			prev := cleanup
			cleanup = func() { cached.Close(); prev() }
		}
	}

	snap, err := snapshot.NewProvider(store).Load(ctx)
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("load franchise state: %w", err)
	}
	return snap.Ledger, snap.Registry, cleanup, nil
}
