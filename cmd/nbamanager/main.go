package main

import (
	"os"
	"strings"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
)

const (
	appName = "nbamanager"
	version = "v1.2.0"
)

// clk is swapped for a mock in tests; everything that needs "now" goes
// through it.
var clk = clock.New()

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Front-office trade legality checker",
		Version: version,
		Long: `nbamanager validates trade proposals against league salary-matching,
apron, roster, draft-pick and timing rules, and estimates the value
balance of a proposed package.

Proposals are YAML documents; franchise state comes from an inline
scenario section, or from the database when --db is set.`,
		SilenceUsage: true,
	}

	// Accept snake_case spellings of every flag.
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().String("rules", "", "Path to league rules YAML (defaults baked in)")
	rootCmd.PersistentFlags().String("db", "", "Postgres DSN for franchise state")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for snapshot caching (requires --db)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress log output")

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newValueCmd())
	rootCmd.AddCommand(newDeadlineCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// loadRules resolves the league rules for a command invocation.
func loadRules(cmd *cobra.Command) (*league.Rules, error) {
	path, _ := cmd.Flags().GetString("rules")
	if path == "" {
		return league.DefaultRules(), nil
	}
	return league.LoadRules(path)
}

func applyQuiet(cmd *cobra.Command) {
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
}
