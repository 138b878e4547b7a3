package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	rediscache "github.com/DarianStillwater/NBA-Manager-sub002/internal/cache/redis"
	httpapi "github.com/DarianStillwater/NBA-Manager-sub002/internal/interfaces/http"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/persistence/postgres"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/snapshot"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the trade validation HTTP API",
		Long: `Starts the HTTP server exposing trade validation, valuation, league
deadline and team cap endpoints, plus a websocket feed of validation
results. Requires --db.`,
		RunE: runServe,
	}
	cmd.Flags().String("host", "127.0.0.1", "Listen address")
	cmd.Flags().Int("port", 8080, "Listen port")
	cmd.Flags().Float64("rate-limit", 50, "Requests per second before shedding load")
	cmd.Flags().Bool("migrate", false, "Apply database schema before serving")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	applyQuiet(cmd)

	rules, err := loadRules(cmd)
	if err != nil {
		return err
	}

	dsn, _ := cmd.Flags().GetString("db")
	if dsn == "" {
		return fmt.Errorf("serve requires --db")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, postgres.DefaultConfig(dsn))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
		log.Info().Msg("schema applied")
	}

	metrics := httpapi.NewMetricsRegistry(nil)

	pgStore := postgres.NewStore(db, rules, 10*time.Second)
	var store snapshot.Store = pgStore
	var cached *rediscache.CachedStore
	if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
		cached, err = rediscache.NewCachedStore(ctx, rediscache.Config{Addr: addr}, pgStore, rules)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, reading database directly")
			cached = nil
		} else {
			defer cached.Close()
			cached.UseMetrics(metrics)
			store = cached
			log.Info().Str("addr", addr).Msg("snapshot cache enabled")
		}
	}

	provider := snapshot.NewProvider(store)
	hub := httpapi.NewHub()
	handlers := httpapi.NewHandlers(provider, rules, metrics, hub)

	config := httpapi.DefaultServerConfig()
	config.Host, _ = cmd.Flags().GetString("host")
	config.Port, _ = cmd.Flags().GetInt("port")
	if rps, _ := cmd.Flags().GetFloat64("rate-limit"); rps > 0 {
		config.RateLimit = rate.Limit(rps)
		config.RateBurst = int(rps * 2)
	}

	server, err := httpapi.NewServer(config, handlers)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	if cached != nil {
		stats := cached.Stats()
		log.Info().
			Int64("hits", stats.Hits).
			Int64("misses", stats.Misses).
			Int64("errors", stats.Errors).
			Msg("snapshot cache totals")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}
