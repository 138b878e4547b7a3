// Package snapshot assembles the immutable ledger/registry snapshots a
// validation pass runs against, with circuit breaking and caching around the
// backing store.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/capledger"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/pickregistry"
)

// Store is the persistence surface the provider draws from. The postgres
// repos satisfy it.
type Store interface {
	LoadLedger(ctx context.Context) (*capledger.Ledger, error)
	LoadRegistry(ctx context.Context) (*pickregistry.Registry, error)
}

// Snapshot bundles one consistent view of the two collaborators.
type Snapshot struct {
	Ledger   *capledger.Ledger
	Registry *pickregistry.Registry
	LoadedAt time.Time
}

// Provider loads snapshots behind a circuit breaker so a struggling database
// trips fast instead of stalling every validation request.
type Provider struct {
	store   Store
	breaker *gobreaker.CircuitBreaker
}

// NewProvider wraps a store with breaker settings tuned for point reads.
func NewProvider(store Store) *Provider {
	settings := gobreaker.Settings{
		Name:        "snapshot-store",
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("snapshot breaker state change")
		},
	}
	return &Provider{store: store, breaker: gobreaker.NewCircuitBreaker(settings)}
}

// Load fetches a fresh snapshot through the breaker.
func (p *Provider) Load(ctx context.Context) (*Snapshot, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		ledger, err := p.store.LoadLedger(ctx)
		if err != nil {
			return nil, fmt.Errorf("ledger snapshot: %w", err)
		}
		registry, err := p.store.LoadRegistry(ctx)
		if err != nil {
			return nil, fmt.Errorf("registry snapshot: %w", err)
		}
		return &Snapshot{Ledger: ledger, Registry: registry, LoadedAt: time.Now()}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Snapshot), nil
}
