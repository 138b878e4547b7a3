// Package redis caches ledger and pick-registry rows so repeated validation
// requests do not hammer the database for state that changes rarely.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/capledger"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/pickregistry"
)

const (
	keyContracts = "franchise:contracts"
	keyPicks     = "franchise:picks"
)

// RowStore lists the raw rows the cache shields. The postgres repos satisfy
// it.
type RowStore interface {
	ListContracts(ctx context.Context) ([]domain.Contract, error)
	ListPicks(ctx context.Context) ([]domain.DraftPick, error)
}

// MetricsRecorder is notified of every cache outcome, keyed by payload kind
// ("contracts" or "picks"). The HTTP metrics registry satisfies it.
type MetricsRecorder interface {
	RecordCacheHit(kind string)
	RecordCacheMiss(kind string)
}

// Stats counts cache outcomes.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
}

// CachedStore is a read-through cache implementing the snapshot store
// surface: reads hit redis first and fall back to the row store, writing the
// rows back with a TTL. Cache failures degrade to direct loads, never to
// validation errors.
type CachedStore struct {
	client *redis.Client
	inner  RowStore
	rules  *league.Rules
	ttl    time.Duration
	rec    MetricsRecorder

	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

// Config holds connection and TTL settings.
type Config struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// NewCachedStore connects to redis and wraps the row store.
func NewCachedStore(ctx context.Context, cfg Config, inner RowStore, rules *league.Rules) (*CachedStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedStore{client: client, inner: inner, rules: rules, ttl: ttl}, nil
}

// UseMetrics attaches a recorder that is notified on every subsequent cache
// read. Call before serving traffic; the store works without one.
func (c *CachedStore) UseMetrics(rec MetricsRecorder) {
	c.rec = rec
}

// LoadLedger builds a cap ledger snapshot from cached contract rows.
func (c *CachedStore) LoadLedger(ctx context.Context) (*capledger.Ledger, error) {
	var contracts []domain.Contract
	if err := c.fetch(ctx, keyContracts, &contracts); err != nil {
		var loadErr error
		contracts, loadErr = c.inner.ListContracts(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		c.store(ctx, keyContracts, contracts)
	}
	ledger := capledger.NewLedger(c.rules)
	for _, contract := range contracts {
		ledger.UpsertContract(contract)
	}
	return ledger, nil
}

// LoadRegistry builds a pick registry snapshot from cached pick rows.
func (c *CachedStore) LoadRegistry(ctx context.Context) (*pickregistry.Registry, error) {
	var picks []domain.DraftPick
	if err := c.fetch(ctx, keyPicks, &picks); err != nil {
		var loadErr error
		picks, loadErr = c.inner.ListPicks(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		c.store(ctx, keyPicks, picks)
	}
	registry := pickregistry.NewRegistry()
	for _, pick := range picks {
		registry.AddPick(pick)
	}
	return registry, nil
}

// Invalidate drops both cached row sets. The trade execution path calls this
// after committing transfers.
func (c *CachedStore) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, keyContracts, keyPicks).Err(); err != nil {
		return fmt.Errorf("failed to invalidate snapshot cache: %w", err)
	}
	return nil
}

// Stats reports hit/miss/error counts since startup.
func (c *CachedStore) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Errors: c.errors.Load(),
	}
}

// Close releases the redis client.
func (c *CachedStore) Close() error {
	return c.client.Close()
}

func (c *CachedStore) fetch(ctx context.Context, key string, out interface{}) error {
	kind := kindForKey(key)
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.misses.Add(1)
		if c.rec != nil {
			c.rec.RecordCacheMiss(kind)
		}
		return err
	}
	if err != nil {
		c.errors.Add(1)
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.errors.Add(1)
		return err
	}
	c.hits.Add(1)
	if c.rec != nil {
		c.rec.RecordCacheHit(kind)
	}
	return nil
}

func kindForKey(key string) string {
	if key == keyPicks {
		return "picks"
	}
	return "contracts"
}

func (c *CachedStore) store(ctx context.Context, key string, rows interface{}) {
	data, err := json.Marshal(rows)
	if err != nil {
		c.errors.Add(1)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.errors.Add(1)
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
