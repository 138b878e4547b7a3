package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/capledger"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/pickregistry"
)

// Store bundles both repos behind the snapshot and cache interfaces.
type Store struct {
	Contracts *ContractsRepo
	Picks     *PicksRepo
}

// NewStore creates both repositories over one connection pool.
func NewStore(db *sqlx.DB, rules *league.Rules, timeout time.Duration) *Store {
	return &Store{
		Contracts: NewContractsRepo(db, rules, timeout),
		Picks:     NewPicksRepo(db, timeout),
	}
}

func (s *Store) LoadLedger(ctx context.Context) (*capledger.Ledger, error) {
	return s.Contracts.LoadLedger(ctx)
}

func (s *Store) LoadRegistry(ctx context.Context) (*pickregistry.Registry, error) {
	return s.Picks.LoadRegistry(ctx)
}

func (s *Store) ListContracts(ctx context.Context) ([]domain.Contract, error) {
	return s.Contracts.ListContracts(ctx)
}

func (s *Store) ListPicks(ctx context.Context) ([]domain.DraftPick, error) {
	return s.Picks.ListPicks(ctx)
}
