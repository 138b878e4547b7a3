// Package postgres persists the cap ledger and pick registry state and loads
// immutable snapshots of them for validation passes.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/capledger"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
)

// ContractsRepo stores player contracts and materializes cap ledger snapshots.
type ContractsRepo struct {
	db      *sqlx.DB
	rules   *league.Rules
	timeout time.Duration
}

// NewContractsRepo creates a contracts repository classified against the
// given rule table.
func NewContractsRepo(db *sqlx.DB, rules *league.Rules, timeout time.Duration) *ContractsRepo {
	return &ContractsRepo{db: db, rules: rules, timeout: timeout}
}

// Upsert writes a contract, replacing any previous row for the player.
func (r *ContractsRepo) Upsert(ctx context.Context, c domain.Contract) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO contracts (player_id, team, salary, years_remaining, no_trade_clause, signed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (player_id) DO UPDATE SET
			team = EXCLUDED.team,
			salary = EXCLUDED.salary,
			years_remaining = EXCLUDED.years_remaining,
			no_trade_clause = EXCLUDED.no_trade_clause,
			signed_at = EXCLUDED.signed_at`

	_, err := r.db.ExecContext(ctx, query,
		c.PlayerID, c.Team, int64(c.Salary), c.YearsRemaining, c.NoTradeClause, c.SignedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("failed to upsert contract %s (pq %s): %w", c.PlayerID, pqErr.Code, err)
		}
		return fmt.Errorf("failed to upsert contract %s: %w", c.PlayerID, err)
	}
	return nil
}

// Get fetches one contract. A missing row returns (zero, false, nil) so
// callers can fail open the way the validation engine expects.
func (r *ContractsRepo) Get(ctx context.Context, playerID string) (domain.Contract, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var row contractRow
	err := r.db.GetContext(ctx, &row,
		`SELECT player_id, team, salary, years_remaining, no_trade_clause, signed_at
		 FROM contracts WHERE player_id = $1`, playerID)
	if err == sql.ErrNoRows {
		return domain.Contract{}, false, nil
	}
	if err != nil {
		return domain.Contract{}, false, fmt.Errorf("failed to load contract %s: %w", playerID, err)
	}
	return row.toDomain(), true, nil
}

// Delete removes a player's contract.
func (r *ContractsRepo) Delete(ctx context.Context, playerID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("failed to delete contract %s: %w", playerID, err)
	}
	return nil
}

// LoadLedger materializes an in-memory cap ledger snapshot from every stored
// contract. The snapshot is what validation passes read; the database is
// never touched mid-validation.
func (r *ContractsRepo) LoadLedger(ctx context.Context) (*capledger.Ledger, error) {
	contracts, err := r.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	ledger := capledger.NewLedger(r.rules)
	for _, c := range contracts {
		ledger.UpsertContract(c)
	}
	return ledger, nil
}

// ListContracts returns every stored contract in player-id order.
func (r *ContractsRepo) ListContracts(ctx context.Context) ([]domain.Contract, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []contractRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT player_id, team, salary, years_remaining, no_trade_clause, signed_at
		 FROM contracts ORDER BY player_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	contracts := make([]domain.Contract, 0, len(rows))
	for _, row := range rows {
		contracts = append(contracts, row.toDomain())
	}
	return contracts, nil
}

type contractRow struct {
	PlayerID       string    `db:"player_id"`
	Team           string    `db:"team"`
	Salary         int64     `db:"salary"`
	YearsRemaining int       `db:"years_remaining"`
	NoTradeClause  bool      `db:"no_trade_clause"`
	SignedAt       time.Time `db:"signed_at"`
}

func (row contractRow) toDomain() domain.Contract {
	return domain.Contract{
		PlayerID:       row.PlayerID,
		Team:           row.Team,
		Salary:         domain.Money(row.Salary),
		YearsRemaining: row.YearsRemaining,
		NoTradeClause:  row.NoTradeClause,
		SignedAt:       row.SignedAt,
	}
}
