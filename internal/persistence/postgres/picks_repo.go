package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/pickregistry"
)

// PicksRepo stores future draft pick ownership and materializes registry
// snapshots for validation.
type PicksRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewPicksRepo creates a picks repository.
func NewPicksRepo(db *sqlx.DB, timeout time.Duration) *PicksRepo {
	return &PicksRepo{db: db, timeout: timeout}
}

// Insert records ownership of a pick.
func (r *PicksRepo) Insert(ctx context.Context, p domain.DraftPick) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO draft_picks (year, round, original_team, owner, protection)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (year, round, original_team) DO UPDATE SET
			owner = EXCLUDED.owner,
			protection = EXCLUDED.protection`

	if _, err := r.db.ExecContext(ctx, query, p.Year, p.Round, p.OriginalTeam, p.Owner, p.Protection); err != nil {
		return fmt.Errorf("failed to insert pick %s: %w", p, err)
	}
	return nil
}

// TransferOwnership moves a pick to a new holder. Used by the trade
// execution path after validation and consent clear.
func (r *PicksRepo) TransferOwnership(ctx context.Context, year, round int, originalTeam, toTeam string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE draft_picks SET owner = $4 WHERE year = $1 AND round = $2 AND original_team = $3`,
		year, round, originalTeam, toTeam)
	if err != nil {
		return fmt.Errorf("failed to transfer pick %d/%d (%s): %w", year, round, originalTeam, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("pick %d round %d originally of %s is not registered", year, round, originalTeam)
	}
	return nil
}

// LoadRegistry materializes an in-memory registry snapshot of every stored
// pick.
func (r *PicksRepo) LoadRegistry(ctx context.Context) (*pickregistry.Registry, error) {
	picks, err := r.ListPicks(ctx)
	if err != nil {
		return nil, err
	}
	registry := pickregistry.NewRegistry()
	for _, pick := range picks {
		registry.AddPick(pick)
	}
	return registry, nil
}

// ListPicks returns every stored pick ordered by year, round, original team.
func (r *PicksRepo) ListPicks(ctx context.Context) ([]domain.DraftPick, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []pickRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT year, round, original_team, owner, COALESCE(protection, '') AS protection
		 FROM draft_picks ORDER BY year, round, original_team`)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft picks: %w", err)
	}
	picks := make([]domain.DraftPick, 0, len(rows))
	for _, row := range rows {
		picks = append(picks, domain.DraftPick{
			Year:         row.Year,
			Round:        row.Round,
			OriginalTeam: row.OriginalTeam,
			Owner:        row.Owner,
			Protection:   row.Protection,
		})
	}
	return picks, nil
}

type pickRow struct {
	Year         int    `db:"year"`
	Round        int    `db:"round"`
	OriginalTeam string `db:"original_team"`
	Owner        string `db:"owner"`
	Protection   string `db:"protection"`
}
