package domain

import "time"

// tradeFreezeAfterSigning is how long a newly signed contract stays untradable.
const tradeFreezeAfterSigning = 3 // months

// Contract is the read-only view of a player contract this subsystem needs.
// The cap ledger owns the full record.
type Contract struct {
	PlayerID       string    `json:"player_id" db:"player_id"`
	Team           string    `json:"team" db:"team"`
	Salary         Money     `json:"salary" db:"salary"`
	YearsRemaining int       `json:"years_remaining" db:"years_remaining"`
	NoTradeClause  bool      `json:"no_trade_clause" db:"no_trade_clause"`
	SignedAt       time.Time `json:"signed_at" db:"signed_at"`
}

// TradableFrom is the first date the contract may be moved.
func (c Contract) TradableFrom() time.Time {
	return c.SignedAt.AddDate(0, tradeFreezeAfterSigning, 0)
}

// TradableAsOf reports whether the post-signing freeze has elapsed by d.
func (c Contract) TradableAsOf(d time.Time) bool {
	return !d.Before(c.TradableFrom())
}
