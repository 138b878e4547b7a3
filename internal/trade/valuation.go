package trade

import (
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
)

// Estimator scores trade fairness for analysis layers. It is a deterministic
// heuristic, fully separate from legality: an illegal trade still gets a
// balance figure.
type Estimator struct {
	ledger CapLedger
}

// NewEstimator builds an estimator. The ledger is only consulted for
// contract length when valuing players; a nil ledger values every player at
// the neutral term multiplier.
func NewEstimator(ledger CapLedger) *Estimator {
	return &Estimator{ledger: ledger}
}

const (
	salaryValueUnit = 5_000_000 // dollars per value point for player salary
	cashValueUnit   = 1_000_000 // dollars per value point for cash

	firstRoundBaseValue  = 15.0
	secondRoundBaseValue = 3.0
	pickYearDiscount     = 0.10
	pickValueFloor       = 0.30 // fraction of base value a distant pick keeps
)

// termMultiplier discounts contracts outside the 2-4 year sweet spot:
// expiring deals are worth less to the acquiring team, and very long deals
// carry more downside risk.
func termMultiplier(yearsRemaining int) float64 {
	switch {
	case yearsRemaining <= 1:
		return 0.70
	case yearsRemaining == 2:
		return 0.85
	case yearsRemaining == 3:
		return 1.00
	case yearsRemaining == 4:
		return 0.90
	default:
		return 0.75
	}
}

// AssetValue scores a single asset in value units, independent of direction.
func (e *Estimator) AssetValue(a domain.TradeAsset, currentYear int) float64 {
	switch a.Type {
	case domain.AssetPlayer:
		mult := 1.0
		if e.ledger != nil {
			if c, ok := e.ledger.Contract(a.PlayerID); ok {
				mult = termMultiplier(c.YearsRemaining)
			}
		}
		return float64(a.Salary) / salaryValueUnit * mult
	case domain.AssetDraftPick:
		base := secondRoundBaseValue
		if a.FirstRound {
			base = firstRoundBaseValue
		}
		discount := 1.0 - pickYearDiscount*float64(a.Year-currentYear)
		if discount > 1.0 {
			discount = 1.0
		}
		if discount < pickValueFloor {
			discount = pickValueFloor
		}
		return base * discount
	case domain.AssetCash:
		return float64(a.Amount) / cashValueUnit
	default:
		return 0
	}
}

// TradeBalance is the sum of incoming asset values minus outgoing asset
// values from one team's perspective. Positive means the team comes out
// ahead under this heuristic.
func (e *Estimator) TradeBalance(p *domain.TradeProposal, team string) float64 {
	currentYear := league.SeasonEndYear(p.ProposedDate)
	var balance float64
	for _, a := range p.Assets {
		switch team {
		case a.ToTeam:
			balance += e.AssetValue(a, currentYear)
		case a.FromTeam:
			balance -= e.AssetValue(a, currentYear)
		}
	}
	return balance
}
