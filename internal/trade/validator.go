// Package trade implements the legality validation pipeline for proposed
// multi-team exchanges of players, draft picks, and cash, plus the
// companion asset-value estimator used to score trade fairness.
package trade

import (
	"time"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/pickregistry"
)

// Validator runs every rule check against a proposal and aggregates the
// violations. Dependencies are injected at construction; the validator never
// reaches for ambient singletons and never writes to its collaborators, so
// concurrent Validate calls over one ledger/registry snapshot are safe.
type Validator struct {
	ledger CapLedger
	picks  PickRegistry
	rules  *league.Rules
}

// New builds a validator. A nil picks registry is replaced by the
// default-ownership stub, which assumes every team keeps its own first-round
// pick for the full forward window; production callers inject a real
// registry.
func New(ledger CapLedger, picks PickRegistry, rules *league.Rules) *Validator {
	if rules == nil {
		rules = league.DefaultRules()
	}
	if picks == nil {
		picks = pickregistry.NewDefaultOwnership(league.SeasonEndYear(time.Now()), rules.PickWindowYears)
	}
	return &Validator{ledger: ledger, picks: picks, rules: rules}
}

// Validate runs all checks in a fixed order and returns every violation
// found. Nothing short-circuits: a failed salary match does not hide a
// roster problem, because callers display the full list at once. The
// no-trade-clause check only raises the consent flag and never flips Valid.
func (v *Validator) Validate(p *domain.TradeProposal) *domain.ValidationResult {
	result := domain.NewValidationResult()
	teams := p.Teams()
	currentYear := league.SeasonEndYear(p.ProposedDate)

	for _, team := range teams {
		v.checkSalaryMatching(p, team, result)
	}
	for _, team := range teams {
		v.checkApronRestrictions(p, team, currentYear, result)
	}
	for _, team := range teams {
		v.checkRosterLimits(p, team, result)
	}
	v.checkNoTradeClauses(p, result)
	for _, team := range teams {
		v.checkStepienRule(p, team, currentYear, result)
	}
	v.checkTradeDeadline(p, result)
	v.checkSigningFreeze(p, result)

	return result
}
