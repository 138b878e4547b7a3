package trade

import (
	"fmt"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
)

// checkApronRestrictions applies the hard restrictions that escalate at the
// two apron thresholds. Below the first apron nothing here applies. Each
// second-apron restriction is checked independently so a team sees every
// violation, not just the first.
func (v *Validator) checkApronRestrictions(p *domain.TradeProposal, team string, currentYear int, result *domain.ValidationResult) {
	status := v.ledger.CapStatus(team)
	if !status.AtLeast(domain.AboveFirstApron) {
		return
	}

	if p.SignAndTrade {
		projected := v.ledger.Payroll(team) - p.OutgoingSalary(team) + p.IncomingSalary(team)
		if projected >= v.rules.FirstApron {
			result.AddIssue(fmt.Sprintf(
				"%s cannot complete a sign-and-trade: projected payroll %s stays at or above the first apron (%s)",
				team, projected, v.rules.FirstApron))
		}
	}

	if !status.AtLeast(domain.AboveSecondApron) {
		return
	}

	if out := p.OutgoingPlayers(team); len(out) > 1 {
		result.AddIssue(fmt.Sprintf(
			"%s is above the second apron and cannot aggregate %d outgoing players in one trade",
			team, len(out)))
	}

	if cash := p.CashSent(team); cash > 0 {
		result.AddIssue(fmt.Sprintf(
			"%s is above the second apron and cannot send cash (%s)", team, cash))
	}

	for _, pick := range p.OutgoingPicks(team) {
		if pick.Year > currentYear+v.rules.MaxPickYearsOut {
			result.AddIssue(fmt.Sprintf(
				"%s is above the second apron and cannot trade a %d pick more than %d years out",
				team, pick.Year, v.rules.MaxPickYearsOut))
		}
	}
}
