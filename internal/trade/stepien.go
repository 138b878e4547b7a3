package trade

import (
	"fmt"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/pickregistry"
)

// checkStepienRule enforces the consecutive-first-round-pick rule: a team may
// never be left without an owned first-round pick in two back-to-back years
// of the forward window. Only triggered when the team sends out at least one
// first-round pick; second-round picks are exempt entirely.
func (v *Validator) checkStepienRule(p *domain.TradeProposal, team string, currentYear int, result *domain.ValidationResult) {
	outgoing := p.OutgoingFirstRoundYears(team)
	if len(outgoing) == 0 {
		return
	}
	owned := v.picks.OwnedFirstRoundYears(team)
	incoming := p.IncomingFirstRoundYears(team)
	gaps, ok := pickregistry.CheckConsecutive(owned, outgoing, incoming, currentYear)
	if ok {
		return
	}
	for _, gap := range gaps {
		result.AddIssue(fmt.Sprintf(
			"%s would be left without a first-round pick in consecutive years %d and %d",
			team, gap.Year, gap.Next))
	}
}
