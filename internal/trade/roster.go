package trade

import (
	"fmt"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
)

// checkRosterLimits projects the post-trade roster size against the league
// bounds. Both bounds are evaluated independently; a team can in principle
// trip the floor and the ceiling in the same multi-team deal only through
// distinct teams, but each team still gets every applicable message.
func (v *Validator) checkRosterLimits(p *domain.TradeProposal, team string, result *domain.ValidationResult) {
	out := len(p.OutgoingPlayers(team))
	in := len(p.IncomingPlayers(team))
	if out == 0 && in == 0 {
		return
	}
	projected := v.ledger.RosterSize(team) - out + in
	if projected > v.rules.MaxRosterSize {
		result.AddIssue(fmt.Sprintf(
			"%s would carry %d players after the trade, above the max %d",
			team, projected, v.rules.MaxRosterSize))
	}
	if projected < v.rules.MinRosterSize {
		result.AddIssue(fmt.Sprintf(
			"%s would carry %d players after the trade, below the min %d",
			team, projected, v.rules.MinRosterSize))
	}
}
