package trade

import (
	"fmt"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
)

const dateLayout = "2006-01-02"

// checkTradeDeadline blocks proposals dated past the season's deadline.
func (v *Validator) checkTradeDeadline(p *domain.TradeProposal, result *domain.ValidationResult) {
	deadline := league.TradeDeadline(league.SeasonEndYear(p.ProposedDate))
	if p.ProposedDate.After(deadline) {
		result.AddIssue(fmt.Sprintf(
			"trade proposed on %s is past the %d trade deadline (%s)",
			p.ProposedDate.Format(dateLayout), deadline.Year(), deadline.Format(dateLayout)))
	}
}

// checkSigningFreeze blocks any outgoing player still inside the post-signing
// trade freeze as of the proposal date. Players with no contract on file are
// skipped rather than failing the trade.
func (v *Validator) checkSigningFreeze(p *domain.TradeProposal, result *domain.ValidationResult) {
	for _, a := range p.Assets {
		if a.Type != domain.AssetPlayer {
			continue
		}
		c, ok := v.ledger.Contract(a.PlayerID)
		if !ok {
			continue
		}
		if !c.TradableAsOf(p.ProposedDate) {
			result.AddIssue(fmt.Sprintf(
				"player %s was signed on %s and cannot be traded until %s",
				a.PlayerID, c.SignedAt.Format(dateLayout), c.TradableFrom().Format(dateLayout)))
		}
	}
}
