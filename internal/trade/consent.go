package trade

import (
	"fmt"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
)

// checkNoTradeClauses flags every moving player whose contract carries a
// no-trade clause. This never blocks validity: the trade is legal to propose
// and the execution layer gates on consent obtained out-of-band. Players
// without a contract on file contribute no restriction.
func (v *Validator) checkNoTradeClauses(p *domain.TradeProposal, result *domain.ValidationResult) {
	for _, a := range p.Assets {
		if a.Type != domain.AssetPlayer {
			continue
		}
		c, ok := v.ledger.Contract(a.PlayerID)
		if !ok || !c.NoTradeClause {
			continue
		}
		result.RequireConsent(a.PlayerID)
		result.AddAdvisory(fmt.Sprintf(
			"player %s holds a no-trade clause; moving from %s to %s requires their consent",
			a.PlayerID, a.FromTeam, a.ToTeam))
	}
}
