package trade

import (
	"fmt"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
)

// matchBand identifies which salary-matching formula produced a team's
// incoming ceiling. The name appears verbatim in issue messages so a failed
// match can be traced to the exact rule.
type matchBand string

const (
	bandCapSpace   matchBand = "cap space plus allowance"
	bandApronMatch matchBand = "apron 100% match"
	bandDouble     matchBand = "200% plus allowance"
	bandFlat       matchBand = "flat premium"
	bandQuarter    matchBand = "125% plus allowance"
)

// maxIncomingSalary computes the team's incoming salary ceiling. The band
// thresholds are a step function of outgoing salary and cap status; the
// boundary figures come straight from the league rule table and both
// ceilings are inclusive.
func (v *Validator) maxIncomingSalary(team string, outgoing domain.Money) (domain.Money, matchBand) {
	if space := v.ledger.CapSpace(team); space > 0 {
		// A team with room absorbs salary into its space, matches the rest
		// dollar-for-dollar, and gets the fixed allowance on top.
		return space + outgoing + v.rules.Matching.Allowance, bandCapSpace
	}
	bands := v.rules.Matching
	switch {
	case v.ledger.CapStatus(team).AtLeast(domain.AboveFirstApron):
		return outgoing, bandApronMatch
	case outgoing <= bands.SmallBandCeiling:
		return outgoing*2 + bands.Allowance, bandDouble
	case outgoing <= bands.MidBandCeiling:
		return outgoing + bands.MidBandPremium, bandFlat
	default:
		return outgoing*5/4 + bands.Allowance, bandQuarter
	}
}

func (v *Validator) checkSalaryMatching(p *domain.TradeProposal, team string, result *domain.ValidationResult) {
	incoming := p.IncomingSalary(team)
	if incoming == 0 {
		return
	}
	outgoing := p.OutgoingSalary(team)
	max, band := v.maxIncomingSalary(team, outgoing)
	if incoming > max {
		result.AddIssue(fmt.Sprintf(
			"%s salary matching failed: incoming %s exceeds the %s limit of %s (outgoing %s)",
			team, incoming, band, max, outgoing))
	}
}
