package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// TradeProposal is a candidate multi-team exchange. It is immutable for the
// duration of a validation pass; every per-team figure is derived on demand
// rather than stored.
type TradeProposal struct {
	ID           uuid.UUID    `json:"id" yaml:"id"`
	Assets       []TradeAsset `json:"assets" yaml:"assets"`
	ProposedDate time.Time    `json:"proposed_date" yaml:"proposed_date"`
	SignAndTrade bool         `json:"sign_and_trade" yaml:"sign_and_trade"`
}

// NewProposal assembles a proposal and validates each asset. The asset order
// given by the caller is preserved; it determines issue ordering downstream.
func NewProposal(proposed time.Time, signAndTrade bool, assets ...TradeAsset) (*TradeProposal, error) {
	if len(assets) == 0 {
		return nil, fmt.Errorf("proposal has no assets")
	}
	for i, a := range assets {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("asset %d: %w", i, err)
		}
	}
	return &TradeProposal{
		ID:           uuid.New(),
		Assets:       assets,
		ProposedDate: proposed,
		SignAndTrade: signAndTrade,
	}, nil
}

// Teams returns every involved team in sorted order. A team is involved iff
// it sends or receives at least one asset.
func (p *TradeProposal) Teams() []string {
	seen := make(map[string]bool, 4)
	for _, a := range p.Assets {
		seen[a.FromTeam] = true
		seen[a.ToTeam] = true
	}
	teams := make([]string, 0, len(seen))
	for t := range seen {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return teams
}

// OutgoingSalary totals current-year player salaries leaving the team.
// Picks and cash never count toward salary matching.
func (p *TradeProposal) OutgoingSalary(team string) Money {
	var total Money
	for _, a := range p.Assets {
		if a.Type == AssetPlayer && a.FromTeam == team {
			total += a.Salary
		}
	}
	return total
}

// IncomingSalary totals current-year player salaries arriving at the team.
func (p *TradeProposal) IncomingSalary(team string) Money {
	var total Money
	for _, a := range p.Assets {
		if a.Type == AssetPlayer && a.ToTeam == team {
			total += a.Salary
		}
	}
	return total
}

// OutgoingPlayers returns the player assets leaving the team, in asset order.
func (p *TradeProposal) OutgoingPlayers(team string) []TradeAsset {
	var out []TradeAsset
	for _, a := range p.Assets {
		if a.Type == AssetPlayer && a.FromTeam == team {
			out = append(out, a)
		}
	}
	return out
}

// IncomingPlayers returns the player assets arriving at the team, in asset order.
func (p *TradeProposal) IncomingPlayers(team string) []TradeAsset {
	var in []TradeAsset
	for _, a := range p.Assets {
		if a.Type == AssetPlayer && a.ToTeam == team {
			in = append(in, a)
		}
	}
	return in
}

// CashSent totals cash considerations leaving the team.
func (p *TradeProposal) CashSent(team string) Money {
	var total Money
	for _, a := range p.Assets {
		if a.Type == AssetCash && a.FromTeam == team {
			total += a.Amount
		}
	}
	return total
}

// OutgoingPicks returns the draft pick assets leaving the team.
func (p *TradeProposal) OutgoingPicks(team string) []TradeAsset {
	var out []TradeAsset
	for _, a := range p.Assets {
		if a.Type == AssetDraftPick && a.FromTeam == team {
			out = append(out, a)
		}
	}
	return out
}

// OutgoingFirstRoundYears returns the years of first-round picks the team
// sends, in asset order. Second-round picks are excluded.
func (p *TradeProposal) OutgoingFirstRoundYears(team string) []int {
	var years []int
	for _, a := range p.Assets {
		if a.Type == AssetDraftPick && a.FirstRound && a.FromTeam == team {
			years = append(years, a.Year)
		}
	}
	return years
}

// IncomingFirstRoundYears returns the years of first-round picks the team
// receives, in asset order.
func (p *TradeProposal) IncomingFirstRoundYears(team string) []int {
	var years []int
	for _, a := range p.Assets {
		if a.Type == AssetDraftPick && a.FirstRound && a.ToTeam == team {
			years = append(years, a.Year)
		}
	}
	return years
}
