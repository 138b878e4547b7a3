package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/capledger"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/pickregistry"
)

// scenarioDoc is the YAML document the validate and value commands read.
// The contracts and picks sections are optional; when --db is set the
// franchise state comes from the database instead.
type scenarioDoc struct {
	Proposal  proposalDoc   `yaml:"proposal"`
	Contracts []contractDoc `yaml:"contracts"`
	Picks     []pickDoc     `yaml:"picks"`
}

type proposalDoc struct {
	ProposedDate time.Time  `yaml:"proposed_date"`
	SignAndTrade bool       `yaml:"sign_and_trade"`
	Assets       []assetDoc `yaml:"assets"`
}

type assetDoc struct {
	Type     string `yaml:"type"`
	FromTeam string `yaml:"from_team"`
	ToTeam   string `yaml:"to_team"`

	PlayerID string `yaml:"player_id"`
	Salary   int64  `yaml:"salary"`

	Year         int    `yaml:"year"`
	FirstRound   bool   `yaml:"first_round"`
	OriginalTeam string `yaml:"original_team"`
	Protection   string `yaml:"protection"`

	Amount int64 `yaml:"amount"`
}

type contractDoc struct {
	PlayerID       string    `yaml:"player_id"`
	Team           string    `yaml:"team"`
	Salary         int64     `yaml:"salary"`
	YearsRemaining int       `yaml:"years_remaining"`
	NoTradeClause  bool      `yaml:"no_trade_clause"`
	SignedAt       time.Time `yaml:"signed_at"`
}

type pickDoc struct {
	Year         int    `yaml:"year"`
	Round        int    `yaml:"round"`
	OriginalTeam string `yaml:"original_team"`
	Owner        string `yaml:"owner"`
	Protection   string `yaml:"protection"`
}

// loadScenario parses a scenario file. A missing proposed_date defaults to
// the current time.
func loadScenario(path string, now time.Time) (*scenarioDoc, *domain.TradeProposal, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read scenario: %w", err)
	}

	var doc scenarioDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse scenario: %w", err)
	}

	proposed := doc.Proposal.ProposedDate
	if proposed.IsZero() {
		proposed = now
	}

	assets := make([]domain.TradeAsset, 0, len(doc.Proposal.Assets))
	for _, a := range doc.Proposal.Assets {
		assets = append(assets, domain.TradeAsset{
			Type:         domain.AssetType(a.Type),
			FromTeam:     a.FromTeam,
			ToTeam:       a.ToTeam,
			PlayerID:     a.PlayerID,
			Salary:       domain.Money(a.Salary),
			Year:         a.Year,
			FirstRound:   a.FirstRound,
			OriginalTeam: a.OriginalTeam,
			Protection:   a.Protection,
			Amount:       domain.Money(a.Amount),
		})
	}

	proposal, err := domain.NewProposal(proposed, doc.Proposal.SignAndTrade, assets...)
	if err != nil {
		return nil, nil, fmt.Errorf("build proposal: %w", err)
	}
	return &doc, proposal, nil
}

// buildState assembles in-memory franchise state from the scenario's inline
// contracts and picks sections.
func (doc *scenarioDoc) buildState(rules *league.Rules) (*capledger.Ledger, *pickregistry.Registry) {
	ledger := capledger.NewLedger(rules)
	for _, c := range doc.Contracts {
		ledger.UpsertContract(domain.Contract{
			PlayerID:       c.PlayerID,
			Team:           c.Team,
			Salary:         domain.Money(c.Salary),
			YearsRemaining: c.YearsRemaining,
			NoTradeClause:  c.NoTradeClause,
			SignedAt:       c.SignedAt,
		})
	}

	registry := pickregistry.NewRegistry()
	for _, p := range doc.Picks {
		round := p.Round
		if round == 0 {
			round = 1
		}
		registry.AddPick(domain.DraftPick{
			Year:         p.Year,
			Round:        round,
			OriginalTeam: p.OriginalTeam,
			Owner:        p.Owner,
			Protection:   p.Protection,
		})
	}
	return ledger, registry
}
