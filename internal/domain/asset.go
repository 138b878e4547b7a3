package domain

import "fmt"

// AssetType discriminates the three kinds of tradable assets.
type AssetType string

const (
	AssetPlayer    AssetType = "player"
	AssetDraftPick AssetType = "draft_pick"
	AssetCash      AssetType = "cash"
)

// TradeAsset is one unit changing hands in a proposal. Exactly one of the
// type-specific field groups is populated, matching Type.
type TradeAsset struct {
	Type     AssetType `json:"type" yaml:"type"`
	FromTeam string    `json:"from_team" yaml:"from_team"`
	ToTeam   string    `json:"to_team" yaml:"to_team"`

	// Player assets
	PlayerID string `json:"player_id,omitempty" yaml:"player_id,omitempty"`
	Salary   Money  `json:"salary,omitempty" yaml:"salary,omitempty"`

	// Draft pick assets
	Year         int    `json:"year,omitempty" yaml:"year,omitempty"`
	FirstRound   bool   `json:"first_round,omitempty" yaml:"first_round,omitempty"`
	OriginalTeam string `json:"original_team,omitempty" yaml:"original_team,omitempty"`
	Protection   string `json:"protection,omitempty" yaml:"protection,omitempty"`

	// Cash assets
	Amount Money `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// PlayerAsset builds a player asset moving from one team to another.
func PlayerAsset(from, to, playerID string, salary Money) TradeAsset {
	return TradeAsset{Type: AssetPlayer, FromTeam: from, ToTeam: to, PlayerID: playerID, Salary: salary}
}

// PickAsset builds a draft pick asset. originalTeam is the franchise the pick
// started with, which may differ from the sending team for re-traded picks.
func PickAsset(from, to string, year int, firstRound bool, originalTeam string) TradeAsset {
	return TradeAsset{Type: AssetDraftPick, FromTeam: from, ToTeam: to, Year: year, FirstRound: firstRound, OriginalTeam: originalTeam}
}

// CashAsset builds a cash consideration asset.
func CashAsset(from, to string, amount Money) TradeAsset {
	return TradeAsset{Type: AssetCash, FromTeam: from, ToTeam: to, Amount: amount}
}

// Validate checks the structural invariants of a single asset.
func (a TradeAsset) Validate() error {
	if a.FromTeam == "" || a.ToTeam == "" {
		return fmt.Errorf("asset missing team: from=%q to=%q", a.FromTeam, a.ToTeam)
	}
	if a.FromTeam == a.ToTeam {
		return fmt.Errorf("asset cannot move within one team: %s", a.FromTeam)
	}
	switch a.Type {
	case AssetPlayer:
		if a.PlayerID == "" {
			return fmt.Errorf("player asset missing player id")
		}
		if a.Salary < 0 {
			return fmt.Errorf("player %s has negative salary %s", a.PlayerID, a.Salary)
		}
		if a.Year != 0 || a.Amount != 0 {
			return fmt.Errorf("player asset %s carries pick or cash fields", a.PlayerID)
		}
	case AssetDraftPick:
		if a.Year == 0 {
			return fmt.Errorf("draft pick asset missing year")
		}
		if a.PlayerID != "" || a.Amount != 0 {
			return fmt.Errorf("pick asset (%d) carries player or cash fields", a.Year)
		}
	case AssetCash:
		if a.Amount <= 0 {
			return fmt.Errorf("cash asset must carry a positive amount, got %s", a.Amount)
		}
		if a.PlayerID != "" || a.Year != 0 {
			return fmt.Errorf("cash asset carries player or pick fields")
		}
	default:
		return fmt.Errorf("unknown asset type %q", a.Type)
	}
	return nil
}
