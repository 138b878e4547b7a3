package domain

import "fmt"

// DraftPick is a future draft selection tracked by the pick registry. Owner
// is the team currently holding the pick; OriginalTeam is the franchise whose
// draft slot it is, which protections and Stepien accounting key off.
type DraftPick struct {
	Year         int    `json:"year" db:"year"`
	Round        int    `json:"round" db:"round"`
	OriginalTeam string `json:"original_team" db:"original_team"`
	Owner        string `json:"owner" db:"owner"`
	Protection   string `json:"protection,omitempty" db:"protection"`
}

// FirstRound reports whether this is a first-round selection.
func (p DraftPick) FirstRound() bool {
	return p.Round == 1
}

func (p DraftPick) String() string {
	round := "2nd"
	if p.FirstRound() {
		round = "1st"
	}
	if p.Protection != "" {
		return fmt.Sprintf("%d %s-round pick (via %s, %s)", p.Year, round, p.OriginalTeam, p.Protection)
	}
	return fmt.Sprintf("%d %s-round pick (via %s)", p.Year, round, p.OriginalTeam)
}
