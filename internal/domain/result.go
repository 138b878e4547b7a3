package domain

// ValidationResult is the aggregate outcome of one validation pass. It is
// constructed fresh per call and never mutated after return. Issues keeps
// one entry per failed check instance, in check order, never deduplicated.
type ValidationResult struct {
	Valid           bool     `json:"valid"`
	Issues          []string `json:"issues"`
	RequiresConsent bool     `json:"requires_consent"`
	ConsentPlayers  []string `json:"consent_players,omitempty"`
}

// NewValidationResult returns an empty passing result for the engine to fill.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{Valid: true, Issues: []string{}}
}

// AddIssue records a hard violation and flips Valid.
func (r *ValidationResult) AddIssue(msg string) {
	r.Issues = append(r.Issues, msg)
	r.Valid = false
}

// AddAdvisory records a non-blocking issue without touching Valid.
func (r *ValidationResult) AddAdvisory(msg string) {
	r.Issues = append(r.Issues, msg)
}

// RequireConsent marks a player whose contract gates execution on consent.
// Duplicate ids are kept out while preserving first-seen order.
func (r *ValidationResult) RequireConsent(playerID string) {
	r.RequiresConsent = true
	for _, id := range r.ConsentPlayers {
		if id == playerID {
			return
		}
	}
	r.ConsentPlayers = append(r.ConsentPlayers, playerID)
}
