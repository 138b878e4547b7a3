// Package capledger is the per-team salary bookkeeping collaborator: payroll,
// cap space, tier classification, and contract storage. The validation engine
// only ever reads from it.
package capledger

import (
	"sort"
	"sync"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
)

// Ledger is an in-memory cap ledger derived from stored contracts. Tier and
// cap space come from the league rule tables applied to the team's payroll.
type Ledger struct {
	mu        sync.RWMutex
	rules     *league.Rules
	contracts map[string]domain.Contract // player id -> contract
	rosters   map[string][]string        // team -> player ids, insertion order
}

// NewLedger returns an empty ledger classified against the given rule table.
func NewLedger(rules *league.Rules) *Ledger {
	return &Ledger{
		rules:     rules,
		contracts: make(map[string]domain.Contract),
		rosters:   make(map[string][]string),
	}
}

// UpsertContract stores a contract and places the player on the contract's
// team roster.
func (l *Ledger) UpsertContract(c domain.Contract) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.contracts[c.PlayerID]; ok {
		l.removeFromRoster(prev.Team, c.PlayerID)
	}
	l.contracts[c.PlayerID] = c
	l.rosters[c.Team] = append(l.rosters[c.Team], c.PlayerID)
}

// ReleasePlayer drops the player's contract entirely.
func (l *Ledger) ReleasePlayer(playerID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.contracts[playerID]; ok {
		l.removeFromRoster(c.Team, playerID)
		delete(l.contracts, playerID)
	}
}

// TransferPlayer moves a player's contract to another team. Used by the
// trade-execution path after a proposal clears validation and consent.
func (l *Ledger) TransferPlayer(playerID, toTeam string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.contracts[playerID]
	if !ok {
		return false
	}
	l.removeFromRoster(c.Team, playerID)
	c.Team = toTeam
	l.contracts[playerID] = c
	l.rosters[toTeam] = append(l.rosters[toTeam], playerID)
	return true
}

func (l *Ledger) removeFromRoster(team, playerID string) {
	roster := l.rosters[team]
	for i, id := range roster {
		if id == playerID {
			l.rosters[team] = append(roster[:i:i], roster[i+1:]...)
			return
		}
	}
}

// Contract returns the player's contract when one is on file.
func (l *Ledger) Contract(playerID string) (domain.Contract, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.contracts[playerID]
	return c, ok
}

// TeamContracts returns the team's contracts sorted by player id.
func (l *Ledger) TeamContracts(team string) []domain.Contract {
	l.mu.RLock()
	defer l.mu.RUnlock()
	contracts := make([]domain.Contract, 0, len(l.rosters[team]))
	for _, id := range l.rosters[team] {
		contracts = append(contracts, l.contracts[id])
	}
	sort.Slice(contracts, func(i, j int) bool { return contracts[i].PlayerID < contracts[j].PlayerID })
	return contracts
}

// RosterSize is the number of standard contracts on the team's books.
func (l *Ledger) RosterSize(team string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.rosters[team])
}

// Payroll totals current-year salary across the team's contracts.
func (l *Ledger) Payroll(team string) domain.Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var total domain.Money
	for _, id := range l.rosters[team] {
		total += l.contracts[id].Salary
	}
	return total
}

// CapSpace is the team's headroom under the salary cap, floored at zero.
func (l *Ledger) CapSpace(team string) domain.Money {
	return l.rules.CapSpaceFor(l.Payroll(team))
}

// CapStatus classifies the team's payroll against the tier thresholds.
func (l *Ledger) CapStatus(team string) domain.CapStatus {
	return l.rules.StatusFor(l.Payroll(team))
}
