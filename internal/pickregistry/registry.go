// Package pickregistry tracks ownership of future draft picks and answers
// the consecutive-first-round-pick (Stepien) question.
package pickregistry

import (
	"sort"
	"sync"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
)

// Registry is the authoritative in-memory ownership record for future draft
// picks. Reads are safe for concurrent use with other reads; mutation happens
// on the commit path, never during validation.
type Registry struct {
	mu    sync.RWMutex
	picks map[string][]domain.DraftPick // owner -> picks
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{picks: make(map[string][]domain.DraftPick)}
}

// AddPick records ownership of a pick.
func (r *Registry) AddPick(p domain.DraftPick) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.picks[p.Owner] = append(r.picks[p.Owner], p)
}

// RemovePick drops the first pick matching year/round/original team from the
// owner's holdings. Returns false when no such pick is owned.
func (r *Registry) RemovePick(owner string, year, round int, originalTeam string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	owned := r.picks[owner]
	for i, p := range owned {
		if p.Year == year && p.Round == round && p.OriginalTeam == originalTeam {
			r.picks[owner] = append(owned[:i:i], owned[i+1:]...)
			return true
		}
	}
	return false
}

// PicksOwnedBy returns a copy of the team's holdings sorted by year then round.
func (r *Registry) PicksOwnedBy(team string) []domain.DraftPick {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owned := make([]domain.DraftPick, len(r.picks[team]))
	copy(owned, r.picks[team])
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].Year != owned[j].Year {
			return owned[i].Year < owned[j].Year
		}
		return owned[i].Round < owned[j].Round
	})
	return owned
}

// OwnedFirstRoundYears returns the sorted, deduplicated years in which the
// team owns at least one first-round pick.
func (r *Registry) OwnedFirstRoundYears(team string) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return firstRoundYears(r.picks[team])
}

// ValidateStepienRule reports whether the team could give up the listed
// first-round pick years without being left pickless in two consecutive
// years of the forward window starting at currentYear.
func (r *Registry) ValidateStepienRule(team string, outgoingYears []int, currentYear int) bool {
	owned := r.OwnedFirstRoundYears(team)
	_, ok := CheckConsecutive(owned, outgoingYears, nil, currentYear)
	return ok
}

func firstRoundYears(picks []domain.DraftPick) []int {
	seen := make(map[int]bool)
	for _, p := range picks {
		if p.FirstRound() {
			seen[p.Year] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// ConsecutiveGap names a pair of back-to-back years both left without a
// first-round pick.
type ConsecutiveGap struct {
	Year, Next int
}

// CheckConsecutive simulates post-trade ownership (owned − outgoing +
// incoming, by year) and scans year pairs (Y, Y+1) for Y in
// [currentYear, currentYear+5]. It returns every gap found, in year order.
func CheckConsecutive(ownedYears, outgoingYears, incomingYears []int, currentYear int) ([]ConsecutiveGap, bool) {
	owns := make(map[int]bool, len(ownedYears))
	for _, y := range ownedYears {
		owns[y] = true
	}
	for _, y := range outgoingYears {
		delete(owns, y)
	}
	for _, y := range incomingYears {
		owns[y] = true
	}
	var gaps []ConsecutiveGap
	for y := currentYear; y <= currentYear+5; y++ {
		if !owns[y] && !owns[y+1] {
			gaps = append(gaps, ConsecutiveGap{Year: y, Next: y + 1})
		}
	}
	return gaps, len(gaps) == 0
}
