package pickregistry

import "sync"

// DefaultOwnership is a development stub standing in for a real registry: it
// assumes every team still owns its own first-round pick in each of the next
// horizon years. Production wiring always injects a populated Registry; this
// exists so the validation engine stays constructible in tools and tests
// that have no pick data.
//
// The per-team year slice is computed once and memoized. The memo is a
// read-through convenience, not authoritative state: the same inputs produce
// the same slice no matter the call order, and concurrent first calls for a
// team settle on a single entry.
type DefaultOwnership struct {
	startYear int
	horizon   int

	mu   sync.Mutex
	memo map[string][]int
}

// NewDefaultOwnership returns a stub registry whose window starts at
// startYear and spans horizon years.
func NewDefaultOwnership(startYear, horizon int) *DefaultOwnership {
	return &DefaultOwnership{
		startYear: startYear,
		horizon:   horizon,
		memo:      make(map[string][]int),
	}
}

// OwnedFirstRoundYears returns the assumed ownership years for the team.
func (d *DefaultOwnership) OwnedFirstRoundYears(team string) []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if years, ok := d.memo[team]; ok {
		return years
	}
	years := make([]int, d.horizon)
	for i := range years {
		years[i] = d.startYear + i
	}
	d.memo[team] = years
	return years
}

// ValidateStepienRule runs the consecutive-year scan over the assumed
// ownership set.
func (d *DefaultOwnership) ValidateStepienRule(team string, outgoingYears []int, currentYear int) bool {
	_, ok := CheckConsecutive(d.OwnedFirstRoundYears(team), outgoingYears, nil, currentYear)
	return ok
}
