package pickregistry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
)

func ownAllFirsts(r *Registry, team string, from, to int) {
	for y := from; y <= to; y++ {
		r.AddPick(domain.DraftPick{Year: y, Round: 1, OriginalTeam: team, Owner: team})
	}
}

func TestRegistry_OwnedFirstRoundYears(t *testing.T) {
	r := NewRegistry()
	r.AddPick(domain.DraftPick{Year: 2028, Round: 1, OriginalTeam: "MIN", Owner: "DEN"})
	r.AddPick(domain.DraftPick{Year: 2026, Round: 1, OriginalTeam: "DEN", Owner: "DEN"})
	r.AddPick(domain.DraftPick{Year: 2026, Round: 2, OriginalTeam: "DEN", Owner: "DEN"})
	r.AddPick(domain.DraftPick{Year: 2028, Round: 1, OriginalTeam: "DEN", Owner: "DEN"})

	// Sorted, deduplicated, second-rounders ignored.
	assert.Equal(t, []int{2026, 2028}, r.OwnedFirstRoundYears("DEN"))
	assert.Empty(t, r.OwnedFirstRoundYears("MIN"))
}

func TestRegistry_RemovePick(t *testing.T) {
	r := NewRegistry()
	r.AddPick(domain.DraftPick{Year: 2026, Round: 1, OriginalTeam: "DEN", Owner: "DEN"})

	assert.False(t, r.RemovePick("DEN", 2027, 1, "DEN"), "year mismatch")
	assert.False(t, r.RemovePick("MIN", 2026, 1, "DEN"), "owner mismatch")
	assert.True(t, r.RemovePick("DEN", 2026, 1, "DEN"))
	assert.Empty(t, r.PicksOwnedBy("DEN"))
}

func TestRegistry_PicksOwnedBySorted(t *testing.T) {
	r := NewRegistry()
	r.AddPick(domain.DraftPick{Year: 2028, Round: 2, OriginalTeam: "DEN", Owner: "DEN"})
	r.AddPick(domain.DraftPick{Year: 2028, Round: 1, OriginalTeam: "MIN", Owner: "DEN"})
	r.AddPick(domain.DraftPick{Year: 2026, Round: 1, OriginalTeam: "DEN", Owner: "DEN"})

	owned := r.PicksOwnedBy("DEN")
	require.Len(t, owned, 3)
	assert.Equal(t, 2026, owned[0].Year)
	assert.Equal(t, 1, owned[1].Round)
	assert.Equal(t, 2, owned[2].Round)

	// Mutating the copy must not leak into the registry.
	owned[0].Owner = "HAX"
	assert.Equal(t, "DEN", r.PicksOwnedBy("DEN")[0].Owner)
}

func TestCheckConsecutive(t *testing.T) {
	tests := []struct {
		name     string
		owned    []int
		outgoing []int
		incoming []int
		wantOK   bool
		wantGaps []ConsecutiveGap
	}{
		{
			name:   "full ownership is safe",
			owned:  []int{2026, 2027, 2028, 2029, 2030, 2031, 2032},
			wantOK: true,
		},
		{
			name:     "vacating two consecutive years",
			owned:    []int{2026, 2027, 2028, 2029, 2030, 2031, 2032},
			outgoing: []int{2026, 2027},
			wantOK:   false,
			wantGaps: []ConsecutiveGap{{Year: 2026, Next: 2027}},
		},
		{
			name:     "alternating years survive",
			owned:    []int{2026, 2027, 2028, 2029, 2030, 2031, 2032},
			outgoing: []int{2027, 2029, 2031},
			wantOK:   true,
		},
		{
			name:     "incoming pick repairs the gap",
			owned:    []int{2026, 2027, 2028, 2029, 2030, 2031, 2032},
			outgoing: []int{2026, 2027},
			incoming: []int{2027},
			wantOK:   true,
		},
		{
			name:     "sparse holdings collapse entirely",
			owned:    []int{2026, 2028},
			outgoing: []int{2028},
			wantOK:   false,
			wantGaps: []ConsecutiveGap{
				{Year: 2027, Next: 2028},
				{Year: 2028, Next: 2029},
				{Year: 2029, Next: 2030},
				{Year: 2030, Next: 2031},
				{Year: 2031, Next: 2032},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gaps, ok := CheckConsecutive(tt.owned, tt.outgoing, tt.incoming, 2026)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantGaps, gaps)
		})
	}
}

func TestRegistry_ValidateStepienRule(t *testing.T) {
	r := NewRegistry()
	ownAllFirsts(r, "DEN", 2026, 2032)

	assert.True(t, r.ValidateStepienRule("DEN", []int{2027}, 2026))
	assert.False(t, r.ValidateStepienRule("DEN", []int{2026, 2027}, 2026))
}

func TestDefaultOwnership_Deterministic(t *testing.T) {
	stub := NewDefaultOwnership(2026, 7)

	want := []int{2026, 2027, 2028, 2029, 2030, 2031, 2032}
	assert.Equal(t, want, stub.OwnedFirstRoundYears("ATL"))
	assert.Equal(t, want, stub.OwnedFirstRoundYears("ATL"), "memoized answer matches first call")
	assert.Equal(t, want, stub.OwnedFirstRoundYears("BOS"), "default is identical per team")

	assert.True(t, stub.ValidateStepienRule("ATL", []int{2028}, 2026))
	assert.False(t, stub.ValidateStepienRule("ATL", []int{2028, 2029}, 2026))
}

func TestDefaultOwnership_ConcurrentFirstCalls(t *testing.T) {
	stub := NewDefaultOwnership(2026, 7)

	var wg sync.WaitGroup
	results := make([][]int, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = stub.OwnedFirstRoundYears("DAL")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, results[0], got)
	}
}
