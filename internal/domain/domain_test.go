package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		amount Money
		want   string
	}{
		{0, "$0"},
		{250_000, "$250,000"},
		{7_500_000, "$7,500,000"},
		{15_250_001, "$15,250,001"},
		{-1_000_000, "-$1,000,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.amount.String())
	}
}

func TestCapStatus_Ordering(t *testing.T) {
	assert.True(t, AboveSecondApron.AtLeast(AboveFirstApron))
	assert.True(t, AboveFirstApron.AtLeast(AboveFirstApron))
	assert.False(t, BelowFirstApron.AtLeast(AboveFirstApron))
	assert.False(t, UnderCap.AtLeast(BelowFirstApron))
	assert.Equal(t, "above_second_apron", AboveSecondApron.String())
}

func TestTradeAsset_Validate(t *testing.T) {
	tests := []struct {
		name    string
		asset   TradeAsset
		wantErr string
	}{
		{"valid player", PlayerAsset("LAL", "BOS", "p1", 5_000_000), ""},
		{"valid pick", PickAsset("LAL", "BOS", 2027, true, "LAL"), ""},
		{"valid cash", CashAsset("LAL", "BOS", 1_000_000), ""},
		{"same team", PlayerAsset("LAL", "LAL", "p1", 5_000_000), "within one team"},
		{"missing player id", TradeAsset{Type: AssetPlayer, FromTeam: "LAL", ToTeam: "BOS"}, "missing player id"},
		{"pick missing year", TradeAsset{Type: AssetDraftPick, FromTeam: "LAL", ToTeam: "BOS"}, "missing year"},
		{"zero cash", TradeAsset{Type: AssetCash, FromTeam: "LAL", ToTeam: "BOS"}, "positive amount"},
		{"mixed fields", TradeAsset{Type: AssetPlayer, FromTeam: "LAL", ToTeam: "BOS", PlayerID: "p1", Year: 2027}, "pick or cash fields"},
		{"unknown type", TradeAsset{Type: "mascot", FromTeam: "LAL", ToTeam: "BOS"}, "unknown asset type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.asset.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestProposal_DerivedQueries(t *testing.T) {
	proposed := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	p, err := NewProposal(proposed, false,
		PlayerAsset("LAL", "BOS", "p1", 10_000_000),
		PlayerAsset("BOS", "LAL", "p2", 8_000_000),
		PlayerAsset("BOS", "MIA", "p3", 4_000_000),
		PickAsset("MIA", "LAL", 2027, true, "MIA"),
		PickAsset("MIA", "BOS", 2028, false, "MIA"),
		CashAsset("LAL", "MIA", 2_000_000),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"BOS", "LAL", "MIA"}, p.Teams())
	assert.Equal(t, Money(10_000_000), p.OutgoingSalary("LAL"))
	assert.Equal(t, Money(8_000_000), p.IncomingSalary("LAL"))
	assert.Equal(t, Money(12_000_000), p.OutgoingSalary("BOS"))
	assert.Equal(t, Money(2_000_000), p.CashSent("LAL"))
	assert.Equal(t, Money(0), p.CashSent("BOS"))
	assert.Len(t, p.OutgoingPlayers("BOS"), 2)
	assert.Len(t, p.IncomingPlayers("MIA"), 1)
	assert.Equal(t, []int{2027}, p.IncomingFirstRoundYears("LAL"))
	assert.Equal(t, []int{2027}, p.OutgoingFirstRoundYears("MIA"), "second-round picks are excluded")
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", p.ID.String())
}

func TestNewProposal_RejectsBadAssets(t *testing.T) {
	proposed := time.Now()
	_, err := NewProposal(proposed, false)
	assert.ErrorContains(t, err, "no assets")

	_, err = NewProposal(proposed, false, PlayerAsset("LAL", "LAL", "p1", 1))
	assert.ErrorContains(t, err, "asset 0")
}

func TestContract_TradableAsOf(t *testing.T) {
	signed := time.Date(2025, time.October, 10, 0, 0, 0, 0, time.UTC)
	c := Contract{PlayerID: "p1", SignedAt: signed}

	assert.Equal(t, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), c.TradableFrom())
	assert.False(t, c.TradableAsOf(signed.AddDate(0, 0, 30)))
	assert.False(t, c.TradableAsOf(c.TradableFrom().Add(-time.Second)))
	assert.True(t, c.TradableAsOf(c.TradableFrom()))
	assert.True(t, c.TradableAsOf(c.TradableFrom().AddDate(0, 0, 1)))
}

func TestValidationResult_ConsentDeduplicates(t *testing.T) {
	r := NewValidationResult()
	r.RequireConsent("p1")
	r.RequireConsent("p2")
	r.RequireConsent("p1")
	assert.Equal(t, []string{"p1", "p2"}, r.ConsentPlayers)
	assert.True(t, r.RequiresConsent)
	assert.True(t, r.Valid, "consent alone never flips validity")

	r.AddAdvisory("advisory only")
	assert.True(t, r.Valid)
	r.AddIssue("hard violation")
	assert.False(t, r.Valid)
	assert.Equal(t, []string{"advisory only", "hard violation"}, r.Issues)
}

func TestDraftPick_String(t *testing.T) {
	p := DraftPick{Year: 2027, Round: 1, OriginalTeam: "MIA", Owner: "LAL"}
	assert.Equal(t, "2027 1st-round pick (via MIA)", p.String())

	p.Protection = "top-4 protected"
	assert.Contains(t, p.String(), "top-4 protected")

	second := DraftPick{Year: 2028, Round: 2, OriginalTeam: "MIA", Owner: "BOS"}
	assert.False(t, second.FirstRound())
	assert.Contains(t, second.String(), "2nd-round")
}
