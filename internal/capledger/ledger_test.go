package capledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
)

func testContract(player, team string, salary domain.Money) domain.Contract {
	return domain.Contract{
		PlayerID:       player,
		Team:           team,
		Salary:         salary,
		YearsRemaining: 2,
		SignedAt:       time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestLedger_PayrollAndRoster(t *testing.T) {
	l := NewLedger(league.DefaultRules())
	l.UpsertContract(testContract("p1", "ORL", 30_000_000))
	l.UpsertContract(testContract("p2", "ORL", 20_000_000))
	l.UpsertContract(testContract("p3", "UTA", 10_000_000))

	assert.Equal(t, domain.Money(50_000_000), l.Payroll("ORL"))
	assert.Equal(t, 2, l.RosterSize("ORL"))
	assert.Equal(t, 1, l.RosterSize("UTA"))
	assert.Equal(t, 0, l.RosterSize("NOP"))

	c, ok := l.Contract("p1")
	require.True(t, ok)
	assert.Equal(t, domain.Money(30_000_000), c.Salary)

	_, ok = l.Contract("missing")
	assert.False(t, ok)
}

func TestLedger_CapSpaceAndStatus(t *testing.T) {
	rules := league.DefaultRules()
	l := NewLedger(rules)
	l.UpsertContract(testContract("p1", "ORL", 100_000_000))

	assert.Equal(t, rules.SalaryCap-100_000_000, l.CapSpace("ORL"))
	assert.Equal(t, domain.UnderCap, l.CapStatus("ORL"))

	l.UpsertContract(testContract("p2", "ORL", 90_000_000))
	assert.Equal(t, domain.Money(0), l.CapSpace("ORL"))
	assert.Equal(t, domain.AboveSecondApron, l.CapStatus("ORL"))
}

func TestLedger_UpsertMovesPlayerBetweenTeams(t *testing.T) {
	l := NewLedger(league.DefaultRules())
	l.UpsertContract(testContract("p1", "ORL", 10_000_000))
	l.UpsertContract(testContract("p1", "UTA", 10_000_000))

	assert.Equal(t, 0, l.RosterSize("ORL"))
	assert.Equal(t, 1, l.RosterSize("UTA"))
	assert.Equal(t, domain.Money(0), l.Payroll("ORL"))
}

func TestLedger_TransferPlayer(t *testing.T) {
	l := NewLedger(league.DefaultRules())
	l.UpsertContract(testContract("p1", "ORL", 10_000_000))

	assert.False(t, l.TransferPlayer("missing", "UTA"))
	assert.True(t, l.TransferPlayer("p1", "UTA"))
	assert.Equal(t, domain.Money(10_000_000), l.Payroll("UTA"))
	assert.Equal(t, domain.Money(0), l.Payroll("ORL"))

	c, ok := l.Contract("p1")
	require.True(t, ok)
	assert.Equal(t, "UTA", c.Team)
}

func TestLedger_ReleasePlayer(t *testing.T) {
	l := NewLedger(league.DefaultRules())
	l.UpsertContract(testContract("p1", "ORL", 10_000_000))
	l.ReleasePlayer("p1")

	assert.Equal(t, 0, l.RosterSize("ORL"))
	_, ok := l.Contract("p1")
	assert.False(t, ok)
}

func TestLedger_TeamContractsSorted(t *testing.T) {
	l := NewLedger(league.DefaultRules())
	l.UpsertContract(testContract("zz", "ORL", 1_000_000))
	l.UpsertContract(testContract("aa", "ORL", 2_000_000))

	contracts := l.TeamContracts("ORL")
	require.Len(t, contracts, 2)
	assert.Equal(t, "aa", contracts[0].PlayerID)
	assert.Equal(t, "zz", contracts[1].PlayerID)
}
