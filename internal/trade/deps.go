package trade

import "github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"

// CapLedger is the salary bookkeeping collaborator. The engine only issues
// point reads; implementations must be safe for concurrent readers.
type CapLedger interface {
	CapSpace(team string) domain.Money
	CapStatus(team string) domain.CapStatus
	Contract(playerID string) (domain.Contract, bool)
	RosterSize(team string) int
	Payroll(team string) domain.Money
}

// PickRegistry answers future draft pick ownership questions. A populated
// pickregistry.Registry is the source of truth; pickregistry.DefaultOwnership
// satisfies the same contract as a development stub.
type PickRegistry interface {
	OwnedFirstRoundYears(team string) []int
	ValidateStepienRule(team string, outgoingYears []int, currentYear int) bool
}
