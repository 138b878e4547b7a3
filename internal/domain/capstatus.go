package domain

// CapStatus is a team's cap tier as classified by the cap ledger. The values
// form an ordered scale: each tier is strictly more restricted than the one
// below it, and rule selection compares tiers with AtLeast rather than
// matching exact values.
type CapStatus int

const (
	UnderCap CapStatus = iota
	BelowFirstApron
	AboveFirstApron
	AboveSecondApron
)

// AtLeast reports whether the status is at or above the given tier.
func (s CapStatus) AtLeast(tier CapStatus) bool {
	return s >= tier
}

func (s CapStatus) String() string {
	switch s {
	case UnderCap:
		return "under_cap"
	case BelowFirstApron:
		return "below_first_apron"
	case AboveFirstApron:
		return "above_first_apron"
	case AboveSecondApron:
		return "above_second_apron"
	default:
		return "unknown"
	}
}
