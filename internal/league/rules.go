// Package league holds the collective-bargaining constant tables: cap lines,
// apron thresholds, exception amounts, matching bands, and the trade
// deadline formula. It supplies values, never verdicts.
package league

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
)

// Rules is the league constant table for one season. Values load from YAML
// with compiled-in defaults; the matching-band figures are exact and must
// not be rounded or simplified.
type Rules struct {
	SalaryCap   domain.Money `yaml:"salary_cap"`
	TaxLine     domain.Money `yaml:"tax_line"`
	FirstApron  domain.Money `yaml:"first_apron"`
	SecondApron domain.Money `yaml:"second_apron"`

	// Salary matching bands for over-the-cap teams.
	Matching MatchingBands `yaml:"matching"`

	// Roster bounds enforced on every trade.
	MaxRosterSize int `yaml:"max_roster_size"`
	MinRosterSize int `yaml:"min_roster_size"`

	// Exception amounts, consumed by signing logic outside this subsystem.
	MidLevelException domain.Money `yaml:"mid_level_exception"`
	BiAnnualException domain.Money `yaml:"bi_annual_exception"`

	// Contract term limits.
	MaxContractYears int `yaml:"max_contract_years"`

	// How far into the future a second-apron team may trade a pick.
	MaxPickYearsOut int `yaml:"max_pick_years_out"`

	// Stepien ownership horizon in years.
	PickWindowYears int `yaml:"pick_window_years"`
}

// MatchingBands carries the salary-matching step function constants.
type MatchingBands struct {
	SmallBandCeiling domain.Money `yaml:"small_band_ceiling"` // double-plus-allowance band upper bound
	MidBandCeiling   domain.Money `yaml:"mid_band_ceiling"`   // flat-premium band upper bound
	MidBandPremium   domain.Money `yaml:"mid_band_premium"`   // flat premium added in the mid band
	Allowance        domain.Money `yaml:"allowance"`          // fixed allowance in small/large bands
}

// DefaultRules returns the current-season constant table.
func DefaultRules() *Rules {
	return &Rules{
		SalaryCap:   140_588_000,
		TaxLine:     170_814_000,
		FirstApron:  178_132_000,
		SecondApron: 188_931_000,
		Matching: MatchingBands{
			SmallBandCeiling: 7_500_000,
			MidBandCeiling:   29_000_000,
			MidBandPremium:   7_500_000,
			Allowance:        250_000,
		},
		MaxRosterSize:     15,
		MinRosterSize:     12,
		MidLevelException: 12_822_000,
		BiAnnualException: 4_516_000,
		MaxContractYears:  5,
		MaxPickYearsOut:   6,
		PickWindowYears:   7,
	}
}

// LoadRules reads a YAML rule table from disk, filling unset fields from the
// defaults.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read league rules: %w", err)
	}
	rules := DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse league rules YAML: %w", err)
	}
	return rules, nil
}

// StatusFor classifies a payroll against the tier thresholds. Ledger
// implementations use this; the validation engine only consumes the result.
func (r *Rules) StatusFor(payroll domain.Money) domain.CapStatus {
	switch {
	case payroll >= r.SecondApron:
		return domain.AboveSecondApron
	case payroll >= r.FirstApron:
		return domain.AboveFirstApron
	case payroll >= r.SalaryCap:
		return domain.BelowFirstApron
	default:
		return domain.UnderCap
	}
}

// CapSpaceFor is the headroom below the cap, floored at zero.
func (r *Rules) CapSpaceFor(payroll domain.Money) domain.Money {
	if payroll >= r.SalaryCap {
		return 0
	}
	return r.SalaryCap - payroll
}

// SeasonEndYear maps a calendar date to the year the season it falls in ends.
// A season spans October through June; any date from July onward belongs to
// the season ending the following summer.
func SeasonEndYear(d time.Time) int {
	if d.Month() >= time.July {
		return d.Year() + 1
	}
	return d.Year()
}

// TradeDeadline computes the deadline for the season ending in the given
// year: 3pm Eastern on the first Thursday on or after February 5.
func TradeDeadline(seasonEndYear int) time.Time {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.FixedZone("EST", -5*3600)
	}
	d := time.Date(seasonEndYear, time.February, 5, 15, 0, 0, 0, loc)
	for d.Weekday() != time.Thursday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// PastTradeDeadline reports whether d falls after the deadline of its own
// season.
func PastTradeDeadline(d time.Time) bool {
	return d.After(TradeDeadline(SeasonEndYear(d)))
}
