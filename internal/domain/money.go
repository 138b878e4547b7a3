package domain

import (
	"fmt"
	"strconv"
)

// Money is a whole-dollar amount. Salary-band thresholds are exact figures,
// so all cap math stays in integer arithmetic.
type Money int64

const (
	Thousand Money = 1_000
	Million  Money = 1_000_000
)

// Millions returns the amount in millions of dollars for scoring math.
func (m Money) Millions() float64 {
	return float64(m) / float64(Million)
}

// String renders the amount as a dollar figure with thousands separators,
// e.g. "$7,500,000". Issue messages embed these verbatim.
func (m Money) String() string {
	neg := m < 0
	if neg {
		m = -m
	}
	s := strconv.FormatInt(int64(m), 10)
	out := make([]byte, 0, len(s)+len(s)/3+2)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return fmt.Sprintf("-$%s", out)
	}
	return fmt.Sprintf("$%s", out)
}
