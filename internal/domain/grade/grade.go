// Package grade models the four ordinal seniority bands.
package grade

import "strings"

// Grade is an ordinal seniority band. The zero value is not a valid grade.
type Grade int

// Seniority bands in ascending order.
const (
	Junior Grade = iota + 1
	Middle
	Senior
	Lead
)

// Default is assumed when a query does not reveal a seniority level.
const Default = Middle

var names = map[Grade]string{
	Junior: "Junior",
	Middle: "Middle",
	Senior: "Senior",
	Lead:   "Lead",
}

// String returns the canonical grade name ("Junior", "Middle", ...).
func (g Grade) String() string {
	if n, ok := names[g]; ok {
		return n
	}
	return "Unknown"
}

// IsValid reports whether g is one of the four bands.
func (g Grade) IsValid() bool {
	return g >= Junior && g <= Lead
}

// Parse maps a grade name to a Grade, case-insensitively.
// Unknown or empty names yield Default.
func Parse(s string) Grade {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "junior":
		return Junior
	case "middle":
		return Middle
	case "senior":
		return Senior
	case "lead":
		return Lead
	default:
		return Default
	}
}

// FromTenure maps whole years of experience to a band:
// [0,2) junior, [2,4) middle, [4,6) senior, 6+ lead. Negative tenure counts as junior.
func FromTenure(years int) Grade {
	switch {
	case years < 2:
		return Junior
	case years < 4:
		return Middle
	case years < 6:
		return Senior
	default:
		return Lead
	}
}

// Score rates how close two bands are: same 1.0, one apart 0.8, two apart 0.4, otherwise 0.1.
// Symmetric in its arguments.
func Score(a, b Grade) float64 {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	switch d {
	case 0:
		return 1.0
	case 1:
		return 0.8
	case 2:
		return 0.4
	default:
		return 0.1
	}
}
