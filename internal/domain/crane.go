package domain

type CraneType string

const (
	CraneSTS CraneType = "STS" // ship-to-shore, rail-bound
	CraneMHC CraneType = "MHC" // mobile harbor crane
)

// ProductivityMode selects which end of a crane's productivity range applies
// when the crane works a given vessel.
type ProductivityMode string

const (
	ProductivityMin          ProductivityMode = "MIN"
	ProductivityMax          ProductivityMode = "MAX"
	ProductivityIntermediate ProductivityMode = "INTERMEDIATE"
)

// A quay crane. BerthRangeStart/End delimit the quay stretch the crane can
// physically reach, in meters. Productivity is in moves per full shift.
type Crane struct {
	ID              string
	Name            string
	Type            CraneType
	BerthRangeStart int
	BerthRangeEnd   int
	MinProductivity int
	MaxProductivity int
}

// ProductivityFor returns the per-shift move limit at the given preference
// mode. INTERMEDIATE takes the floor of the range midpoint.
func (c Crane) ProductivityFor(mode ProductivityMode) int {
	switch mode {
	case ProductivityMin:
		return c.MinProductivity
	case ProductivityIntermediate:
		return (c.MinProductivity + c.MaxProductivity) / 2
	default:
		return c.MaxProductivity
	}
}
