package domain

// Terminal solver statuses. Only Optimal and Feasible are actionable.
const (
	StatusOptimal      = "OPTIMAL"
	StatusFeasible     = "FEASIBLE"
	StatusInfeasible   = "INFEASIBLE"
	StatusModelInvalid = "MODEL_INVALID"
	StatusUnknown      = "UNKNOWN"
)

// Planned berth window and crane schedule for a single vessel. EndShift is
// exclusive. AssignedCranes maps each active shift to the ids of the cranes
// working the vessel in that shift.
type VesselSolution struct {
	VesselName     string
	BerthPosition  int
	StartShift     int
	EndShift       int
	AssignedCranes map[int][]string
}

// Complete output of one solve. Non-actionable statuses carry an empty
// vessel-solution list and a zero objective.
type Solution struct {
	VesselSolutions []VesselSolution
	ObjectiveValue  float64
	Status          string
}

// Actionable reports whether the solution contains a usable assignment.
func (s *Solution) Actionable() bool {
	return s.Status == StatusOptimal || s.Status == StatusFeasible
}
