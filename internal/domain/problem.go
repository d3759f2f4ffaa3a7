package domain

// Full problem instance for one solve. Built once from the persisted
// configuration and treated as read-only while the solver runs.
type Problem struct {
	Berth    Berth
	Vessels  []*Vessel
	Cranes   []Crane
	Shifts   []Shift
	// Shift index -> ids of cranes available that shift. Crane maintenance
	// windows are encoded by omission.
	CraneAvailability map[int][]string
	ForbiddenZones    []ForbiddenZone
	YardQuayZones     []YardQuayZone
	// Named toggles enabling/disabling whole constraint families.
	SolverRules map[string]bool
}

func (p *Problem) NumShifts() int {
	return len(p.Shifts)
}

// Rule reports whether a constraint family is enabled, falling back to the
// given default when the toggle is absent.
func (p *Problem) Rule(name string, def bool) bool {
	if v, ok := p.SolverRules[name]; ok {
		return v
	}
	return def
}
