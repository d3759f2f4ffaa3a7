package services

import "github.com/google/or-tools/ortools/sat/go/cpmodel"

// Objective weights. The magnitudes encode a strict priority order inside a
// single linear cost: starting on time dominates everything, then short
// turnaround, then makespan, then crane utilization (a reward, so the solver
// prefers working vessels hard over stretching them out), and finally yard
// alignment, which must never be able to delay a start.
const (
	weightStartDelay = 5000
	weightTurnaround = 500
	weightMakespan   = 100
	weightCraneUse   = -100
	weightYardDist   = 1
)

// buildObjective composes the weighted linear cost and registers it with the
// builder for minimization.
func (m *planModel) buildObjective() {
	obj := cpmodel.NewLinearExpr()
	T := int64(m.horizon)

	for i, v := range m.problem.Vessels {
		arrival := int64(clampShift(v.ArrivalShiftIndex, m.horizon))

		// start - arrival and end - arrival, folded straight into the cost.
		obj.AddTerm(m.start[i], weightStartDelay)
		obj.AddConstant(-weightStartDelay * arrival)
		obj.AddTerm(m.end[i], weightTurnaround)
		obj.AddConstant(-weightTurnaround * arrival)
	}

	makespan := m.builder.NewIntVar(0, T).WithName("makespan")
	for i := range m.problem.Vessels {
		m.builder.AddGreaterOrEqual(makespan, m.end[i])
	}
	obj.AddTerm(makespan, weightMakespan)

	for _, key := range m.moveKeys {
		obj.AddTerm(m.craneOn[key], weightCraneUse)
	}

	if m.problem.Rule(RuleYardPreferences, true) {
		for _, dist := range m.buildYardDistances() {
			obj.AddTerm(dist, weightYardDist)
		}
	}

	m.builder.Minimize(obj)
}

// buildYardDistances creates, for every vessel with a preferred yard zone,
// a variable holding |footprint center - zone center|.
func (m *planModel) buildYardDistances() []cpmodel.IntVar {
	zones := make(map[int]int, len(m.problem.YardQuayZones)) // id -> center
	for _, z := range m.problem.YardQuayZones {
		zones[z.ID] = z.Center()
	}

	var dists []cpmodel.IntVar
	for i, v := range m.problem.Vessels {
		zoneID, ok := v.PreferredZoneID()
		if !ok {
			continue
		}
		center, ok := zones[zoneID]
		if !ok {
			continue
		}

		// vessel center = pos + loa/2; dist >= +-(vessel center - zone center)
		dist := m.builder.NewIntVar(0, int64(m.problem.Berth.Length)).WithName("yard_dist_" + v.Name)
		offset := int64(v.LOA/2 - center)
		m.builder.AddGreaterOrEqual(dist, cpmodel.NewLinearExpr().Add(m.pos[i]).AddConstant(offset))
		m.builder.AddGreaterOrEqual(dist, cpmodel.NewLinearExpr().AddTerm(m.pos[i], -1).AddConstant(-offset))
		dists = append(dists, dist)
	}

	return dists
}
