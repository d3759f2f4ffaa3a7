package services

import (
	"sort"

	"berth-planner-service/internal/domain"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// Constraint family toggles. All default to enabled except departure
// deadlines, which are derived data first and a hard rule only on request.
const (
	RuleForbiddenZones     = "enable_forbidden_zones"
	RuleCraneCapacity      = "enable_crane_capacity"
	RuleMaxCranes          = "enable_max_cranes"
	RuleMinCranesOnArrival = "enable_min_cranes_on_arrival"
	RuleCraneReach         = "enable_crane_reach"
	RuleSTSNonCrossing     = "enable_sts_non_crossing"
	RuleShiftingGang       = "enable_shifting_gang"
	RuleYardPreferences    = "enable_yard_preferences"
	RuleDepartureDeadlines = "enable_departure_deadlines"
)

func (m *planModel) addConstraints() {
	m.addBerthBounds()
	m.addNonOverlap()
	m.addWorkloadFulfillment()

	if m.problem.Rule(RuleForbiddenZones, true) {
		m.addForbiddenZones()
	}
	if m.problem.Rule(RuleCraneCapacity, true) {
		m.addCraneShiftCapacity()
	}
	if m.problem.Rule(RuleMaxCranes, true) {
		m.addMaxCranesPerVessel()
	}
	if m.problem.Rule(RuleCraneReach, true) {
		m.addCraneReach()
	}
	if m.problem.Rule(RuleSTSNonCrossing, true) {
		m.addSTSNonCrossing()
	}
	if m.problem.Rule(RuleShiftingGang, true) {
		m.addShiftingGang()
	}
	if m.problem.Rule(RuleDepartureDeadlines, false) {
		m.addDepartureDeadlines()
	}
}

// Vessels must fit between the quay-edge margins. Redundant with the position
// domains but cheap and explicit.
func (m *planModel) addBerthBounds() {
	for i, v := range m.problem.Vessels {
		m.builder.AddGreaterOrEqual(m.pos[i], cpmodel.NewConstant(berthMargin))
		footprintEnd := cpmodel.NewLinearExpr().Add(m.pos[i]).AddConstant(int64(v.LOA))
		m.builder.AddLessOrEqual(footprintEnd, cpmodel.NewConstant(int64(m.problem.Berth.Length-berthMargin)))
	}
}

// Two vessels may overlap in time only if their margin-inflated footprints do
// not overlap in space, and vice versa. This is the core packing guarantee.
func (m *planModel) addNonOverlap() {
	noOverlap := m.builder.AddNoOverlap2D()
	for i := range m.problem.Vessels {
		noOverlap.AddRectangle(m.xIntervals[i], m.yIntervals[i])
	}
}

// Each forbidden zone is a fixed, immovable rectangle that every vessel's
// space-time rectangle must avoid. Zones are paired with vessels one by one
// so that overlapping zones do not conflict with each other.
func (m *planModel) addForbiddenZones() {
	for _, z := range m.problem.ForbiddenZones {
		zx := m.builder.NewFixedSizeIntervalVar(
			cpmodel.NewConstant(int64(z.StartPosition)), int64(z.EndPosition-z.StartPosition))
		zy := m.builder.NewFixedSizeIntervalVar(
			cpmodel.NewConstant(int64(z.StartShift)), int64(z.EndShift-z.StartShift))

		for i := range m.problem.Vessels {
			pair := m.builder.AddNoOverlap2D()
			pair.AddRectangle(m.xIntervals[i], m.yIntervals[i])
			pair.AddRectangle(zx, zy)
		}
	}
}

// Total moves delivered to a vessel across all cranes and shifts must cover
// its workload. This is the only place completion is enforced.
func (m *planModel) addWorkloadFulfillment() {
	for i, v := range m.problem.Vessels {
		sum := cpmodel.NewLinearExpr()
		found := false
		for _, key := range m.moveKeys {
			if key.vessel == i {
				sum.Add(m.moves[key])
				found = true
			}
		}
		if found {
			m.builder.AddGreaterOrEqual(sum, cpmodel.NewConstant(int64(v.Workload)))
		} else if v.Workload > 0 {
			// No crane can ever serve this vessel; make it explicit.
			m.builder.AddBoolOr(m.builder.FalseVar())
		}
	}
}

// A crane's moves across all vessels in one shift cannot exceed its maximum
// productivity. Splitting the capacity across vessels (a shifting gang) is
// allowed.
func (m *planModel) addCraneShiftCapacity() {
	for t := 0; t < m.horizon; t++ {
		for _, c := range m.problem.Cranes {
			sum := cpmodel.NewLinearExpr()
			found := false
			for i := range m.problem.Vessels {
				if mv, ok := m.moves[moveKey{craneID: c.ID, vessel: i, shift: t}]; ok {
					sum.Add(mv)
					found = true
				}
			}
			if found {
				m.builder.AddLessOrEqual(sum, cpmodel.NewConstant(int64(c.MaxProductivity)))
			}
		}
	}
}

// At most MaxCranes cranes on a vessel per shift, and no idle occupancy: an
// active vessel must receive at least one move that shift.
func (m *planModel) addMaxCranesPerVessel() {
	minWork := m.problem.Rule(RuleMinCranesOnArrival, true)
	one := cpmodel.NewConstant(1)

	for i, v := range m.problem.Vessels {
		for t := 0; t < m.horizon; t++ {
			onSum := cpmodel.NewLinearExpr()
			movesSum := cpmodel.NewLinearExpr()
			found := false
			for _, c := range m.problem.Cranes {
				key := moveKey{craneID: c.ID, vessel: i, shift: t}
				if mv, ok := m.moves[key]; ok {
					onSum.Add(m.craneOn[key])
					movesSum.Add(mv)
					found = true
				}
			}

			if found {
				m.builder.AddLessOrEqual(onSum, cpmodel.NewConstant(int64(v.MaxCranes)))
				if minWork {
					m.builder.AddGreaterOrEqual(movesSum, one).OnlyEnforceIf(m.active[i][t])
				}
			} else if minWork && t >= v.ArrivalShiftIndex {
				// No crane available at all: the vessel cannot sit idle at
				// the quay through this shift.
				m.builder.AddBoolOr(m.active[i][t].Not())
			}
		}
	}
}

// A crane working a vessel must cover the vessel's entire footprint.
func (m *planModel) addCraneReach() {
	for _, key := range m.moveKeys {
		on := m.craneOn[key]
		c := m.cranesByID[key.craneID]
		v := m.problem.Vessels[key.vessel]

		m.builder.AddGreaterOrEqual(m.pos[key.vessel], cpmodel.NewConstant(int64(c.BerthRangeStart))).OnlyEnforceIf(on)
		footprintEnd := cpmodel.NewLinearExpr().Add(m.pos[key.vessel]).AddConstant(int64(v.LOA))
		m.builder.AddLessOrEqual(footprintEnd, cpmodel.NewConstant(int64(c.BerthRangeEnd))).OnlyEnforceIf(on)
	}
}

// STS cranes share one rail and cannot pass each other. With cranes ordered
// left to right, a left crane's vessel can never moor right of a right
// crane's vessel while both work in the same shift.
func (m *planModel) addSTSNonCrossing() {
	var sts []domain.Crane
	for _, c := range m.problem.Cranes {
		if c.Type == domain.CraneSTS {
			sts = append(sts, c)
		}
	}
	sort.Slice(sts, func(a, b int) bool {
		if sts[a].BerthRangeStart != sts[b].BerthRangeStart {
			return sts[a].BerthRangeStart < sts[b].BerthRangeStart
		}
		return sts[a].ID < sts[b].ID
	})

	n := len(m.problem.Vessels)
	for li := 0; li < len(sts); li++ {
		for ri := li + 1; ri < len(sts); ri++ {
			left, right := sts[li], sts[ri]

			for t := 0; t < m.horizon; t++ {
				for iA := 0; iA < n; iA++ {
					for iB := 0; iB < n; iB++ {
						if iA == iB {
							continue
						}
						leftOn, ok1 := m.craneOn[moveKey{craneID: left.ID, vessel: iA, shift: t}]
						rightOn, ok2 := m.craneOn[moveKey{craneID: right.ID, vessel: iB, shift: t}]
						if !ok1 || !ok2 {
							continue
						}
						m.builder.AddLessOrEqual(m.pos[iA], m.pos[iB]).OnlyEnforceIf(leftOn, rightOn)
					}
				}
			}
		}
	}
}

// Gangs do not fractionally work a ship except to finish it off: a crane
// active on a vessel in any shift before the vessel's last one must deliver
// exactly its per-shift limit.
func (m *planModel) addShiftingGang() {
	for _, key := range m.moveKeys {
		mv := m.moves[key]
		on := m.craneOn[key]
		end := m.end[key.vessel]
		t := key.shift

		// intermediate <=> t <= end - 2, i.e. this is not the final shift.
		intermediate := m.builder.NewBoolVar()
		m.builder.AddGreaterOrEqual(end, cpmodel.NewConstant(int64(t+2))).OnlyEnforceIf(intermediate)
		m.builder.AddLessOrEqual(end, cpmodel.NewConstant(int64(t+1))).OnlyEnforceIf(intermediate.Not())

		m.builder.AddEquality(mv, cpmodel.NewConstant(m.moveLimit[key])).OnlyEnforceIf(on, intermediate)
	}
}

// Hard departure deadlines, when the toggle asks for them: the vessel must
// clear the berth by the end of its deadline shift.
func (m *planModel) addDepartureDeadlines() {
	for i, v := range m.problem.Vessels {
		if v.DepartureDeadline == nil || v.DepartureShiftIndex >= m.horizon {
			continue
		}
		m.builder.AddLessOrEqual(m.end[i], cpmodel.NewConstant(int64(v.DepartureShiftIndex+1)))
	}
}
