package services

import (
	"berth-planner-service/internal/domain"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// moveKey identifies one (crane, vessel index, shift index) move variable.
type moveKey struct {
	craneID string
	vessel  int
	shift   int
}

// planModel carries the CP-SAT builder and every decision variable of one
// solve. Construction is a deterministic sequential build; the constraint
// families in constraints.go and the objective in objective.go all operate
// on these tables.
type planModel struct {
	builder *cpmodel.Builder
	problem *domain.Problem
	horizon int

	pos      []cpmodel.IntVar
	start    []cpmodel.IntVar
	end      []cpmodel.IntVar
	duration []cpmodel.IntVar

	// active[i][t] reifies exactly start[i] <= t < end[i]; the two halves are
	// kept as separate literals because several constraint families reuse them.
	active     [][]cpmodel.BoolVar
	afterStart [][]cpmodel.BoolVar
	beforeEnd  [][]cpmodel.BoolVar

	// Per-(crane, vessel, shift) move counts with their upper bounds, plus
	// the "crane works vessel this shift" indicators reified from moves > 0.
	moves     map[moveKey]cpmodel.IntVar
	moveLimit map[moveKey]int64
	craneOn   map[moveKey]cpmodel.BoolVar
	// moveKeys preserves registration order so constraint and objective
	// construction stays deterministic across runs.
	moveKeys []moveKey

	// One (spatial, temporal) rectangle per vessel, shared by the global
	// non-overlap and the forbidden-zone constraints. The spatial interval is
	// inflated by the berth margin so non-overlap implies clearance.
	xIntervals []cpmodel.IntervalVar
	yIntervals []cpmodel.IntervalVar

	cranesByID map[string]domain.Crane
	available  map[int]map[string]bool // shift -> crane id set
}

// newPlanModel registers all decision variables for the problem.
// validPositions must hold one non-empty feasible position set per vessel.
func newPlanModel(problem *domain.Problem, validPositions [][]int64) *planModel {
	m := &planModel{
		builder:    cpmodel.NewCpModelBuilder(),
		problem:    problem,
		horizon:    problem.NumShifts(),
		moves:      make(map[moveKey]cpmodel.IntVar),
		moveLimit:  make(map[moveKey]int64),
		craneOn:    make(map[moveKey]cpmodel.BoolVar),
		cranesByID: make(map[string]domain.Crane, len(problem.Cranes)),
		available:  make(map[int]map[string]bool, problem.NumShifts()),
	}

	for _, c := range problem.Cranes {
		m.cranesByID[c.ID] = c
	}
	for t := 0; t < m.horizon; t++ {
		set := make(map[string]bool)
		for _, id := range problem.CraneAvailability[t] {
			set[id] = true
		}
		m.available[t] = set
	}

	m.buildPositionVars(validPositions)
	m.buildScheduleVars()
	m.buildMoveVars()
	m.buildIntervals()

	return m
}

func (m *planModel) buildPositionVars(validPositions [][]int64) {
	m.pos = make([]cpmodel.IntVar, len(m.problem.Vessels))
	for i, v := range m.problem.Vessels {
		// An exact domain, not min/max bounds: depth steps can punch holes
		// into the feasible position range.
		dom := cpmodel.FromValues(validPositions[i])
		m.pos[i] = m.builder.NewIntVarFromDomain(dom).WithName("pos_" + v.Name)
	}
}

func (m *planModel) buildScheduleVars() {
	n := len(m.problem.Vessels)
	T := m.horizon

	m.start = make([]cpmodel.IntVar, n)
	m.end = make([]cpmodel.IntVar, n)
	m.duration = make([]cpmodel.IntVar, n)
	m.active = make([][]cpmodel.BoolVar, n)
	m.afterStart = make([][]cpmodel.BoolVar, n)
	m.beforeEnd = make([][]cpmodel.BoolVar, n)

	for i, v := range m.problem.Vessels {
		minStart := clampShift(v.ArrivalShiftIndex, T)

		m.start[i] = m.builder.NewIntVar(int64(minStart), int64(T-1)).WithName("start_" + v.Name)
		m.end[i] = m.builder.NewIntVar(int64(minStart+1), int64(T)).WithName("end_" + v.Name)
		m.duration[i] = m.builder.NewIntVar(1, int64(T)).WithName("dur_" + v.Name)

		m.builder.AddEquality(m.end[i], cpmodel.NewLinearExpr().Add(m.start[i]).Add(m.duration[i]))

		m.active[i] = make([]cpmodel.BoolVar, T)
		m.afterStart[i] = make([]cpmodel.BoolVar, T)
		m.beforeEnd[i] = make([]cpmodel.BoolVar, T)

		for t := 0; t < T; t++ {
			shift := cpmodel.NewConstant(int64(t))

			afterStart := m.builder.NewBoolVar()
			m.builder.AddLessOrEqual(m.start[i], shift).OnlyEnforceIf(afterStart)
			m.builder.AddGreaterOrEqual(m.start[i], cpmodel.NewConstant(int64(t+1))).OnlyEnforceIf(afterStart.Not())

			beforeEnd := m.builder.NewBoolVar()
			m.builder.AddGreaterOrEqual(m.end[i], cpmodel.NewConstant(int64(t+1))).OnlyEnforceIf(beforeEnd)
			m.builder.AddLessOrEqual(m.end[i], shift).OnlyEnforceIf(beforeEnd.Not())

			// active <=> afterStart AND beforeEnd, both directions. Per-shift
			// constraint families depend on this being an exact iff.
			active := m.builder.NewBoolVar()
			m.builder.AddBoolAnd(afterStart, beforeEnd).OnlyEnforceIf(active)
			m.builder.AddBoolOr(afterStart.Not(), beforeEnd.Not()).OnlyEnforceIf(active.Not())

			m.afterStart[i][t] = afterStart
			m.beforeEnd[i][t] = beforeEnd
			m.active[i][t] = active
		}
	}
}

func (m *planModel) buildMoveVars() {
	zero := cpmodel.NewConstant(0)
	one := cpmodel.NewConstant(1)

	for t := 0; t < m.horizon; t++ {
		for _, c := range m.problem.Cranes {
			if !m.available[t][c.ID] {
				continue
			}

			for i, v := range m.problem.Vessels {
				if t < v.ArrivalShiftIndex {
					continue
				}

				limit := moveLimitFor(c, v, t)
				if limit <= 0 {
					continue
				}

				key := moveKey{craneID: c.ID, vessel: i, shift: t}
				mv := m.builder.NewIntVar(0, limit)
				m.moves[key] = mv
				m.moveLimit[key] = limit
				m.moveKeys = append(m.moveKeys, key)

				// No work outside the vessel's berth window.
				m.builder.AddEquality(mv, zero).OnlyEnforceIf(m.active[i][t].Not())
				m.builder.AddEquality(mv, zero).OnlyEnforceIf(m.afterStart[i][t].Not())

				on := m.builder.NewBoolVar()
				m.builder.AddGreaterOrEqual(mv, one).OnlyEnforceIf(on)
				m.builder.AddEquality(mv, zero).OnlyEnforceIf(on.Not())
				m.craneOn[key] = on
			}
		}
	}
}

func (m *planModel) buildIntervals() {
	n := len(m.problem.Vessels)
	m.xIntervals = make([]cpmodel.IntervalVar, n)
	m.yIntervals = make([]cpmodel.IntervalVar, n)

	for i, v := range m.problem.Vessels {
		m.xIntervals[i] = m.builder.NewFixedSizeIntervalVar(m.pos[i], int64(v.LOA+berthMargin))
		m.yIntervals[i] = m.builder.NewIntervalVar(m.start[i], m.duration[i], m.end[i])
	}
}

// moveLimitFor returns the per-shift move cap of a crane on a vessel: the
// crane's productivity at the vessel's preference mode, scaled down by the
// arrival fraction in the vessel's arrival shift.
func moveLimitFor(c domain.Crane, v *domain.Vessel, shift int) int64 {
	limit := c.ProductivityFor(v.ProductivityPreference)
	if shift == v.ArrivalShiftIndex {
		limit = int(float64(limit) * v.ArrivalFraction)
	}
	return int64(limit)
}

// clampShift keeps an arrival index inside valid variable bounds; a vessel
// arriving beyond the horizon still needs well-formed variables, and its
// workload constraint makes the model infeasible instead.
func clampShift(idx, horizon int) int {
	if idx < 0 {
		return 0
	}
	if idx >= horizon {
		return horizon - 1
	}
	return idx
}
