package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"berth-planner-service/internal/domain"

	glog "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"
)

// SolveOptions carries the engine invocation knobs.
type SolveOptions struct {
	// Wall-clock budget for the search; on expiry the engine returns its best
	// feasible assignment, never left running past it.
	TimeLimit time.Duration
	// Parallel search worker hint, opaque to the model.
	Workers int32
}

const (
	defaultTimeLimit = 60 * time.Second
	defaultWorkers   = 8
)

// Solve plans berth positions, berth windows and per-shift crane assignments
// for every vessel in the problem. It does not mutate the problem, and given
// a deterministic engine configuration and a sufficient budget it is
// idempotent.
//
// The returned error covers engine invocation failures only; infeasibility,
// budget exhaustion and the like are reported through Solution.Status.
func Solve(ctx context.Context, problem *domain.Problem, opts SolveOptions) (*domain.Solution, error) {
	if opts.TimeLimit <= 0 {
		opts.TimeLimit = defaultTimeLimit
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}

	// Structural infeasibility short-circuits before any model is built.
	validPositions := make([][]int64, len(problem.Vessels))
	for i, v := range problem.Vessels {
		validPositions[i] = feasiblePositions(problem.Berth, v)
		if len(validPositions[i]) == 0 {
			glog.Warningf("solve: no feasible berth position for vessel=%s draft=%.1f loa=%d margin=%dm",
				v.Name, v.Draft, v.LOA, berthMargin)
			return emptySolution(domain.StatusInfeasible), nil
		}
	}

	m := newPlanModel(problem, validPositions)
	m.addConstraints()
	m.buildObjective()

	modelProto, err := m.builder.Model()
	if err != nil {
		return nil, fmt.Errorf("solve: build model: %w", err)
	}
	glog.Infof("solve: model built vessels=%d shifts=%d moveVars=%d timeLimit=%s workers=%d",
		len(problem.Vessels), m.horizon, len(m.moveKeys), opts.TimeLimit, opts.Workers)

	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(opts.TimeLimit.Seconds()),
		NumWorkers:       proto.Int32(opts.Workers),
	}

	resp, err := cpmodel.SolveCpModelInterruptibleWithParameters(modelProto, params, ctx.Done())
	if err != nil {
		return nil, fmt.Errorf("solve: run engine: %w", err)
	}

	status := statusName(resp.GetStatus())
	glog.Infof("solve: finished status=%s objective=%.0f walltime=%.2fs",
		status, resp.GetObjectiveValue(), resp.GetWallTime())

	if status != domain.StatusOptimal && status != domain.StatusFeasible {
		return emptySolution(status), nil
	}

	return m.extractSolution(resp, status), nil
}

// extractSolution reads the solved variables back into the output aggregate,
// trimming each vessel's crane sets to its active [start, end) window.
func (m *planModel) extractSolution(resp *cmpb.CpSolverResponse, status string) *domain.Solution {
	assignments := make(map[int]map[int][]string, len(m.problem.Vessels))
	for _, key := range m.moveKeys {
		if cpmodel.SolutionIntegerValue(resp, m.moves[key]) <= 0 {
			continue
		}
		byShift := assignments[key.vessel]
		if byShift == nil {
			byShift = make(map[int][]string)
			assignments[key.vessel] = byShift
		}
		byShift[key.shift] = append(byShift[key.shift], key.craneID)
	}

	solutions := make([]domain.VesselSolution, 0, len(m.problem.Vessels))
	for i, v := range m.problem.Vessels {
		start := int(cpmodel.SolutionIntegerValue(resp, m.start[i]))
		end := int(cpmodel.SolutionIntegerValue(resp, m.end[i]))
		pos := int(cpmodel.SolutionIntegerValue(resp, m.pos[i]))

		cranes := make(map[int][]string)
		for t := start; t < end; t++ {
			if ids := assignments[i][t]; len(ids) > 0 {
				sorted := make([]string, len(ids))
				copy(sorted, ids)
				sort.Strings(sorted)
				cranes[t] = sorted
			}
		}

		solutions = append(solutions, domain.VesselSolution{
			VesselName:     v.Name,
			BerthPosition:  pos,
			StartShift:     start,
			EndShift:       end,
			AssignedCranes: cranes,
		})
	}

	return &domain.Solution{
		VesselSolutions: solutions,
		ObjectiveValue:  resp.GetObjectiveValue(),
		Status:          status,
	}
}

func emptySolution(status string) *domain.Solution {
	return &domain.Solution{
		VesselSolutions: []domain.VesselSolution{},
		ObjectiveValue:  0,
		Status:          status,
	}
}

func statusName(s cmpb.CpSolverStatus) string {
	switch s {
	case cmpb.CpSolverStatus_OPTIMAL:
		return domain.StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return domain.StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return domain.StatusInfeasible
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return domain.StatusModelInvalid
	default:
		return domain.StatusUnknown
	}
}
