package services

import (
	"fmt"
	"strings"

	"berth-planner-service/internal/domain"
)

const reportTimeLayout = "2006-01-02 15:04"

// FormatSolution renders a plain-text berth plan for humans. Vessels appear
// in solution order; shifts without assigned cranes are printed as idle.
func FormatSolution(problem *domain.Problem, solution *domain.Solution) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Status: %s", solution.Status)
	if solution.Actionable() {
		fmt.Fprintf(&b, " (objective %.0f)", solution.ObjectiveValue)
	}
	b.WriteString("\n")

	if !solution.Actionable() {
		b.WriteString("No berth plan available.\n")
		return b.String()
	}

	vesselsByName := make(map[string]*domain.Vessel, len(problem.Vessels))
	for _, v := range problem.Vessels {
		vesselsByName[v.Name] = v
	}

	for _, vs := range solution.VesselSolutions {
		b.WriteString(strings.Repeat("-", 60))
		b.WriteString("\n")

		loa := 0
		if v, ok := vesselsByName[vs.VesselName]; ok {
			loa = v.LOA
		}
		fmt.Fprintf(&b, "%s  berth %d-%d  shifts %d-%d",
			vs.VesselName, vs.BerthPosition, vs.BerthPosition+loa, vs.StartShift, vs.EndShift-1)

		if vs.StartShift >= 0 && vs.EndShift <= len(problem.Shifts) && vs.StartShift < vs.EndShift {
			from := problem.Shifts[vs.StartShift].StartTime
			to := problem.Shifts[vs.EndShift-1].EndTime
			fmt.Fprintf(&b, "  (%s -> %s UTC)", from.UTC().Format(reportTimeLayout), to.UTC().Format(reportTimeLayout))
		}
		b.WriteString("\n")

		for t := vs.StartShift; t < vs.EndShift; t++ {
			cranes := vs.AssignedCranes[t]
			if len(cranes) == 0 {
				fmt.Fprintf(&b, "  shift %d: idle\n", t)
				continue
			}
			fmt.Fprintf(&b, "  shift %d: %s\n", t, strings.Join(cranes, ", "))
		}
	}

	return b.String()
}
