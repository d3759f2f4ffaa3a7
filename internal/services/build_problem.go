package services

import (
	"fmt"
	"time"

	"berth-planner-service/internal/domain"
)

// BuildProblem turns the persisted configuration document into a fully
// preprocessed Problem: shift calendar generated, arrival/departure instants
// resolved, vessel derived fields computed and crane availability expanded.
func BuildProblem(cfg domain.ProblemConfig) (*domain.Problem, error) {
	shifts, err := GenerateShifts(cfg.Shifts.StartDate, cfg.Shifts.NumShifts)
	if err != nil {
		return nil, fmt.Errorf("build problem: %w", err)
	}

	depthMap := make([]domain.DepthPoint, 0, len(cfg.Berth.DepthMap))
	for _, p := range cfg.Berth.DepthMap {
		depthMap = append(depthMap, domain.DepthPoint{Position: p.Position, Depth: p.Depth})
	}
	berth := domain.NewBerth(cfg.Berth.Length, cfg.Berth.Depth, depthMap)

	vessels := make([]*domain.Vessel, 0, len(cfg.Vessels))
	for _, vc := range cfg.Vessels {
		mode, err := parseProductivityMode(vc.ProductivityPreference)
		if err != nil {
			return nil, fmt.Errorf("build problem: vessel %q: %w", vc.Name, err)
		}

		v := &domain.Vessel{
			Name:                   vc.Name,
			Workload:               vc.Workload,
			LOA:                    vc.Loa,
			Draft:                  vc.Draft,
			ArrivalTime:            instantAt(shifts, vc.ArrivalShift, vc.ArrivalHourOffset),
			MaxCranes:              vc.MaxCranes,
			ProductivityPreference: mode,
		}
		if vc.DepartureShift != nil {
			deadline := instantAt(shifts, *vc.DepartureShift, 0).Add(shiftDuration)
			v.DepartureDeadline = &deadline
		}
		for _, z := range vc.TargetZones {
			v.TargetZones = append(v.TargetZones, domain.ZonePreference{
				YardQuayZoneID: z.YardQuayZoneID,
				Volume:         z.Volume,
			})
		}
		vessels = append(vessels, v)
	}

	PreprocessVessels(vessels, shifts)

	cranes := make([]domain.Crane, 0, len(cfg.Cranes))
	for _, cc := range cfg.Cranes {
		craneType, err := parseCraneType(cc.CraneType)
		if err != nil {
			return nil, fmt.Errorf("build problem: crane %q: %w", cc.ID, err)
		}
		cranes = append(cranes, domain.Crane{
			ID:              cc.ID,
			Name:            cc.Name,
			Type:            craneType,
			BerthRangeStart: cc.BerthRangeStart,
			BerthRangeEnd:   cc.BerthRangeEnd,
			MinProductivity: cc.MinProductivity,
			MaxProductivity: cc.MaxProductivity,
		})
	}

	// Maintenance windows are encoded by omission: a crane is available every
	// shift except those listed in its unavailability entries.
	unavailable := make(map[int]map[string]bool)
	for _, entry := range cfg.CraneUnavailability {
		for _, s := range entry.Shifts {
			if unavailable[s] == nil {
				unavailable[s] = make(map[string]bool)
			}
			unavailable[s][entry.CraneID] = true
		}
	}
	availability := make(map[int][]string, len(shifts))
	for t := range shifts {
		ids := make([]string, 0, len(cranes))
		for _, c := range cranes {
			if !unavailable[t][c.ID] {
				ids = append(ids, c.ID)
			}
		}
		availability[t] = ids
	}

	zones := make([]domain.ForbiddenZone, 0, len(cfg.ForbiddenZones))
	for _, zc := range cfg.ForbiddenZones {
		zones = append(zones, domain.ForbiddenZone{
			StartPosition: zc.StartBerthPosition,
			EndPosition:   zc.EndBerthPosition,
			StartShift:    zc.StartShift,
			EndShift:      zc.EndShift,
			Description:   zc.Description,
		})
	}

	yardZones := make([]domain.YardQuayZone, 0, len(cfg.YardQuayZones))
	for _, yc := range cfg.YardQuayZones {
		yardZones = append(yardZones, domain.YardQuayZone{
			ID:        yc.ID,
			StartDist: yc.StartDist,
			EndDist:   yc.EndDist,
		})
	}

	return &domain.Problem{
		Berth:             berth,
		Vessels:           vessels,
		Cranes:            cranes,
		Shifts:            shifts,
		CraneAvailability: availability,
		ForbiddenZones:    zones,
		YardQuayZones:     yardZones,
		SolverRules:       cfg.SolverRules,
	}, nil
}

// instantAt resolves a (shift index, hour offset) pair against the calendar.
// Indices beyond the horizon extrapolate past the last shift so that "arrives
// after the plan ends" stays representable.
func instantAt(shifts []domain.Shift, shiftIdx, hourOffset int) time.Time {
	if shiftIdx >= len(shifts) {
		last := shifts[len(shifts)-1]
		return last.EndTime.Add(time.Duration(shiftIdx-len(shifts)+1) * shiftDuration).
			Add(time.Duration(hourOffset) * time.Hour)
	}
	return shifts[shiftIdx].StartTime.Add(time.Duration(hourOffset) * time.Hour)
}

func parseProductivityMode(s string) (domain.ProductivityMode, error) {
	switch domain.ProductivityMode(s) {
	case domain.ProductivityMin, domain.ProductivityMax, domain.ProductivityIntermediate:
		return domain.ProductivityMode(s), nil
	case "":
		return domain.ProductivityIntermediate, nil
	default:
		return "", fmt.Errorf("unknown productivity preference %q", s)
	}
}

func parseCraneType(s string) (domain.CraneType, error) {
	switch domain.CraneType(s) {
	case domain.CraneSTS, domain.CraneMHC:
		return domain.CraneType(s), nil
	default:
		return "", fmt.Errorf("unknown crane type %q", s)
	}
}
