package services

import "berth-planner-service/internal/domain"

// berthMargin is the minimum clearance in meters kept between a vessel and
// the quay edges, and between any two moored vessels.
const berthMargin = 40

// feasiblePositions enumerates the integer quay positions where the vessel's
// full footprint fits inside the margins and every meter of it has depth at
// least the vessel's draft. An empty result means the vessel cannot be placed
// at all and the whole solve is structurally infeasible.
//
// The result can be discontiguous when the depth profile steps below the
// draft mid-quay, so callers must use it as an exact variable domain rather
// than min/max bounds.
func feasiblePositions(berth domain.Berth, v *domain.Vessel) []int64 {
	first := berthMargin
	last := berth.Length - v.LOA - berthMargin

	var positions []int64
	for p := first; p <= last; p++ {
		if footprintDepthOK(berth, p, v.LOA, v.Draft) {
			positions = append(positions, int64(p))
		}
	}
	return positions
}

func footprintDepthOK(berth domain.Berth, position, loa int, draft float64) bool {
	for m := 0; m < loa; m++ {
		if berth.DepthAt(position+m) < draft {
			return false
		}
	}
	return true
}
