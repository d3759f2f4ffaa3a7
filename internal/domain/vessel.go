package domain

import "time"

// ZonePreference links a vessel to a yard/quay zone with the container volume
// destined for that zone. The zone with the largest volume drives the soft
// alignment term in the objective.
type ZonePreference struct {
	YardQuayZoneID int
	Volume         float64
}

// A vessel requiring berth space and crane capacity.
//
// The fields below the "derived" marker are populated once by
// services.PreprocessVessels against the shift calendar, before the model is
// built, and are read-only afterwards.
type Vessel struct {
	Name                   string
	Workload               int // total crane moves required
	LOA                    int // length over all, meters
	Draft                  float64
	ArrivalTime            time.Time
	DepartureDeadline      *time.Time
	MaxCranes              int
	ProductivityPreference ProductivityMode
	TargetZones            []ZonePreference

	// Derived by preprocessing.
	ArrivalShiftIndex   int
	ArrivalFraction     float64 // portion of the arrival shift still available
	DepartureShiftIndex int
	AvailableShifts     []int
}

// PreferredZoneID returns the target zone carrying the largest volume, or
// false when the vessel has no zone preferences.
func (v *Vessel) PreferredZoneID() (int, bool) {
	if len(v.TargetZones) == 0 {
		return 0, false
	}
	best := v.TargetZones[0]
	for _, z := range v.TargetZones[1:] {
		if z.Volume > best.Volume {
			best = z
		}
	}
	return best.YardQuayZoneID, true
}
