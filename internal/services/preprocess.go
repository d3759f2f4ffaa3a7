package services

import "berth-planner-service/internal/domain"

// PreprocessVessels derives each vessel's shift-calendar fields from its
// arrival and deadline instants. It runs once, after problem assembly and
// before model construction; the solver treats the results as read-only.
//
// Arrival shift index is the shift containing the arrival instant, 0 when the
// vessel arrives before the horizon, and len(shifts) when it arrives after
// it. Arrival fraction is the portion of the arrival shift still available on
// arrival (1.0 when the vessel is already waiting at shift start).
func PreprocessVessels(vessels []*domain.Vessel, shifts []domain.Shift) {
	numShifts := len(shifts)

	for _, v := range vessels {
		v.ArrivalShiftIndex = -1
		v.ArrivalFraction = 1.0

		for t, s := range shifts {
			if !v.ArrivalTime.Before(s.StartTime) && v.ArrivalTime.Before(s.EndTime) {
				v.ArrivalShiftIndex = t
				total := s.Duration().Seconds()
				avail := s.EndTime.Sub(v.ArrivalTime).Seconds()
				if total > 0 {
					v.ArrivalFraction = avail / total
				} else {
					v.ArrivalFraction = 0
				}
				break
			}
		}

		if numShifts > 0 && v.ArrivalTime.Before(shifts[0].StartTime) {
			v.ArrivalShiftIndex = 0
			v.ArrivalFraction = 1.0
		}
		if v.ArrivalShiftIndex == -1 {
			// Arrival beyond the horizon: the vessel cannot be worked at all.
			v.ArrivalShiftIndex = numShifts
		}

		v.DepartureShiftIndex = numShifts
		if v.DepartureDeadline != nil {
			for t, s := range shifts {
				d := *v.DepartureDeadline
				if !d.Before(s.StartTime) && !d.After(s.EndTime) {
					v.DepartureShiftIndex = t
					break
				}
			}
		}

		v.AvailableShifts = nil
		for t := v.ArrivalShiftIndex; t < numShifts; t++ {
			v.AvailableShifts = append(v.AvailableShifts, t)
		}
	}
}
