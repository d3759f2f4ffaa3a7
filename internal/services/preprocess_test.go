package services

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"berth-planner-service/internal/domain"
)

func TestPreprocessVesselsArrival(t *testing.T) {
	shifts, err := GenerateShifts("31122025", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	horizon := shifts[0].StartTime

	onTime := &domain.Vessel{Name: "A", ArrivalTime: horizon}
	midShift := &domain.Vessel{Name: "B", ArrivalTime: horizon.Add(8 * time.Hour)}
	early := &domain.Vessel{Name: "C", ArrivalTime: horizon.Add(-24 * time.Hour)}
	late := &domain.Vessel{Name: "D", ArrivalTime: horizon.Add(48 * time.Hour)}

	vessels := []*domain.Vessel{onTime, midShift, early, late}
	PreprocessVessels(vessels, shifts)

	if onTime.ArrivalShiftIndex != 0 || onTime.ArrivalFraction != 1.0 {
		t.Fatalf("on-time arrival: index=%d fraction=%v, want 0 and 1.0", onTime.ArrivalShiftIndex, onTime.ArrivalFraction)
	}

	// 8h into the horizon is 2h into shift 1, leaving 4 of 6 hours.
	if midShift.ArrivalShiftIndex != 1 {
		t.Fatalf("mid-shift arrival index = %d, want 1", midShift.ArrivalShiftIndex)
	}
	if math.Abs(midShift.ArrivalFraction-4.0/6.0) > 1e-9 {
		t.Fatalf("mid-shift arrival fraction = %v, want 4/6", midShift.ArrivalFraction)
	}

	if early.ArrivalShiftIndex != 0 || early.ArrivalFraction != 1.0 {
		t.Fatalf("early arrival: index=%d fraction=%v, want 0 and 1.0", early.ArrivalShiftIndex, early.ArrivalFraction)
	}

	if late.ArrivalShiftIndex != len(shifts) {
		t.Fatalf("late arrival index = %d, want %d", late.ArrivalShiftIndex, len(shifts))
	}

	if diff := cmp.Diff([]int{1, 2, 3}, midShift.AvailableShifts); diff != "" {
		t.Fatalf("available shifts mismatch (-want +got):\n%s", diff)
	}
	if late.AvailableShifts != nil {
		t.Fatalf("late vessel available shifts = %v, want none", late.AvailableShifts)
	}
}

func TestPreprocessVesselsDeparture(t *testing.T) {
	shifts, err := GenerateShifts("31122025", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := shifts[2].EndTime
	v := &domain.Vessel{Name: "A", ArrivalTime: shifts[0].StartTime, DepartureDeadline: &deadline}
	noDeadline := &domain.Vessel{Name: "B", ArrivalTime: shifts[0].StartTime}

	PreprocessVessels([]*domain.Vessel{v, noDeadline}, shifts)

	if v.DepartureShiftIndex != 2 {
		t.Fatalf("departure shift index = %d, want 2", v.DepartureShiftIndex)
	}
	if noDeadline.DepartureShiftIndex != len(shifts) {
		t.Fatalf("no-deadline departure index = %d, want %d", noDeadline.DepartureShiftIndex, len(shifts))
	}
}
