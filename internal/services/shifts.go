package services

import (
	"berth-planner-service/internal/domain"
	"fmt"
	"time"
)

// Shifts are fixed 6-hour blocks, four per day, starting at midnight of the
// configured start date.
const shiftDuration = 6 * time.Hour

const startDateLayout = "02012006" // DDMMYYYY

// GenerateShifts builds the planning horizon: numShifts contiguous 6-hour
// shifts starting at midnight UTC of startDate.
func GenerateShifts(startDate string, numShifts int) ([]domain.Shift, error) {
	if numShifts <= 0 {
		return nil, fmt.Errorf("generate shifts: num_shifts must be positive, got %d", numShifts)
	}

	start, err := time.ParseInLocation(startDateLayout, startDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("generate shifts: parse start date %q: %w", startDate, err)
	}

	shifts := make([]domain.Shift, 0, numShifts)
	for i := 0; i < numShifts; i++ {
		shifts = append(shifts, domain.Shift{
			ID:        i,
			StartTime: start.Add(time.Duration(i) * shiftDuration),
			EndTime:   start.Add(time.Duration(i+1) * shiftDuration),
		})
	}

	return shifts, nil
}
