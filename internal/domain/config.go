package domain

// ProblemConfig is the persisted problem definition document, edited through
// the HTTP API and stored as a single JSON row. services.BuildProblem turns
// it into a Problem value.
type ProblemConfig struct {
	Berth               BerthConfig               `json:"berth"`
	Shifts              ShiftsConfig              `json:"shifts"`
	Vessels             []VesselConfig            `json:"vessels"`
	Cranes              []CraneConfig             `json:"cranes"`
	CraneUnavailability []CraneUnavailability     `json:"crane_unavailability,omitempty"`
	ForbiddenZones      []ForbiddenZoneConfig     `json:"forbidden_zones,omitempty"`
	YardQuayZones       []YardQuayZoneConfig      `json:"yard_quay_zones,omitempty"`
	SolverRules         map[string]bool           `json:"solver_rules,omitempty"`
	SolverSettings      SolverSettings            `json:"solver_settings"`
}

type BerthConfig struct {
	Length   int                `json:"length"`
	Depth    *float64           `json:"depth,omitempty"`
	DepthMap []DepthPointConfig `json:"depth_map,omitempty"`
}

type DepthPointConfig struct {
	Position int     `json:"position"`
	Depth    float64 `json:"depth"`
}

type ShiftsConfig struct {
	StartDate string `json:"start_date"` // DDMMYYYY
	NumShifts int    `json:"num_shifts"`
}

type VesselConfig struct {
	Name                   string                 `json:"name"`
	Workload               int                    `json:"workload"`
	Loa                    int                    `json:"loa"`
	Draft                  float64                `json:"draft"`
	ArrivalShift           int                    `json:"arrival_shift"`
	ArrivalHourOffset      int                    `json:"arrival_hour_offset"`
	DepartureShift         *int                   `json:"departure_shift,omitempty"`
	MaxCranes              int                    `json:"max_cranes"`
	ProductivityPreference string                 `json:"productivity_preference"`
	TargetZones            []ZonePreferenceConfig `json:"target_zones,omitempty"`
}

type ZonePreferenceConfig struct {
	YardQuayZoneID int     `json:"yard_quay_zone_id"`
	Volume         float64 `json:"volume"`
}

type CraneConfig struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CraneType       string `json:"crane_type"`
	BerthRangeStart int    `json:"berth_range_start"`
	BerthRangeEnd   int    `json:"berth_range_end"`
	MinProductivity int    `json:"min_productivity"`
	MaxProductivity int    `json:"max_productivity"`
}

type CraneUnavailability struct {
	CraneID string `json:"crane_id"`
	Shifts  []int  `json:"shifts"`
}

type ForbiddenZoneConfig struct {
	StartBerthPosition int    `json:"start_berth_position"`
	EndBerthPosition   int    `json:"end_berth_position"`
	StartShift         int    `json:"start_shift"`
	EndShift           int    `json:"end_shift"`
	Description        string `json:"description,omitempty"`
}

type YardQuayZoneConfig struct {
	ID        int `json:"id"`
	StartDist int `json:"start_dist"`
	EndDist   int `json:"end_dist"`
}

type SolverSettings struct {
	TimeLimitSeconds int `json:"time_limit_seconds"`
	NumWorkers       int `json:"num_workers,omitempty"`
}
