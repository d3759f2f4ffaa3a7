package dto

// StatusResponse reports the solver run state. SolutionText carries the
// human-readable plan once a run has completed.
type StatusResponse struct {
	Running      bool   `json:"running"`
	Status       string `json:"status"`
	Message      string `json:"message"`
	SolutionText string `json:"solution_text,omitempty"`
}

type VesselSolutionResponse struct {
	VesselName     string              `json:"vessel_name"`
	BerthPosition  int                 `json:"berth_position"`
	StartShift     int                 `json:"start_shift"`
	EndShift       int                 `json:"end_shift"`
	AssignedCranes map[string][]string `json:"assigned_cranes"`
}

type SolutionResponse struct {
	Status         string                   `json:"status"`
	ObjectiveValue float64                  `json:"objective_value"`
	Vessels        []VesselSolutionResponse `json:"vessels"`
}
