package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"berth-planner-service/internal/api/dto"
	"berth-planner-service/internal/ports"
	"berth-planner-service/internal/services"
)

// SolveHandler starts solver runs and reports their progress and results.
type SolveHandler struct {
	Store  ports.ConfigStore
	Runner *services.Runner
}

// Solve kicks off a background solve of the stored configuration. A second
// request while one is running gets a 409.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cfg, err := h.Store.Load(r.Context())
	if err != nil {
		log.Printf("load problem config failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.Runner.Start(cfg); err != nil {
		if errors.Is(err, services.ErrSolveInFlight) {
			writeError(w, r, http.StatusConflict, "solver already running")
			return
		}
		log.Printf("start solve failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusAccepted, dto.StatusResponse{
		Running: true,
		Status:  "running",
		Message: "solver started",
	})
}

// Status reports the current runner state, including the text report after a
// completed run.
func (h *SolveHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	st := h.Runner.Status()
	writeJSON(w, r, http.StatusOK, dto.StatusResponse{
		Running:      st.Running,
		Status:       st.Status,
		Message:      st.Message,
		SolutionText: st.Report,
	})
}

// Solution returns the structured result of the last completed run.
func (h *SolveHandler) Solution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	solution, ok := h.Runner.Solution()
	if !ok {
		writeError(w, r, http.StatusNotFound, "no solution available")
		return
	}

	res := dto.SolutionResponse{
		Status:         solution.Status,
		ObjectiveValue: solution.ObjectiveValue,
		Vessels:        make([]dto.VesselSolutionResponse, 0, len(solution.VesselSolutions)),
	}
	for _, vs := range solution.VesselSolutions {
		cranes := make(map[string][]string, len(vs.AssignedCranes))
		for shift, names := range vs.AssignedCranes {
			cranes[strconv.Itoa(shift)] = names
		}
		res.Vessels = append(res.Vessels, dto.VesselSolutionResponse{
			VesselName:     vs.VesselName,
			BerthPosition:  vs.BerthPosition,
			StartShift:     vs.StartShift,
			EndShift:       vs.EndShift,
			AssignedCranes: cranes,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
