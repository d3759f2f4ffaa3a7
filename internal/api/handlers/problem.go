package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"berth-planner-service/internal/api/dto"
	"berth-planner-service/internal/domain"
	"berth-planner-service/internal/ports"
)

// ProblemHandler exposes the stored problem configuration for viewing and
// replacement.
type ProblemHandler struct {
	Store ports.ConfigStore
}

func (h *ProblemHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.put(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ProblemHandler) get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Store.Load(r.Context())
	if err != nil {
		log.Printf("load problem config failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, cfg)
}

func (h *ProblemHandler) put(w http.ResponseWriter, r *http.Request) {
	var cfg domain.ProblemConfig

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&cfg); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if msg, ok := validateConfig(cfg); !ok {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	if err := h.Store.Save(r.Context(), cfg); err != nil {
		log.Printf("save problem config failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.StatusResponse{Status: "saved", Message: "problem configuration updated"})
}

func validateConfig(cfg domain.ProblemConfig) (string, bool) {
	if cfg.Berth.Length <= 0 {
		return "berth.length must be positive", false
	}
	if cfg.Shifts.NumShifts <= 0 {
		return "shifts.num_shifts must be positive", false
	}
	if len(cfg.Vessels) == 0 {
		return "at least one vessel is required", false
	}
	for _, v := range cfg.Vessels {
		if v.Name == "" {
			return "vessel name is required", false
		}
		if v.Loa <= 0 {
			return "vessel loa must be positive: " + v.Name, false
		}
		if v.Workload < 0 {
			return "vessel workload cannot be negative: " + v.Name, false
		}
	}
	if len(cfg.Cranes) == 0 {
		return "at least one crane is required", false
	}
	return "", true
}
