package api

import (
	"net/http"

	"berth-planner-service/internal/api/handlers"
	"berth-planner-service/internal/ports"
	"berth-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(store ports.ConfigStore, runner *services.Runner) http.Handler {
	mux := http.NewServeMux()

	problemHandler := &handlers.ProblemHandler{Store: store}
	solveHandler := &handlers.SolveHandler{Store: store, Runner: runner}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/problem", problemHandler.Handle)
	mux.HandleFunc("/api/solve", solveHandler.Solve)
	mux.HandleFunc("/api/status", solveHandler.Status)
	mux.HandleFunc("/api/solution", solveHandler.Solution)

	return loggingMiddleware(mux)
}
