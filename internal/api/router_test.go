package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"berth-planner-service/internal/adapters/repositories"
	"berth-planner-service/internal/api/dto"
	"berth-planner-service/internal/domain"
	"berth-planner-service/internal/services"
)

func testConfig() domain.ProblemConfig {
	return domain.ProblemConfig{
		Berth:  domain.BerthConfig{Length: 1000, DepthMap: []domain.DepthPointConfig{{Position: 0, Depth: 16.0}}},
		Shifts: domain.ShiftsConfig{StartDate: "31122025", NumShifts: 6},
		Vessels: []domain.VesselConfig{
			{Name: "V1", Workload: 100, Loa: 200, Draft: 12.0, MaxCranes: 2, ProductivityPreference: "MAX"},
		},
		Cranes: []domain.CraneConfig{
			{ID: "STS-01", Name: "STS Crane 1", CraneType: "STS", BerthRangeEnd: 1000, MinProductivity: 100, MaxProductivity: 130},
		},
		SolverSettings: domain.SolverSettings{TimeLimitSeconds: 5},
	}
}

func stubSolve(sol *domain.Solution, err error) services.SolveFunc {
	return func(ctx context.Context, p *domain.Problem, opts services.SolveOptions) (*domain.Solution, error) {
		return sol, err
	}
}

func optimalSolution() *domain.Solution {
	return &domain.Solution{
		Status:         domain.StatusOptimal,
		ObjectiveValue: 4200,
		VesselSolutions: []domain.VesselSolution{
			{VesselName: "V1", BerthPosition: 40, StartShift: 0, EndShift: 1,
				AssignedCranes: map[int][]string{0: {"STS-01"}}},
		},
	}
}

func waitForStatus(t *testing.T, srv http.Handler, want string) dto.StatusResponse {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status endpoint returned %d", rec.Code)
		}
		var st dto.StatusResponse
		if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
			t.Fatalf("decode status: %v", err)
		}
		if st.Status == want {
			return st
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("runner never reached status %q", want)
	return dto.StatusResponse{}
}

func TestHealthEndpoint(t *testing.T) {
	cfg := testConfig()
	srv := NewRouter(repositories.NewMemoryConfigStore(&cfg), services.NewRunner(stubSolve(optimalSolution(), nil)))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestProblemEndpoint(t *testing.T) {
	cfg := testConfig()
	store := repositories.NewMemoryConfigStore(&cfg)
	srv := NewRouter(store, services.NewRunner(stubSolve(optimalSolution(), nil)))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/problem", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var got domain.ProblemConfig
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if got.Berth.Length != 1000 {
		t.Fatalf("berth length = %d, want 1000", got.Berth.Length)
	}

	// Replace the document through POST and read it back.
	updated := testConfig()
	updated.Berth.Length = 1500
	body, err := json.Marshal(updated)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/problem", strings.NewReader(string(body))))
	if rec.Code != http.StatusOK {
		t.Fatalf("post status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	saved, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load after post: %v", err)
	}
	if saved.Berth.Length != 1500 {
		t.Fatalf("saved berth length = %d, want 1500", saved.Berth.Length)
	}
}

func TestProblemEndpointRejectsInvalidBodies(t *testing.T) {
	cfg := testConfig()
	srv := NewRouter(repositories.NewMemoryConfigStore(&cfg), services.NewRunner(stubSolve(optimalSolution(), nil)))

	for name, body := range map[string]string{
		"malformed json": "{",
		"unknown field":  `{"bogus": true}`,
		"no vessels":     `{"berth":{"length":1000},"shifts":{"start_date":"31122025","num_shifts":6},"cranes":[],"solver_settings":{"time_limit_seconds":5}}`,
	} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/problem", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestSolveLifecycle(t *testing.T) {
	cfg := testConfig()
	srv := NewRouter(repositories.NewMemoryConfigStore(&cfg), services.NewRunner(stubSolve(optimalSolution(), nil)))

	// No solution before the first run.
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/solution", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("premature solution status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/solve", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("solve status = %d, want 202", rec.Code)
	}

	st := waitForStatus(t, srv, "completed")
	if st.SolutionText == "" {
		t.Fatal("expected a solution text after completion")
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/solution", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("solution status = %d, want 200", rec.Code)
	}
	var sol dto.SolutionResponse
	if err := json.NewDecoder(rec.Body).Decode(&sol); err != nil {
		t.Fatalf("decode solution: %v", err)
	}
	if sol.Status != domain.StatusOptimal || len(sol.Vessels) != 1 {
		t.Fatalf("solution = %+v, want one OPTIMAL vessel", sol)
	}
	if got := sol.Vessels[0].AssignedCranes["0"]; len(got) != 1 || got[0] != "STS-01" {
		t.Fatalf("shift 0 cranes = %v, want [STS-01]", got)
	}
}

func TestSolveConflictsWhileRunning(t *testing.T) {
	release := make(chan struct{})
	blocking := func(ctx context.Context, p *domain.Problem, opts services.SolveOptions) (*domain.Solution, error) {
		<-release
		return optimalSolution(), nil
	}

	cfg := testConfig()
	srv := NewRouter(repositories.NewMemoryConfigStore(&cfg), services.NewRunner(blocking))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/solve", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("first solve status = %d, want 202", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/solve", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("second solve status = %d, want 409", rec.Code)
	}

	close(release)
	waitForStatus(t, srv, "completed")
}

func TestMethodGuards(t *testing.T) {
	cfg := testConfig()
	srv := NewRouter(repositories.NewMemoryConfigStore(&cfg), services.NewRunner(stubSolve(optimalSolution(), nil)))

	for path, method := range map[string]string{
		"/health":       http.MethodPost,
		"/api/solve":    http.MethodGet,
		"/api/status":   http.MethodPost,
		"/api/solution": http.MethodDelete,
	} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: status = %d, want 405", method, path, rec.Code)
		}
	}
}
