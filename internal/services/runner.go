package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"berth-planner-service/internal/domain"
	"berth-planner-service/internal/platform/obs"
)

// ErrSolveInFlight is returned when a solve is requested while another one is
// still running. The runner serializes solves; callers own any retry policy.
var ErrSolveInFlight = errors.New("solver already running")

// SolveFunc matches Solve and exists so handlers and tests can run the
// runner against a stub instead of the real engine.
type SolveFunc func(context.Context, *domain.Problem, SolveOptions) (*domain.Solution, error)

// RunnerStatus is a point-in-time snapshot of the runner state.
type RunnerStatus struct {
	Running bool
	Status  string // idle | running | completed | error
	Message string
	Report  string
}

// Runner owns the solve-in-flight state: one background solve at a time, with
// results retained until the next run starts. All access goes through the
// mutex; there is no package-level state.
type Runner struct {
	mu       sync.Mutex
	solve    SolveFunc
	running  bool
	status   string
	message  string
	report   string
	solution *domain.Solution
}

// NewRunner builds a runner around the given solve function; nil selects the
// real engine-backed Solve.
func NewRunner(solve SolveFunc) *Runner {
	if solve == nil {
		solve = Solve
	}
	return &Runner{solve: solve, status: "idle"}
}

// Start launches a background solve of the given configuration. It fails
// with ErrSolveInFlight when a solve is already running.
func (r *Runner) Start(cfg domain.ProblemConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return ErrSolveInFlight
	}

	r.running = true
	r.status = "running"
	r.message = "building model and solving..."
	r.report = ""
	r.solution = nil

	go r.run(cfg)
	return nil
}

// Status returns the current runner snapshot.
func (r *Runner) Status() RunnerStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RunnerStatus{
		Running: r.running,
		Status:  r.status,
		Message: r.message,
		Report:  r.report,
	}
}

// Solution returns the last completed solution, if any.
func (r *Runner) Solution() (*domain.Solution, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.solution == nil {
		return nil, false
	}
	return r.solution, true
}

func (r *Runner) run(cfg domain.ProblemConfig) {
	ctx := context.Background()
	var runErr error
	defer obs.Time(ctx, "solve_run")(&runErr)

	problem, err := BuildProblem(cfg)
	if err != nil {
		runErr = err
		r.fail(fmt.Errorf("runner: %w", err))
		return
	}

	opts := SolveOptions{
		TimeLimit: time.Duration(cfg.SolverSettings.TimeLimitSeconds) * time.Second,
		Workers:   int32(cfg.SolverSettings.NumWorkers),
	}

	solution, err := r.solve(ctx, problem, opts)
	if err != nil {
		runErr = err
		r.fail(fmt.Errorf("runner: solve: %w", err))
		return
	}

	report := FormatSolution(problem, solution)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	r.status = "completed"
	r.message = fmt.Sprintf("solver finished: %s (objective %.0f)", solution.Status, solution.ObjectiveValue)
	r.report = report
	r.solution = solution
}

func (r *Runner) fail(err error) {
	log.Printf("solve failed: %v", err)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	r.status = "error"
	r.message = err.Error()
}
