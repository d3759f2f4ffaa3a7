package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"berth-planner-service/internal/domain"
)

func runnerConfig() domain.ProblemConfig {
	cfg := baseConfig()
	cfg.SolverSettings = domain.SolverSettings{TimeLimitSeconds: 5, NumWorkers: 2}
	return cfg
}

func waitForIdle(t *testing.T, r *Runner) RunnerStatus {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		st := r.Status()
		if !st.Running {
			return st
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("runner did not finish in time")
	return RunnerStatus{}
}

func TestRunnerCompletesAndRetainsSolution(t *testing.T) {
	want := &domain.Solution{
		VesselSolutions: []domain.VesselSolution{{VesselName: "V1", BerthPosition: 40, StartShift: 0, EndShift: 1}},
		ObjectiveValue:  1234,
		Status:          domain.StatusOptimal,
	}
	stub := func(ctx context.Context, p *domain.Problem, opts SolveOptions) (*domain.Solution, error) {
		if opts.TimeLimit != 5*time.Second {
			t.Errorf("time limit = %v, want 5s", opts.TimeLimit)
		}
		return want, nil
	}

	r := NewRunner(stub)
	if st := r.Status(); st.Status != "idle" {
		t.Fatalf("initial status = %q, want idle", st.Status)
	}
	if _, ok := r.Solution(); ok {
		t.Fatal("expected no solution before the first run")
	}

	if err := r.Start(runnerConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := waitForIdle(t, r)
	if st.Status != "completed" {
		t.Fatalf("status = %q, want completed", st.Status)
	}
	if st.Report == "" {
		t.Fatal("expected a report after completion")
	}

	got, ok := r.Solution()
	if !ok {
		t.Fatal("expected a retained solution")
	}
	if got.ObjectiveValue != want.ObjectiveValue || got.Status != want.Status {
		t.Fatalf("solution = %+v, want %+v", got, want)
	}
}

func TestRunnerRefusesConcurrentSolves(t *testing.T) {
	release := make(chan struct{})
	stub := func(ctx context.Context, p *domain.Problem, opts SolveOptions) (*domain.Solution, error) {
		<-release
		return &domain.Solution{VesselSolutions: []domain.VesselSolution{}, Status: domain.StatusOptimal}, nil
	}

	r := NewRunner(stub)
	if err := r.Start(runnerConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.Start(runnerConfig()); !errors.Is(err, ErrSolveInFlight) {
		t.Fatalf("second start error = %v, want ErrSolveInFlight", err)
	}

	close(release)
	waitForIdle(t, r)

	// A finished runner accepts the next run.
	release = make(chan struct{})
	close(release)
	if err := r.Start(runnerConfig()); err != nil {
		t.Fatalf("restart error: %v", err)
	}
	waitForIdle(t, r)
}

func TestRunnerReportsSolveErrors(t *testing.T) {
	stub := func(ctx context.Context, p *domain.Problem, opts SolveOptions) (*domain.Solution, error) {
		return nil, errors.New("engine exploded")
	}

	r := NewRunner(stub)
	if err := r.Start(runnerConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := waitForIdle(t, r)
	if st.Status != "error" {
		t.Fatalf("status = %q, want error", st.Status)
	}
	if st.Message == "" {
		t.Fatal("expected an error message")
	}
	if _, ok := r.Solution(); ok {
		t.Fatal("expected no solution after a failed run")
	}
}

func TestRunnerReportsBadConfig(t *testing.T) {
	stub := func(ctx context.Context, p *domain.Problem, opts SolveOptions) (*domain.Solution, error) {
		t.Error("solve must not run for an invalid configuration")
		return nil, nil
	}

	cfg := runnerConfig()
	cfg.Shifts.StartDate = "not-a-date"

	r := NewRunner(stub)
	if err := r.Start(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := waitForIdle(t, r)
	if st.Status != "error" {
		t.Fatalf("status = %q, want error", st.Status)
	}
}
