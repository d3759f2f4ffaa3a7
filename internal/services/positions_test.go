package services

import (
	"testing"

	"berth-planner-service/internal/domain"
)

func TestFeasiblePositionsRespectsMargins(t *testing.T) {
	berth := domain.NewBerth(500, nil, nil)
	v := &domain.Vessel{Name: "A", LOA: 200, Draft: 10}

	positions := feasiblePositions(berth, v)
	if len(positions) == 0 {
		t.Fatal("expected feasible positions")
	}
	if positions[0] != berthMargin {
		t.Fatalf("first position = %d, want %d", positions[0], berthMargin)
	}
	last := positions[len(positions)-1]
	want := int64(500 - 200 - berthMargin)
	if last != want {
		t.Fatalf("last position = %d, want %d", last, want)
	}
}

func TestFeasiblePositionsDepthHoles(t *testing.T) {
	// Deep water up to 300, shallow between 300 and 600, deep again after.
	berth := domain.NewBerth(1000, nil, []domain.DepthPoint{
		{Position: 0, Depth: 16.0},
		{Position: 300, Depth: 8.0},
		{Position: 600, Depth: 16.0},
	})
	v := &domain.Vessel{Name: "A", LOA: 100, Draft: 12.0}

	positions := feasiblePositions(berth, v)
	if len(positions) == 0 {
		t.Fatal("expected feasible positions")
	}

	allowed := func(p int64) bool {
		// Footprint [p, p+100) must avoid [300, 600).
		return p+100 <= 300 || p >= 600
	}
	for _, p := range positions {
		if !allowed(p) {
			t.Fatalf("position %d overlaps the shallow stretch", p)
		}
	}

	// Both deep stretches must be represented.
	if positions[0] != berthMargin {
		t.Fatalf("first position = %d, want %d", positions[0], berthMargin)
	}
	if positions[len(positions)-1] < 600 {
		t.Fatal("expected positions beyond the shallow stretch")
	}
}

func TestFeasiblePositionsEmptyForDeepDraft(t *testing.T) {
	depth := 10.0
	berth := domain.NewBerth(1000, &depth, nil)
	v := &domain.Vessel{Name: "A", LOA: 100, Draft: 14.0}

	if positions := feasiblePositions(berth, v); len(positions) != 0 {
		t.Fatalf("expected no feasible positions, got %d", len(positions))
	}
}
