package roadmap

import (
	"errors"
	"path/filepath"
	"testing"

	"riskcast/internal/simulation"
)

func TestRoadmap_Input(t *testing.T) {
	r := Roadmap{
		Goal: "Launch billing v2",
		Items: []Item{
			{Title: "Schema migration", EstimatedCost: 1200},
			{Title: "Invoice renderer", EstimatedCost: 800.5},
			{Title: "Rollout", EstimatedCost: 0},
		},
		RiskScore: 40,
	}

	in, err := r.Input(simulation.DefaultIterations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.BaseCost != 2000.5 {
		t.Errorf("Expected base cost 2000.5, got %v", in.BaseCost)
	}
	if in.BaseTimeDays != DefaultHorizonDays {
		t.Errorf("Expected default horizon %v, got %v", DefaultHorizonDays, in.BaseTimeDays)
	}
	if in.RiskFactor != 40 || in.Iterations != simulation.DefaultIterations {
		t.Errorf("Unexpected input %+v", in)
	}
}

func TestRoadmap_ExplicitHorizon(t *testing.T) {
	r := Roadmap{Items: []Item{{Title: "a", EstimatedCost: 1}}, HorizonDays: 30}
	if r.Horizon() != 30 {
		t.Errorf("Expected horizon 30, got %v", r.Horizon())
	}
}

func TestRoadmap_InputErrors(t *testing.T) {
	if _, err := (Roadmap{}).Input(10); !errors.Is(err, ErrEmptyRoadmap) {
		t.Errorf("Expected ErrEmptyRoadmap, got %v", err)
	}

	r := Roadmap{Items: []Item{{Title: "refund", EstimatedCost: -5}}}
	if _, err := r.Input(10); !errors.Is(err, ErrInvalidItemCost) {
		t.Errorf("Expected ErrInvalidItemCost, got %v", err)
	}

	// All-zero costs pass here; the engine rejects the baseline.
	r = Roadmap{Items: []Item{{Title: "free", EstimatedCost: 0}}}
	in, err := r.Input(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := simulation.NewEngine(simulation.NewSource(1)).Run(in); !errors.Is(err, simulation.ErrInvalidBaseline) {
		t.Errorf("Expected ErrInvalidBaseline from engine, got %v", err)
	}
}

func TestRoadmap_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadmap.json")
	want := Roadmap{
		Goal:      "Migrate search",
		Items:     []Item{{Title: "Index rebuild", EstimatedCost: 3000}},
		RiskScore: 70,
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Goal != want.Goal || got.RiskScore != want.RiskScore || len(got.Items) != 1 || got.Items[0] != want.Items[0] {
		t.Errorf("Round trip mismatch: got %+v", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
