package roadmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"riskcast/internal/simulation"
)

// DefaultHorizonDays stands in for a derived schedule estimate when a roadmap has none.
const DefaultHorizonDays = 90.0

var (
	ErrEmptyRoadmap    = errors.New("roadmap has no items")
	ErrInvalidItemCost = errors.New("invalid item cost")
)

// Item is one costed step of a roadmap.
type Item struct {
	Title         string  `json:"title"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// Roadmap is the caller-side description of a planned project.
type Roadmap struct {
	Goal        string  `json:"goal,omitempty"`
	Items       []Item  `json:"items"`
	RiskScore   float64 `json:"risk_score"`
	HorizonDays float64 `json:"horizon_days,omitempty"`
}

// TotalCost sums the itemized estimates.
func (r Roadmap) TotalCost() float64 {
	total := 0.0
	for _, it := range r.Items {
		total += it.EstimatedCost
	}
	return total
}

// Horizon returns the time baseline in days.
func (r Roadmap) Horizon() float64 {
	if r.HorizonDays > 0 {
		return r.HorizonDays
	}
	return DefaultHorizonDays
}

// Input derives the engine input for this roadmap. The engine still validates
// the baseline and risk score.
func (r Roadmap) Input(iterations int) (simulation.Input, error) {
	if len(r.Items) == 0 {
		return simulation.Input{}, ErrEmptyRoadmap
	}
	for i, it := range r.Items {
		if it.EstimatedCost < 0 {
			return simulation.Input{}, fmt.Errorf("%w: item %d (%q) has cost %v", ErrInvalidItemCost, i, it.Title, it.EstimatedCost)
		}
	}

	return simulation.Input{
		BaseCost:     r.TotalCost(),
		BaseTimeDays: r.Horizon(),
		RiskFactor:   r.RiskScore,
		Iterations:   iterations,
	}, nil
}

// Load reads a roadmap from a JSON file.
func Load(path string) (Roadmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roadmap{}, fmt.Errorf("failed to read roadmap %s: %w", path, err)
	}

	var r Roadmap
	if err := json.Unmarshal(data, &r); err != nil {
		return Roadmap{}, fmt.Errorf("failed to parse roadmap %s: %w", path, err)
	}
	return r, nil
}

// Save writes a roadmap as indented JSON.
func Save(path string, r Roadmap) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
