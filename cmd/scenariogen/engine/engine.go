package engine

import (
	"fmt"
	"math"
	"math/rand/v2"

	"riskcast/internal/roadmap"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution names accepted by Generate.
const (
	Uniform    = "uniform"
	Weibull    = "weibull"
	Triangular = "triangular"
)

type GeneratorConfig struct {
	Distribution string
	Count        int
	RiskScore    float64
	HorizonDays  float64
	Seed         uint64
}

// Generate builds a synthetic roadmap whose item costs follow the configured
// distribution. The same config always yields the same roadmap.
func Generate(cfg GeneratorConfig) (roadmap.Roadmap, error) {
	if cfg.Count < 1 {
		return roadmap.Roadmap{}, fmt.Errorf("count must be at least 1, got %d", cfg.Count)
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed^0x5851f42d4c957f2d)

	var dist distuv.Rander
	switch cfg.Distribution {
	case Uniform, "":
		// Flat 0.5k-5k: every item is about as likely to be small as large.
		dist = distuv.Uniform{Min: 500, Max: 5000, Src: src}
	case Weibull:
		// k < 2 gives the long right tail typical of real estimates.
		dist = distuv.Weibull{K: 1.2, Lambda: 2000, Src: src}
	case Triangular:
		dist = distuv.NewTriangle(500, 6000, 1500, src)
	default:
		return roadmap.Roadmap{}, fmt.Errorf("unknown distribution %q (want uniform, weibull or triangular)", cfg.Distribution)
	}

	items := make([]roadmap.Item, cfg.Count)
	for i := range items {
		items[i] = roadmap.Item{
			Title:         fmt.Sprintf("SCENARIO-%d", i+1),
			EstimatedCost: math.Round(dist.Rand()*100) / 100,
		}
	}

	return roadmap.Roadmap{
		Goal:        fmt.Sprintf("Synthetic %s roadmap (%d items)", distributionName(cfg.Distribution), cfg.Count),
		Items:       items,
		RiskScore:   cfg.RiskScore,
		HorizonDays: cfg.HorizonDays,
	}, nil
}

func distributionName(d string) string {
	if d == "" {
		return Uniform
	}
	return d
}
