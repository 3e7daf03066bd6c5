package main

import (
	"fmt"
	"os"

	"riskcast/cmd/scenariogen/engine"
	"riskcast/internal/roadmap"

	"github.com/spf13/cobra"
)

func main() {
	var (
		cfg engine.GeneratorConfig
		out string
	)

	cmd := &cobra.Command{
		Use:   "scenariogen",
		Short: "Generate synthetic roadmap fixtures for riskcast",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Generating roadmap (Distribution: %s, Count: %d, Risk: %g) to %s...\n", cfg.Distribution, cfg.Count, cfg.RiskScore, out)

			r, err := engine.Generate(cfg)
			if err != nil {
				return err
			}
			if err := roadmap.Save(out, r); err != nil {
				return fmt.Errorf("failed to save roadmap: %w", err)
			}

			fmt.Printf("Done. Total cost %.2f.\n", r.TotalCost())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Distribution, "distribution", engine.Uniform, "cost distribution: uniform, weibull, triangular")
	f.IntVar(&cfg.Count, "count", 20, "number of roadmap items")
	f.Float64Var(&cfg.RiskScore, "risk", 50, "risk score written to the roadmap")
	f.Float64Var(&cfg.HorizonDays, "horizon", 0, "time baseline in days (0 leaves it to riskcast)")
	f.Uint64Var(&cfg.Seed, "seed", 1, "generator seed")
	f.StringVarP(&out, "out", "o", "roadmap.json", "output file")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
