package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"riskcast/internal/config"
	"riskcast/internal/roadmap"
	"riskcast/internal/simulation"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type simulateOptions struct {
	cost        float64
	days        float64
	risk        float64
	iterations  int
	bins        int
	seed        uint64
	seedSet     bool
	roadmapPath string
	asJSON      bool
}

var simOpts simulateOptions

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a single simulation and print the result",
	Long: `Run one Monte-Carlo simulation from the command line, either from explicit baselines
(--cost, --days, --risk) or from a roadmap JSON file (--roadmap).`,
	Example: `  riskcast simulate --cost 12000 --days 45 --risk 40
  riskcast simulate --roadmap q3.json --iterations 20000 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := simOpts
		if !cmd.Flags().Changed("iterations") {
			opts.iterations = cfg.Simulation.DefaultIterations
		}
		if !cmd.Flags().Changed("bins") {
			opts.bins = cfg.Simulation.BinCount
		}
		opts.seedSet = cmd.Flags().Changed("seed")
		return runSimulate(cmd.OutOrStdout(), cfg, opts)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.Float64Var(&simOpts.cost, "cost", 0, "baseline cost")
	f.Float64Var(&simOpts.days, "days", 0, "baseline duration in days")
	f.Float64Var(&simOpts.risk, "risk", 0, "risk factor, conventionally 0-100")
	f.IntVarP(&simOpts.iterations, "iterations", "n", simulation.DefaultIterations, "number of draws")
	f.IntVar(&simOpts.bins, "bins", simulation.DefaultBinCount, "histogram bins per distribution")
	f.Uint64Var(&simOpts.seed, "seed", 0, "seed for a reproducible run")
	f.StringVarP(&simOpts.roadmapPath, "roadmap", "r", "", "roadmap JSON file; overrides --cost and --risk")
	f.BoolVar(&simOpts.asJSON, "json", false, "print the raw result as JSON")

	rootCmd.AddCommand(simulateCmd)
}

type simulateOutput struct {
	Seed   uint64            `json:"seed"`
	Input  simulation.Input  `json:"input"`
	Result simulation.Result `json:"result"`
}

func runSimulate(out io.Writer, cfg *config.AppConfig, opts simulateOptions) error {
	if opts.iterations > cfg.Simulation.MaxIterations {
		return fmt.Errorf("%d iterations requested, limit is %d", opts.iterations, cfg.Simulation.MaxIterations)
	}

	in := simulation.Input{
		BaseCost:     opts.cost,
		BaseTimeDays: opts.days,
		RiskFactor:   opts.risk,
		Iterations:   opts.iterations,
	}
	if opts.roadmapPath != "" {
		r, err := roadmap.Load(opts.roadmapPath)
		if err != nil {
			return err
		}
		if r.HorizonDays == 0 {
			r.HorizonDays = cfg.Simulation.HorizonDays
		}
		if opts.days > 0 {
			r.HorizonDays = opts.days
		}
		if in, err = r.Input(opts.iterations); err != nil {
			return err
		}
	}

	seed := opts.seed
	if !opts.seedSet {
		seed = uint64(time.Now().UnixNano())
	}

	engine := simulation.NewEngine(simulation.NewSource(seed))
	if err := engine.SetBinCount(opts.bins); err != nil {
		return err
	}
	res, err := engine.Run(in)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(simulateOutput{Seed: seed, Input: in, Result: res})
	}

	printSummary(out, seed, in, res)
	return nil
}

func printSummary(out io.Writer, seed uint64, in simulation.Input, res simulation.Result) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	verdict := color.New(color.FgRed, color.Bold)
	switch {
	case res.ProbabilityOfSuccess >= 0.8:
		verdict = color.New(color.FgGreen, color.Bold)
	case res.ProbabilityOfSuccess >= 0.5:
		verdict = color.New(color.FgYellow, color.Bold)
	}

	fmt.Fprintf(out, "%s %s\n", bold("Probability of success:"), verdict.Sprintf("%.1f%%", res.ProbabilityOfSuccess*100))
	fmt.Fprintf(out, "%s %.2f  %s\n", bold("Expected cost:"), res.ExpectedCost,
		faint(fmt.Sprintf("(baseline %.2f, P85 %.2f)", in.BaseCost, res.CostPercentiles.P85)))
	fmt.Fprintf(out, "%s %.1f days  %s\n", bold("Expected time:"), res.ExpectedTime,
		faint(fmt.Sprintf("(baseline %.1f, P85 %.1f)", in.BaseTimeDays, res.TimePercentiles.P85)))
	fmt.Fprintf(out, "%s\n", faint(fmt.Sprintf("%d iterations, risk %g, seed %d", res.Iterations, in.RiskFactor, seed)))

	printHistogram(out, "Cost", res.CostDistribution)
	printHistogram(out, "Time", res.TimeDistribution)
}

func printHistogram(out io.Writer, title string, bins []simulation.HistogramBin) {
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}

	fmt.Fprintf(out, "\n%s\n", color.New(color.Bold, color.Underline).Sprint(title))
	bar := color.New(color.FgCyan).SprintFunc()
	for _, b := range bins {
		width := 0
		if peak > 0 {
			width = b.Count * 40 / peak
		}
		fmt.Fprintf(out, "%10s - %-10s %s %d\n", b.Low, b.High, bar(strings.Repeat("#", width)), b.Count)
	}
}

