package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "riskcast"

// Metrics holds the simulation collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	RunsTotal          *prometheus.CounterVec
	RunDuration        *prometheus.HistogramVec
	Iterations         prometheus.Histogram
	SuccessProbability prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. Pass a fresh registry in tests.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "runs_total",
				Help:      "Total number of simulation runs by tool and outcome",
			},
			[]string{"tool", "outcome"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "run_duration_seconds",
				Help:      "Wall time of simulation runs",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"tool"},
		),
		Iterations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "iterations",
				Help:      "Iterations requested per run",
				Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
			},
		),
		SuccessProbability: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "success_probability",
				Help:      "Probability of success reported by completed runs",
				Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
			},
		),
		gatherer: reg,
	}

	reg.MustRegister(m.RunsTotal, m.RunDuration, m.Iterations, m.SuccessProbability)
	return m
}

// ObserveRun records one finished run. err != nil counts as a rejected run.
func (m *Metrics) ObserveRun(tool string, iterations int, probability float64, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.RunsTotal.WithLabelValues(tool, outcome).Inc()
	m.RunDuration.WithLabelValues(tool).Observe(elapsed.Seconds())

	if err == nil {
		m.Iterations.Observe(float64(iterations))
		m.SuccessProbability.Observe(probability)
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("Metrics endpoint listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
