package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRun(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRun("run_risk_simulation", 5000, 0.8, 12*time.Millisecond, nil)
	m.ObserveRun("run_risk_simulation", 5000, 0.6, 10*time.Millisecond, nil)
	m.ObserveRun("run_risk_simulation", 0, 0, time.Millisecond, errors.New("invalid iterations"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("run_risk_simulation", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("run_risk_simulation", "rejected")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RunsTotal))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRun("run_risk_simulation", 1, 1, time.Millisecond, nil)
}

func TestHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRun("compare_risk_levels", 100, 0.5, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `riskcast_simulation_runs_total{outcome="ok",tool="compare_risk_levels"} 1`), string(body))
	assert.True(t, strings.Contains(string(body), "riskcast_simulation_success_probability_count 1"), string(body))
}
