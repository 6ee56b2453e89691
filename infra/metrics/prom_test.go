package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/rosterlp/core/factory"
	coremetrics "github.com/kilianp07/rosterlp/core/metrics"
)

func TestPromSinkRecordSolve(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	err = sink.RecordSolve(coremetrics.SolveEvent{
		RunID:     "run-1",
		Status:    "optimal",
		Objective: 12,
		Duration:  1500 * time.Millisecond,
		Time:      time.Now(),
	})
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(mfs))
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["roster_solve_runs_total"])
	assert.True(t, names["roster_solve_duration_seconds"])
	assert.True(t, names["roster_solve_objective"])
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	// Registering again must reuse the existing collectors.
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	assert.NoError(t, sink.RecordSolve(coremetrics.SolveEvent{Status: "feasible"}))
}

func TestSinkFactoryRegistersBuiltins(t *testing.T) {
	s, err := coremetrics.NewSink([]factory.ModuleConfig{{Type: "nop"}})
	require.NoError(t, err)
	assert.IsType(t, coremetrics.NopSink{}, s)

	multi, err := coremetrics.NewSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "prometheus"}})
	require.NoError(t, err)
	assert.IsType(t, &coremetrics.MultiSink{}, multi)
}
