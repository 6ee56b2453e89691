// Package metrics defines the events and sink interfaces used to record
// scheduling runs. Sinks like the Prometheus sink in infra/metrics are
// created through the factory helpers, which return a MultiSink
// automatically when several sinks are configured.
package metrics

import (
	"time"

	"github.com/kilianp07/rosterlp/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// ListenAddr, when set, serves /metrics on this address for the
	// duration of the run.
	ListenAddr string `json:"listen_addr"`
}

// SolveEvent captures the outcome of one build-solve-extract run.
type SolveEvent struct {
	RunID     string
	Status    string
	Objective float64
	Vars      int
	Rows      int
	Binaries  int
	Workers   int
	Stations  int
	Duration  time.Duration
	Time      time.Time
}

// Sink records solve events for observability purposes.
type Sink interface {
	RecordSolve(ev SolveEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolve(SolveEvent) error { return nil }
