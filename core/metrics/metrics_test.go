package metrics_test

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/rosterlp/core/factory"
	metrics "github.com/kilianp07/rosterlp/core/metrics"
)

type recordSink struct {
	count int
	fail  bool
}

func (r *recordSink) RecordSolve(metrics.SolveEvent) error {
	r.count++
	if r.fail {
		return errors.New("sink failed")
	}
	return nil
}

func TestMultiSinkForwards(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := metrics.NewMultiSink(s1, s2)
	if err := m.RecordSolve(metrics.SolveEvent{RunID: "r"}); err != nil {
		t.Fatalf("record solve: %v", err)
	}
	if s1.count != 1 || s2.count != 1 {
		t.Fatalf("event not forwarded to all sinks")
	}
}

func TestMultiSinkJoinsErrors(t *testing.T) {
	s1 := &recordSink{fail: true}
	s2 := &recordSink{}
	m := metrics.NewMultiSink(s1, s2)
	if err := m.RecordSolve(metrics.SolveEvent{}); err == nil {
		t.Fatalf("expected error from failing sink")
	}
	if s2.count != 1 {
		t.Fatalf("healthy sink skipped after failure")
	}
}

func TestNewSinkDefaultsToNop(t *testing.T) {
	s, err := metrics.NewSink(nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := s.(metrics.NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}
}

func TestNewSinkUnknownType(t *testing.T) {
	_, err := metrics.NewSink([]factory.ModuleConfig{{Type: "missing"}})
	if err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

// Test decoding a sink list from YAML, the shape used in config files.
func TestConfigDecodeYAML(t *testing.T) {
	data := `sinks:
  - type: nop
  - type: nop
`
	var cfg metrics.Config
	if err := yaml.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	if len(cfg.Sinks) != 2 {
		t.Fatalf("expected 2 sink configs, got %d", len(cfg.Sinks))
	}
}
