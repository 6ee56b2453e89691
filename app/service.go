// Package app wires one scheduling run: model build, solve, extraction
// and rendering.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/rosterlp/config"
	coremetrics "github.com/kilianp07/rosterlp/core/metrics"
	"github.com/kilianp07/rosterlp/core/roster"
	coresolver "github.com/kilianp07/rosterlp/core/solver"
	"github.com/kilianp07/rosterlp/infra/logger"
	inframetrics "github.com/kilianp07/rosterlp/infra/metrics"
	infrasolver "github.com/kilianp07/rosterlp/infra/solver"
	"github.com/kilianp07/rosterlp/internal/progress"
	"github.com/kilianp07/rosterlp/internal/render"
)

// Service runs the build-solve-extract pipeline for one configuration.
// A Service performs a single run; create a new one per run.
type Service struct {
	// Out receives the rendered roster, os.Stdout by default.
	Out io.Writer
	// CSVPath, when set, additionally exports the roster as CSV.
	CSVPath string
	// Solver may be replaced before Run, e.g. in tests.
	Solver coresolver.Solver

	cfg  *config.Config
	log  logger.Logger
	sink coremetrics.Sink
	bus  *progress.Bus
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.Setup(cfg.Logging.Env, cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("logging config: %w", err)
	}
	logg := logger.New("service")
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	bus := progress.New()
	bb := infrasolver.New(logg, bus)
	bb.Tol = cfg.Solver.Tolerance
	bb.MaxNodes = cfg.Solver.MaxNodes
	return &Service{
		Out:    os.Stdout,
		Solver: bb,
		cfg:    cfg,
		log:    logg,
		sink:   sink,
		bus:    bus,
	}, nil
}

// Run executes one scheduling run. Solver statuses are passed through:
// an infeasible model or an expired budget without incumbent surface as
// errors, never as a silently relaxed schedule.
func (s *Service) Run(ctx context.Context) error {
	runID := uuid.New().String()
	if bb, ok := s.Solver.(*infrasolver.BranchBound); ok {
		bb.RunID = runID
	}
	if addr := s.cfg.Metrics.ListenAddr; addr != "" {
		go func() {
			if err := inframetrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	p := s.cfg.Roster
	s.log.Infof("run %s: %d workers, %d stations, fairness weight %g",
		runID, len(p.Workers), p.Stations, p.FairnessWeight)

	model, ix, err := roster.Build(p)
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}
	s.log.Debugw("model built", map[string]any{
		"vars": model.NumVars(), "rows": model.NumRows(), "binaries": model.NumBinary(),
	})

	done := s.watchProgress()
	start := time.Now()
	res, solveErr := s.Solver.Solve(ctx, model, s.cfg.Solver.TimeLimit())
	elapsed := time.Since(start)
	s.bus.Close()
	<-done

	if err := s.sink.RecordSolve(coremetrics.SolveEvent{
		RunID:     runID,
		Status:    res.Status.String(),
		Objective: res.Objective,
		Vars:      model.NumVars(),
		Rows:      model.NumRows(),
		Binaries:  model.NumBinary(),
		Workers:   len(p.Workers),
		Stations:  p.Stations,
		Duration:  elapsed,
		Time:      start,
	}); err != nil {
		s.log.Warnf("record solve: %v", err)
	}

	switch {
	case errors.Is(solveErr, coresolver.ErrInfeasible):
		return fmt.Errorf("no feasible schedule: %w", solveErr)
	case errors.Is(solveErr, coresolver.ErrNoSolution):
		return fmt.Errorf("no schedule found within %s: %w", s.cfg.Solver.TimeLimit(), solveErr)
	case solveErr != nil:
		return fmt.Errorf("solver: %w", solveErr)
	}
	if !res.HasSolution() {
		return fmt.Errorf("solver returned status %s without values", res.Status)
	}
	s.log.Infof("run %s: status %s, objective %.4f in %s", runID, res.Status, res.Objective, elapsed)

	sched := roster.Extract(res.Values, ix)
	if err := render.WriteText(s.Out, sched, p); err != nil {
		return fmt.Errorf("render roster: %w", err)
	}
	if s.CSVPath != "" {
		f, err := os.Create(s.CSVPath)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		if err := render.WriteCSV(f, sched, p); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		s.log.Infof("roster exported to %s", s.CSVPath)
	}
	return nil
}

// watchProgress logs solver progress events until the bus closes.
func (s *Service) watchProgress() <-chan struct{} {
	sub := s.bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range sub {
			switch e := ev.(type) {
			case progress.Incumbent:
				s.log.Infof("run %s: incumbent %.4f after %d nodes (%s)",
					e.RunID, e.Objective, e.Nodes, e.Elapsed.Round(time.Millisecond))
			case progress.Finished:
				s.log.Debugf("run %s: search finished with status %s after %d nodes",
					e.RunID, e.Status, e.Nodes)
			}
		}
	}()
	return done
}
