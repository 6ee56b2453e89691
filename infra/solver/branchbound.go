// Package solver implements the MILP solver contract with a
// branch-and-bound search over LP relaxations solved by the gonum
// simplex.
package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kilianp07/rosterlp/core/logger"
	"github.com/kilianp07/rosterlp/core/milp"
	coresolver "github.com/kilianp07/rosterlp/core/solver"
	"github.com/kilianp07/rosterlp/internal/progress"
)

const (
	defaultTol    = 1e-7
	defaultIntTol = 1e-6
)

// BranchBound solves MILPs by depth-first branch and bound on the
// binary variables, bounding each node with the simplex relaxation.
// A BranchBound value is cheap and should be created per run; Solve
// itself keeps no state between calls.
type BranchBound struct {
	// Tol is the simplex pivot tolerance.
	Tol float64
	// IntTol is the distance from an integer below which a relaxed
	// binary counts as integral.
	IntTol float64
	// MaxNodes caps the number of explored nodes, 0 means unlimited.
	MaxNodes int
	// RunID tags progress events and logs.
	RunID string

	Log logger.Logger
	Bus *progress.Bus
}

// New returns a BranchBound with default tolerances.
func New(log logger.Logger, bus *progress.Bus) *BranchBound {
	return &BranchBound{Tol: defaultTol, IntTol: defaultIntTol, Log: log, Bus: bus}
}

type node struct {
	fixings []int8 // per variable: -1 free, 0 or 1 fixed
}

// Solve implements coresolver.Solver. The search stops at the earlier
// of timeLimit and the ctx deadline; on expiry the best incumbent found
// so far is returned with StatusTimedOut.
func (s *BranchBound) Solve(ctx context.Context, m *milp.Model, timeLimit time.Duration) (coresolver.Result, error) {
	if err := m.Validate(); err != nil {
		return coresolver.Result{Status: coresolver.StatusError}, fmt.Errorf("invalid model: %w", err)
	}
	tol := s.Tol
	if tol <= 0 {
		tol = defaultTol
	}
	intTol := s.IntTol
	if intTol <= 0 {
		intTol = defaultIntTol
	}

	start := time.Now()
	var deadline time.Time
	if timeLimit > 0 {
		deadline = start.Add(timeLimit)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	expired := func() bool {
		if ctx.Err() != nil {
			return true
		}
		return !deadline.IsZero() && time.Now().After(deadline)
	}

	rel := newRelaxation(m)
	root := node{fixings: make([]int8, rel.n)}
	for i := range root.fixings {
		root.fixings[i] = -1
	}
	stack := []node{root}

	var best []float64
	bestScore := math.Inf(-1)
	nodes := 0
	timedOut := false
	budgetHit := false

	for len(stack) > 0 {
		if expired() {
			timedOut = true
			break
		}
		if s.MaxNodes > 0 && nodes >= s.MaxNodes {
			budgetHit = true
			break
		}
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		x, optMin, err := rel.solve(nd.fixings, tol)
		if err != nil {
			if infeasible(err) {
				continue
			}
			if nodes == 1 {
				return coresolver.Result{Status: coresolver.StatusError},
					fmt.Errorf("simplex on root relaxation: %w", err)
			}
			s.logf("pruning node %d after simplex failure: %v", nodes, err)
			continue
		}

		// The relaxation bounds every completion of this node from above.
		bound := -optMin
		if best != nil && bound <= bestScore+1e-9*(1+math.Abs(bestScore)) {
			continue
		}

		branch := s.mostFractional(rel, nd.fixings, x, intTol)
		if branch < 0 {
			score := -dot(rel.cMin, x)
			if score > bestScore {
				bestScore = score
				best = roundSolution(m, x)
				s.logf("incumbent %.4f after %d nodes", score, nodes)
				s.publish(progress.Incumbent{
					RunID:     s.RunID,
					Objective: s.modelObjective(m, bestScore),
					Nodes:     nodes,
					Elapsed:   time.Since(start),
				})
			}
			continue
		}

		// Explore the rounded value first: the sibling is pushed below it.
		first, second := int8(1), int8(0)
		if x[branch] < 0.5 {
			first, second = 0, 1
		}
		stack = append(stack, child(nd, branch, second), child(nd, branch, first))
	}

	res := s.finish(m, best, bestScore, timedOut, budgetHit)
	s.publish(progress.Finished{
		RunID:   s.RunID,
		Status:  res.Status.String(),
		Nodes:   nodes,
		Elapsed: time.Since(start),
	})
	switch res.Status {
	case coresolver.StatusInfeasible:
		return res, coresolver.ErrInfeasible
	case coresolver.StatusTimedOut:
		if !res.HasSolution() {
			return res, coresolver.ErrNoSolution
		}
	}
	return res, nil
}

func (s *BranchBound) finish(m *milp.Model, best []float64, bestScore float64, timedOut, budgetHit bool) coresolver.Result {
	switch {
	case timedOut:
		if best == nil {
			return coresolver.Result{Status: coresolver.StatusTimedOut}
		}
		return coresolver.Result{
			Status:    coresolver.StatusTimedOut,
			Values:    best,
			Objective: s.modelObjective(m, bestScore),
		}
	case budgetHit:
		if best == nil {
			return coresolver.Result{Status: coresolver.StatusTimedOut}
		}
		return coresolver.Result{
			Status:    coresolver.StatusFeasible,
			Values:    best,
			Objective: s.modelObjective(m, bestScore),
		}
	default:
		if best == nil {
			return coresolver.Result{Status: coresolver.StatusInfeasible}
		}
		return coresolver.Result{
			Status:    coresolver.StatusOptimal,
			Values:    best,
			Objective: s.modelObjective(m, bestScore),
		}
	}
}

// mostFractional picks the free binary farthest from an integer value,
// or -1 when the relaxation is already integral.
func (s *BranchBound) mostFractional(rel *relaxation, fixings []int8, x []float64, intTol float64) int {
	branch := -1
	worst := intTol
	for _, id := range rel.bins {
		if fixings[id] >= 0 {
			continue
		}
		d := math.Abs(x[id] - math.Round(x[id]))
		if d > worst {
			worst = d
			branch = int(id)
		}
	}
	return branch
}

// modelObjective converts the internal maximize-sense score back to the
// sense declared on the model.
func (s *BranchBound) modelObjective(m *milp.Model, score float64) float64 {
	if m.Obj.Sense == milp.Minimize {
		return -score
	}
	return score
}

func (s *BranchBound) logf(format string, args ...any) {
	if s.Log != nil {
		s.Log.Debugf(format, args...)
	}
}

func (s *BranchBound) publish(e progress.Event) {
	if s.Bus != nil {
		s.Bus.Publish(e)
	}
}

func child(nd node, branch int, val int8) node {
	fix := append([]int8(nil), nd.fixings...)
	fix[branch] = val
	return node{fixings: fix}
}

// roundSolution snaps binaries to exact integers and clamps continuous
// values at zero before the solution leaves the solver.
func roundSolution(m *milp.Model, x []float64) []float64 {
	out := append([]float64(nil), x...)
	for _, v := range m.Vars {
		switch v.Domain {
		case milp.Binary:
			out[v.ID] = math.Round(out[v.ID])
		case milp.NonNegative:
			if out[v.ID] < 0 {
				out[v.ID] = 0
			}
		}
	}
	return out
}

func dot(c, x []float64) float64 {
	sum := 0.0
	for i, v := range c {
		sum += v * x[i]
	}
	return sum
}
