// Package solver defines the contract between the scheduling core and a
// MILP solver. The core builds a milp.Model, hands it to a Solver with a
// time budget and reads variable values back from the Result.
package solver

import (
	"context"
	"errors"
	"time"

	"github.com/kilianp07/rosterlp/core/milp"
)

// Status reports the outcome of a solve call.
type Status int

const (
	// StatusOptimal means the returned values are proven optimal.
	StatusOptimal Status = iota
	// StatusFeasible means a solution was found but optimality was not
	// proven before the solver stopped.
	StatusFeasible
	// StatusInfeasible means no assignment satisfies every constraint.
	StatusInfeasible
	// StatusTimedOut means the time budget expired. Values hold the best
	// incumbent when one was found, nil otherwise.
	StatusTimedOut
	// StatusError means the solver itself failed.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimedOut:
		return "timed_out"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// ErrInfeasible is returned when the model admits no solution.
var ErrInfeasible = errors.New("model is infeasible")

// ErrNoSolution is returned when the time budget expired before any
// incumbent was found.
var ErrNoSolution = errors.New("no solution found within the time limit")

// Result is the answer of a solve call. Values is indexed by milp.VarID
// and is non-nil exactly when a solution is available.
type Result struct {
	Status    Status
	Values    []float64
	Objective float64
}

// HasSolution reports whether Values holds a usable assignment.
func (r Result) HasSolution() bool {
	if r.Values == nil {
		return false
	}
	switch r.Status {
	case StatusOptimal, StatusFeasible, StatusTimedOut:
		return true
	}
	return false
}

// Solver solves a MILP within the given time budget. Implementations
// must return rather than hang once the budget or ctx expires, and must
// never return a partial value map: Values is either nil or covers every
// variable of the model.
type Solver interface {
	Solve(ctx context.Context, m *milp.Model, timeLimit time.Duration) (Result, error)
}
