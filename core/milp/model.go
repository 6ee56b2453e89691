package milp

import (
	"fmt"
	"math"
)

// Domain restricts the values a variable may take.
type Domain int

const (
	// Binary variables take values in {0, 1}.
	Binary Domain = iota
	// NonNegative variables take any real value >= 0.
	NonNegative
)

// VarID indexes a variable inside a Model.
type VarID int

// Var is a single decision variable.
type Var struct {
	ID     VarID
	Name   string
	Domain Domain
}

// Term is one coefficient of a linear expression.
type Term struct {
	Var  VarID
	Coef float64
}

// Rel is the relation of a constraint row to its right-hand side.
type Rel int

const (
	LE Rel = iota
	GE
	EQ
)

func (r Rel) String() string {
	switch r {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	}
	return "?"
}

// Row is one linear constraint: sum(Terms) Rel RHS.
type Row struct {
	Name  string
	Terms []Term
	Rel   Rel
	RHS   float64
}

// Sense is the optimization direction of the objective.
type Sense int

const (
	Maximize Sense = iota
	Minimize
)

// Objective is the single linear objective of the model.
type Objective struct {
	Sense Sense
	Terms []Term
}

// Model is a complete MILP description.
type Model struct {
	Vars []Var
	Rows []Row
	Obj  Objective
}

// New returns an empty model.
func New() *Model { return &Model{} }

// AddVar declares a new variable and returns its ID.
func (m *Model) AddVar(name string, dom Domain) VarID {
	id := VarID(len(m.Vars))
	m.Vars = append(m.Vars, Var{ID: id, Name: name, Domain: dom})
	return id
}

// AddRow appends constraint rows.
func (m *Model) AddRow(rows ...Row) { m.Rows = append(m.Rows, rows...) }

// SetObjective replaces the model objective.
func (m *Model) SetObjective(sense Sense, terms []Term) {
	m.Obj = Objective{Sense: sense, Terms: terms}
}

// NumVars returns the number of declared variables.
func (m *Model) NumVars() int { return len(m.Vars) }

// NumRows returns the number of constraint rows.
func (m *Model) NumRows() int { return len(m.Rows) }

// NumBinary returns the number of binary variables.
func (m *Model) NumBinary() int {
	n := 0
	for _, v := range m.Vars {
		if v.Domain == Binary {
			n++
		}
	}
	return n
}

// Validate checks that every term references a declared variable and
// that all coefficients and bounds are finite.
func (m *Model) Validate() error {
	check := func(where string, terms []Term) error {
		for _, t := range terms {
			if int(t.Var) < 0 || int(t.Var) >= len(m.Vars) {
				return fmt.Errorf("%s references unknown variable %d", where, t.Var)
			}
			if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
				return fmt.Errorf("%s has non-finite coefficient for %s", where, m.Vars[t.Var].Name)
			}
		}
		return nil
	}
	if err := check("objective", m.Obj.Terms); err != nil {
		return err
	}
	for _, row := range m.Rows {
		if err := check(fmt.Sprintf("row %q", row.Name), row.Terms); err != nil {
			return err
		}
		if math.IsNaN(row.RHS) || math.IsInf(row.RHS, 0) {
			return fmt.Errorf("row %q has non-finite bound", row.Name)
		}
	}
	return nil
}
