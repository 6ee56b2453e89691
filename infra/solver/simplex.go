package solver

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/kilianp07/rosterlp/core/milp"
)

// relaxation holds the LP relaxation of a model in general form:
// minimize cMin*x subject to G x <= h, A0 x = b0, x >= 0. Branch
// fixings are appended to the equality block per node.
type relaxation struct {
	n    int
	cMin []float64
	g    *mat.Dense
	h    []float64
	eqs  []row
	bins []milp.VarID
}

type row struct {
	terms []milp.Term
	rhs   float64
}

// newRelaxation normalizes model rows: GE rows are negated into LE
// rows, binaries get an upper bound of 1 and every variable a
// non-negativity row. Equality rows stay symbolic so fixings can be
// appended cheaply.
func newRelaxation(m *milp.Model) *relaxation {
	n := m.NumVars()
	r := &relaxation{n: n, cMin: make([]float64, n)}
	for _, t := range m.Obj.Terms {
		if m.Obj.Sense == milp.Maximize {
			r.cMin[t.Var] -= t.Coef
		} else {
			r.cMin[t.Var] += t.Coef
		}
	}

	var les []row
	for _, cr := range m.Rows {
		switch cr.Rel {
		case milp.LE:
			les = append(les, row{terms: cr.Terms, rhs: cr.RHS})
		case milp.GE:
			neg := make([]milp.Term, len(cr.Terms))
			for i, t := range cr.Terms {
				neg[i] = milp.Term{Var: t.Var, Coef: -t.Coef}
			}
			les = append(les, row{terms: neg, rhs: -cr.RHS})
		case milp.EQ:
			r.eqs = append(r.eqs, row{terms: cr.Terms, rhs: cr.RHS})
		}
	}
	for _, v := range m.Vars {
		if v.Domain == milp.Binary {
			r.bins = append(r.bins, v.ID)
			les = append(les, row{terms: []milp.Term{{Var: v.ID, Coef: 1}}, rhs: 1})
		}
	}
	for i := 0; i < n; i++ {
		les = append(les, row{terms: []milp.Term{{Var: milp.VarID(i), Coef: -1}}, rhs: 0})
	}

	r.g = mat.NewDense(len(les), n, nil)
	r.h = make([]float64, len(les))
	for i, le := range les {
		for _, t := range le.terms {
			r.g.Set(i, int(t.Var), r.g.At(i, int(t.Var))+t.Coef)
		}
		r.h[i] = le.rhs
	}
	return r
}

// solve runs the simplex on the relaxation with the given binary
// fixings (-1 leaves a variable free). It returns the variable values
// in model order and the objective in minimize sense.
func (r *relaxation) solve(fixings []int8, tol float64) ([]float64, float64, error) {
	rows := len(r.eqs)
	for _, f := range fixings {
		if f >= 0 {
			rows++
		}
	}
	var a mat.Matrix
	var b []float64
	if rows > 0 {
		dense := mat.NewDense(rows, r.n, nil)
		b = make([]float64, rows)
		for i, eq := range r.eqs {
			for _, t := range eq.terms {
				dense.Set(i, int(t.Var), dense.At(i, int(t.Var))+t.Coef)
			}
			b[i] = eq.rhs
		}
		i := len(r.eqs)
		for id, f := range fixings {
			if f < 0 {
				continue
			}
			dense.Set(i, id, 1)
			b[i] = float64(f)
			i++
		}
		a = dense
	}

	cStd, aStd, bStd := lp.Convert(r.cMin, r.g, r.h, a, b)
	opt, sol, err := lp.Simplex(cStd, aStd, bStd, tol, nil)
	if err != nil {
		return nil, 0, err
	}
	// Convert splits every variable into a positive and negative part;
	// recover the original values from the first two blocks.
	x := make([]float64, r.n)
	for i := 0; i < r.n; i++ {
		v := sol[i] - sol[r.n+i]
		if v < 0 && v > -1e-9 {
			v = 0
		}
		x[i] = v
	}
	return x, opt, nil
}

// infeasible reports whether the simplex rejected the node for lack of
// any feasible point.
func infeasible(err error) bool {
	return errors.Is(err, lp.ErrInfeasible)
}
